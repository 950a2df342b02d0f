// Package mds implements the Marginal Distribution Sampling gap-fill engine:
// given a target time series with missing samples and up to three covariate
// drivers, it imputes each missing value from nearby same-variable samples
// whose drivers are close enough, widening the search window and relaxing
// driver requirements along a fixed escalation ladder.
package mds

import "math"

// InvalidValue is the sentinel marking missing or not-applicable data, both
// on input and on output. Any cell equal to it (compared as an integer via
// truncation), NaN, or ±Inf is treated as missing.
const InvalidValue = -9999

// TimeRes is the sub-daily sampling resolution of a series.
type TimeRes int

const (
	Spot TimeRes = iota
	QuarterHourly
	HalfHourly
	Hourly
	Daily
	Monthly
)

// Method identifies which escalation tier produced a fill.
type Method int

const (
	// MethodNone marks a row that was not filled (or was already valid).
	MethodNone Method = iota
	// MethodAll requires all three drivers within tolerance ("ALL").
	MethodAll
	// MethodD1 requires only driver 1 within tolerance ("D1-only").
	MethodD1
	// MethodTarget requires no driver at all ("TARGET-only").
	MethodTarget
)

// driverIndex identifies D1/D2/D3 among the mask bits.
type driverIndex int

const (
	D1 driverIndex = iota
	D2
	D3
)

// Mask bits over {TARGET, D1, D2, D3}.
const (
	MaskTarget uint8 = 1 << iota
	MaskD1
	MaskD2
	MaskD3
)

// Tolerance bounds a driver's acceptance window. Either bound may be
// InvalidValue, in which case the resolution rule of §4.4 applies:
//   - both sentinel  -> use the documented default for that driver
//   - only Max sentinel -> tolerance is the constant Min
//   - only Min sentinel -> tolerance is the constant Max
//   - neither sentinel  -> tolerance is clamp(driver value at center row, Min, Max)
type Tolerance struct {
	Min float64
	Max float64
}

// DefaultTolerances returns the documented per-driver defaults used when a
// caller leaves both bounds of a driver's tolerance at InvalidValue:
// D1 in [20.0, 50.0], D2 constant 2.5, D3 constant 5.0.
func DefaultTolerances() [3]Tolerance {
	return [3]Tolerance{
		{Min: 20.0, Max: 50.0},
		{Min: 2.5, Max: InvalidValue},
		{Min: 5.0, Max: InvalidValue},
	}
}

// Matrix is a read-only, row-major 2-D numeric buffer. Columns are addressed
// by index, not by byte stride: a caller identifies the target/driver/QC
// columns by their index into Cols.
type Matrix struct {
	RowsCount int
	ColsCount int
	Data      []float64
}

// At returns the value at (row, col). It does not bounds-check; callers
// operate within [0, RowsCount) x [0, ColsCount) by construction.
func (m Matrix) At(row, col int) float64 {
	return m.Data[row*m.ColsCount+col]
}

// isInvalid reports whether x is the sentinel (compared as a truncated
// integer), NaN, or infinite.
func isInvalid(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return true
	}
	return int64(x) == InvalidValue
}

// Result holds the per-row outcome of a gap-fill run.
type Result struct {
	Mask         uint8
	Filled       float64
	StdDev       float64
	SamplesCount int
	TimeWindow   int
	Method       Method
	Quality      int
}

// ResultTable is the per-row output of a gap-fill call, one Result per row
// of the input Matrix in [0, RowsCount).
type ResultTable struct {
	Rows               []Result
	NoGapsFilledCount  int
}

// Columns identifies which columns of a Matrix carry the target, the up to
// three drivers, and their optional QC columns (index -1 = absent).
type Columns struct {
	Target    int
	Drivers   [3]int
	DriverQC  [3]int
	QCThrs    [3]float64
}

// Options bundles the scalar parameters accepted by the engine entry points.
type Options struct {
	TimeRes     TimeRes
	Tolerances  [3]Tolerance
	ValuesMin   int
	ComputeHat  bool
	StartRow    int
	EndRow      int
	Parallel    bool
}
