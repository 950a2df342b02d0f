package mds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTolerance(t *testing.T) {
	// both sentinel -> documented default, then resolved against the default pair
	require.Equal(t, 50.0, resolveTolerance(Tolerance{Min: InvalidValue, Max: InvalidValue}, 0, 100.0))
	require.Equal(t, 2.5, resolveTolerance(Tolerance{Min: InvalidValue, Max: InvalidValue}, 1, 100.0))

	// only Max sentinel -> constant Min
	require.Equal(t, 10.0, resolveTolerance(Tolerance{Min: 10.0, Max: InvalidValue}, 0, 999))

	// only Min sentinel -> constant Max
	require.Equal(t, 40.0, resolveTolerance(Tolerance{Min: InvalidValue, Max: 40.0}, 0, 999))

	// neither sentinel -> clamp(center, min, max)
	require.Equal(t, 25.0, resolveTolerance(Tolerance{Min: 20, Max: 50}, 0, 25))
	require.Equal(t, 20.0, resolveTolerance(Tolerance{Min: 20, Max: 50}, 0, 5))
	require.Equal(t, 50.0, resolveTolerance(Tolerance{Min: 20, Max: 50}, 0, 500))
}

// TestKernelWindowBoundaryHead exercises the chosen ordering for the
// "+1 lower bound, then clamp" rule (spec.md §9 Open Question): the window
// must still reach row 0 near the series head rather than skipping it.
func TestKernelWindowBoundaryHead(t *testing.T) {
	rows := 30
	m := Matrix{RowsCount: rows, ColsCount: 2, Data: make([]float64, rows*2)}
	masks := make([]uint8, rows)
	for r := 0; r < rows; r++ {
		m.Data[r*2+0] = float64(r) // target
		m.Data[r*2+1] = 0          // d1, constant
		masks[r] = MaskTarget | MaskD1
	}
	cols := Columns{Target: 0, Drivers: [3]int{1, -1, -1}, DriverQC: [3]int{-1, -1, -1}}
	tol := [3]Tolerance{{Min: 1, Max: InvalidValue}}

	res, ok, _, err := attemptFill(m, masks, cols, Hourly, 0, 0, rows, MethodD1, 1, tol)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 24, res.SamplesCount, "window should include row 0 through row 23, not skip row 0")
}

func TestKernelAllMethodRequiresAllFourBits(t *testing.T) {
	rows := 10
	m := Matrix{RowsCount: rows, ColsCount: 4, Data: make([]float64, rows*4)}
	masks := make([]uint8, rows)
	for r := 0; r < rows; r++ {
		m.Data[r*4+0] = float64(r)
		masks[r] = MaskTarget | MaskD1 | MaskD2 // D3 missing
	}
	cols := Columns{Target: 0, Drivers: [3]int{1, 2, 3}, DriverQC: [3]int{-1, -1, -1}}
	tol := [3]Tolerance{{Min: 100, Max: InvalidValue}, {Min: 100, Max: InvalidValue}, {Min: 100, Max: InvalidValue}}

	_, ok, _, err := attemptFill(m, masks, cols, Hourly, 5, 0, rows, MethodAll, 1, tol)
	require.NoError(t, err)
	require.False(t, ok, "ALL must reject rows missing the D3 bit")
}

func TestKernelExhaustedFlag(t *testing.T) {
	rows := 5
	m := Matrix{RowsCount: rows, ColsCount: 2, Data: make([]float64, rows*2)}
	masks := make([]uint8, rows)
	cols := Columns{Target: 0, Drivers: [3]int{1, -1, -1}, DriverQC: [3]int{-1, -1, -1}}
	tol := [3]Tolerance{{Min: 1, Max: InvalidValue}}

	_, ok, exhausted, err := attemptFill(m, masks, cols, Hourly, 2, 0, rows, MethodD1, 10, tol)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, exhausted, "a window far wider than the series must report exhausted")
}
