package mds

import "math"

// resolveTolerance applies the per-sample tolerance rule of spec.md §4.4
// for one driver at the center row:
//
//   - both bounds sentinel: fall back to the documented default for this
//     driver and resolve again against that pair
//   - only Max sentinel: tolerance is the constant Min
//   - only Min sentinel: tolerance is the constant Max
//   - neither sentinel: tolerance is clamp(driver value at center row, Min, Max)
func resolveTolerance(t Tolerance, driverIdx int, centerValue float64) float64 {
	minInvalid := isInvalid(t.Min)
	maxInvalid := isInvalid(t.Max)

	switch {
	case minInvalid && maxInvalid:
		return resolveTolerance(DefaultTolerances()[driverIdx], driverIdx, centerValue)
	case maxInvalid:
		return t.Min
	case minInvalid:
		return t.Max
	default:
		v := centerValue
		if v < t.Min {
			v = t.Min
		}
		if v > t.Max {
			v = t.Max
		}
		return v
	}
}

// attemptFill scans a single (method, W) window around row r and collects
// look-alike target values per spec.md §4.4. It reports whether enough
// samples were found (ok), and whether the raw (unclamped) window bounds
// already cover the whole [startRow, endRow) range — in which case further
// widening within this method is futile (exhausted).
func attemptFill(m Matrix, masks []uint8, cols Columns, timeres TimeRes, r, startRow, endRow int, method Method, w int, tol [3]Tolerance) (result Result, ok bool, exhausted bool, err error) {
	D, err := RowsPerDay(timeres)
	if err != nil {
		return Result{}, false, false, err
	}
	H, err := RowsPerHour(timeres)
	if err != nil {
		return Result{}, false, false, err
	}

	var values []float64
	var rawLo, rawHi, timeWindow int

	switch method {
	case MethodAll, MethodD1:
		// Neither ALL nor D1 can ever succeed without their required driver
		// columns configured (buildMasks never sets the corresponding bit),
		// so bail out before touching those columns rather than indexing
		// them with -1.
		if cols.Drivers[0] < 0 {
			exhausted = true
			return Result{}, false, exhausted, nil
		}
		if method == MethodAll && (cols.Drivers[1] < 0 || cols.Drivers[2] < 0) {
			exhausted = true
			return Result{}, false, exhausted, nil
		}

		rawLo = r - D*w + 1
		rawHi = r + D*w
		timeWindow = 2 * w

		lo := rawLo
		if lo < 0 {
			lo = 0
		}
		hi := rawHi
		if hi > endRow {
			hi = endRow
		}

		tolD1 := resolveTolerance(tol[0], 0, m.At(r, cols.Drivers[0]))
		var tolD2, tolD3 float64
		if method == MethodAll {
			tolD2 = resolveTolerance(tol[1], 1, m.At(r, cols.Drivers[1]))
			tolD3 = resolveTolerance(tol[2], 2, m.At(r, cols.Drivers[2]))
		}

		const allValid = MaskTarget | MaskD1 | MaskD2 | MaskD3
		for c := lo; c < hi; c++ {
			switch method {
			case MethodAll:
				if masks[c]&allValid != allValid {
					continue
				}
				d1 := math.Abs(m.At(c, cols.Drivers[0]) - m.At(r, cols.Drivers[0]))
				if d1 >= tolD1 {
					continue
				}
				d2 := math.Abs(m.At(c, cols.Drivers[1]) - m.At(r, cols.Drivers[1]))
				if d2 >= tolD2 {
					continue
				}
				d3 := math.Abs(m.At(c, cols.Drivers[2]) - m.At(r, cols.Drivers[2]))
				if d3 >= tolD3 {
					continue
				}
				values = append(values, m.At(c, cols.Target))
			case MethodD1:
				if masks[c]&(MaskTarget|MaskD1) != (MaskTarget | MaskD1) {
					continue
				}
				d1 := math.Abs(m.At(c, cols.Drivers[0]) - m.At(r, cols.Drivers[0]))
				if d1 < tolD1 {
					values = append(values, m.At(c, cols.Target))
				}
			}
		}

	case MethodTarget:
		rawLo = r - D*w - H
		rawHi = r + D*w + H + 1
		timeWindow = 2*w + 1

		for c := rawLo; c < rawHi; c += D {
			for j := 0; j <= 2*H; j++ {
				p := c + j
				if p < 0 || p >= endRow {
					continue
				}
				if masks[p]&MaskTarget != 0 {
					values = append(values, m.At(p, cols.Target))
				}
			}
		}
	}

	exhausted = rawLo < startRow && rawHi > endRow

	if len(values) < 2 {
		return Result{}, false, exhausted, nil
	}

	avg := mean(values)
	return Result{
		Filled:       avg,
		StdDev:       stdDev(values, avg),
		SamplesCount: len(values),
		TimeWindow:   timeWindow,
		Method:       method,
	}, true, exhausted, nil
}
