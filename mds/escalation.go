package mds

// attemptSpec is one rung of the fixed escalation ladder of spec.md §4.5:
// try Method at each W from WStart to WEnd (inclusive, stepping by WStep)
// until one succeeds.
type attemptSpec struct {
	Method Method
	WStart int
	WEnd   int
	WStep  int
}

// ladder returns the six-attempt escalation order. The sixth attempt's
// upper bound is not a fixed constant in spec.md — it is "end_row+1",
// letting the TARGET-only method widen until the early-termination rule
// in the kernel naturally stops it.
func ladder(endRow int) [6]attemptSpec {
	return [6]attemptSpec{
		{MethodAll, 7, 14, 7},
		{MethodD1, 7, 7, 7},
		{MethodTarget, 0, 2, 1},
		{MethodAll, 21, 77, 7},
		{MethodD1, 14, 77, 7},
		{MethodTarget, 3, endRow + 1, 3},
	}
}

// escalate runs the ladder for row r and returns the first successful
// result, or ok=false if all six attempts fail.
func escalate(m Matrix, masks []uint8, cols Columns, timeres TimeRes, r, startRow, endRow int, tol [3]Tolerance) (Result, bool, error) {
	for _, a := range ladder(endRow) {
		for w := a.WStart; w <= a.WEnd; w += a.WStep {
			res, ok, exhausted, err := attemptFill(m, masks, cols, timeres, r, startRow, endRow, a.Method, w, tol)
			if err != nil {
				return Result{}, false, err
			}
			if ok {
				return res, true, nil
			}
			if exhausted {
				break
			}
		}
	}
	return Result{}, false, nil
}
