package mds

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// GapFill runs the engine over the whole table with no QC filtering. It
// delegates to GapFillWithBounds with StartRow=-1, EndRow=-1.
func GapFill(m Matrix, cols Columns, opts Options) (*ResultTable, error) {
	cols.DriverQC = [3]int{-1, -1, -1}
	opts.StartRow, opts.EndRow = -1, -1
	return GapFillWithBounds(m, cols, opts)
}

// GapFillWithQC runs the engine with per-driver QC columns/thresholds
// applied during mask construction. It delegates to GapFillWithBounds with
// StartRow=-1, EndRow=-1.
func GapFillWithQC(m Matrix, cols Columns, opts Options) (*ResultTable, error) {
	opts.StartRow, opts.EndRow = -1, -1
	return GapFillWithBounds(m, cols, opts)
}

// GapFillWithBounds is the shared core all three entry points delegate to.
// It builds the validity mask once, then fills every row in
// [StartRow, EndRow) per the escalation ladder of spec.md §4.5.
func GapFillWithBounds(m Matrix, cols Columns, opts Options) (*ResultTable, error) {
	if _, err := RowsPerDay(opts.TimeRes); err != nil {
		return nil, &Error{Err: ErrInvalidTimeres}
	}

	startRow, endRow := normalizeRange(opts.StartRow, opts.EndRow, m.RowsCount)

	masks, err := buildMasks(m, cols, startRow, endRow, opts.ValuesMin)
	if err != nil {
		return nil, &Error{Err: err, RowsSeen: endRow - startRow}
	}

	table := &ResultTable{Rows: make([]Result, m.RowsCount)}
	for i := range table.Rows {
		table.Rows[i] = Result{Filled: InvalidValue, StdDev: InvalidValue, Quality: InvalidValue}
	}

	var noGapsFilled int64
	fillRow := func(r int) error {
		res := Result{Mask: masks[r], Filled: InvalidValue, StdDev: InvalidValue, Quality: InvalidValue}

		target := m.At(r, cols.Target)
		present := !isInvalid(target)
		if present {
			res.Filled = target
		}
		if present && !opts.ComputeHat {
			table.Rows[r] = res
			return nil
		}

		filled, ok, err := escalate(m, masks, cols, opts.TimeRes, r, startRow, endRow, opts.Tolerances)
		if err != nil {
			return err
		}
		if ok {
			res.Filled = filled.Filled
			res.StdDev = filled.StdDev
			res.SamplesCount = filled.SamplesCount
			res.TimeWindow = filled.TimeWindow
			res.Method = filled.Method
			res.Quality = scoreQuality(filled.Method, filled.TimeWindow)
		} else {
			atomic.AddInt64(&noGapsFilled, 1)
		}
		table.Rows[r] = res
		return nil
	}

	if opts.Parallel {
		if err := fillRowsParallel(startRow, endRow, fillRow); err != nil {
			return nil, err
		}
	} else {
		for r := startRow; r < endRow; r++ {
			if err := fillRow(r); err != nil {
				return nil, err
			}
		}
	}

	table.NoGapsFilledCount = int(noGapsFilled)
	return table, nil
}

// normalizeRange applies the range-defaulting rule of spec.md §4.7:
// start_row<0 becomes 0; end_row==-1 or end_row>rows_count becomes
// rows_count.
func normalizeRange(startRow, endRow, rowsCount int) (int, int) {
	if startRow < 0 {
		startRow = 0
	}
	if endRow == -1 || endRow > rowsCount {
		endRow = rowsCount
	}
	return startRow, endRow
}

// fillRowsParallel runs fillRow over [startRow, endRow) using a bounded
// worker pool sized off GOMAXPROCS, the way the teacher's build/study
// pipelines size their day-processing workers. Each row's fill depends
// only on read-only inputs and the already-built mask, never on a
// sibling's Result, so no ordering between rows is required.
func fillRowsParallel(startRow, endRow int, fillRow func(int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if n := endRow - startRow; n < workers {
		workers = n
	}
	if workers < 1 {
		return nil
	}

	jobs := make(chan int, endRow-startRow)
	for r := startRow; r < endRow; r++ {
		jobs <- r
	}
	close(jobs)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				if err := fillRow(r); err != nil {
					select {
					case errs <- err:
					default:
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		return err
	}
	return nil
}
