package mds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ladderTestCols() Columns {
	return Columns{Target: 0, Drivers: [3]int{1, 2, 3}, DriverQC: [3]int{-1, -1, -1}}
}

func TestEscalateAllMethodSucceedsFirstRung(t *testing.T) {
	rows := 400
	m := Matrix{RowsCount: rows, ColsCount: 4, Data: make([]float64, rows*4)}
	masks := make([]uint8, rows)
	for r := 0; r < rows; r++ {
		m.Data[r*4+0] = 10 // target
		masks[r] = MaskTarget | MaskD1 | MaskD2 | MaskD3
	}
	res, ok, err := escalate(m, masks, ladderTestCols(), Hourly, 200, 0, rows, DefaultTolerances())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, MethodAll, res.Method)
	require.Equal(t, 14, res.TimeWindow) // w=7 -> 2*7
}

func TestEscalateFallsBackToD1WhenOtherDriversMissing(t *testing.T) {
	rows := 200
	m := Matrix{RowsCount: rows, ColsCount: 2, Data: make([]float64, rows*2)}
	masks := make([]uint8, rows)
	for r := 0; r < rows; r++ {
		m.Data[r*2+0] = 5 // target
		masks[r] = MaskTarget | MaskD1
	}
	cols := Columns{Target: 0, Drivers: [3]int{1, -1, -1}, DriverQC: [3]int{-1, -1, -1}}

	res, ok, err := escalate(m, masks, cols, Hourly, 100, 0, rows, DefaultTolerances())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, MethodD1, res.Method)
}

func TestEscalateFallsBackToTargetOnlyWhenNoDriversPresent(t *testing.T) {
	rows := 200
	m := Matrix{RowsCount: rows, ColsCount: 1, Data: make([]float64, rows)}
	masks := make([]uint8, rows)
	for r := 0; r < rows; r++ {
		m.Data[r] = 3
		masks[r] = MaskTarget
	}
	cols := Columns{Target: 0, Drivers: [3]int{-1, -1, -1}, DriverQC: [3]int{-1, -1, -1}}

	res, ok, err := escalate(m, masks, cols, Hourly, 100, 0, rows, DefaultTolerances())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, MethodTarget, res.Method)
	require.Equal(t, 1, res.TimeWindow) // succeeds at w=0 -> 2*0+1
}

func TestEscalateUnfillableWhenNothingNearbyIsValid(t *testing.T) {
	rows := 50
	m := Matrix{RowsCount: rows, ColsCount: 4, Data: make([]float64, rows*4)}
	masks := make([]uint8, rows) // all zero: nothing valid anywhere

	_, ok, err := escalate(m, masks, ladderTestCols(), Hourly, 25, 0, rows, DefaultTolerances())
	require.NoError(t, err)
	require.False(t, ok)
}
