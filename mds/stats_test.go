package mds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	require.Equal(t, float64(InvalidValue), mean(nil))
	require.InDelta(t, 2.0, mean([]float64{1, 2, 3}), 1e-9)
}

func TestStdDev(t *testing.T) {
	require.Equal(t, float64(InvalidValue), stdDev([]float64{1}, 1))
	require.Equal(t, float64(InvalidValue), stdDev(nil, 0))

	v := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	sd := stdDev(v, mean(v))
	require.InDelta(t, 2.13809, sd, 1e-4)
}

func TestMedian(t *testing.T) {
	require.Equal(t, float64(InvalidValue), median(nil))
	require.Equal(t, 5.0, median([]float64{5}))
	require.Equal(t, 3.0, median([]float64{5, 1, 3}))
	require.Equal(t, 3.5, median([]float64{5, 1, 3, 7}))
}
