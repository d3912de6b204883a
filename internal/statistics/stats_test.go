package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{0.5}, want: 0.5},
		{name: "several", values: []float64{0.2, 0.4, 0.6}, want: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.values), 1e-9)
		})
	}
}

func TestStdDevPopulation(t *testing.T) {
	// Population stddev of {0, 1} is 0.5, not the sample value ~0.707.
	assert.InDelta(t, 0.5, StdDev([]float64{0, 1}), 1e-9)
	assert.Zero(t, StdDev([]float64{0.7, 0.7, 0.7}))
}

func TestConsistency(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		_, ok := Consistency(nil)
		assert.False(t, ok)
		_, ok = Consistency([]float64{0.9})
		assert.False(t, ok)
	})

	t.Run("identical scores", func(t *testing.T) {
		c, ok := Consistency([]float64{0.8, 0.8, 0.8})
		require.True(t, ok)
		assert.InDelta(t, 1.0, c, 1e-9)
	})

	t.Run("dispersed scores", func(t *testing.T) {
		c, ok := Consistency([]float64{0, 1})
		require.True(t, ok)
		assert.InDelta(t, 0.5, c, 1e-9)
	})

	t.Run("clamped at zero", func(t *testing.T) {
		// stddev > 1 is impossible for [0,1] scores, but the clamp
		// must hold for arbitrary inputs.
		c, ok := Consistency([]float64{-5, 5})
		require.True(t, ok)
		assert.Zero(t, c)
	})
}

func TestBootstrapCI(t *testing.T) {
	scores := []float64{0.7, 0.8, 0.9, 0.75, 0.85}

	t.Run("deterministic", func(t *testing.T) {
		a := BootstrapCI(scores, 0.95)
		b := BootstrapCI(scores, 0.95)
		assert.Equal(t, a, b)
	})

	t.Run("brackets the mean", func(t *testing.T) {
		ci := BootstrapCI(scores, 0.95)
		assert.LessOrEqual(t, ci.Lower, ci.Mean)
		assert.GreaterOrEqual(t, ci.Upper, ci.Mean)
		assert.InDelta(t, 0.8, ci.Mean, 1e-9)
	})

	t.Run("degenerate with one sample", func(t *testing.T) {
		ci := BootstrapCI([]float64{0.6}, 0.95)
		assert.Equal(t, 0.6, ci.Lower)
		assert.Equal(t, 0.6, ci.Upper)
		assert.Equal(t, 0.6, ci.Mean)
		assert.Zero(t, ci.NumBootstraps)
	})
}
