package resample

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogitExp(t *testing.T) {
	tests := []struct {
		name string
		logp float64
		want float64
	}{
		{"Half", math.Log(0.5), 0},
		{"High", math.Log(0.9), math.Log(9)},
		{"Low", math.Log(0.1), -math.Log(9)},
		{"Certain", 0, -math.Log(1e-20)},
		{"Very unlikely", -1000, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogitExp(tt.logp)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRelaxedBernoulli(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	t.Run("Open unit interval", func(t *testing.T) {
		for range 1000 {
			w := RelaxedBernoulli(rng, 0.3, 1.0)
			assert.Greater(t, w, 0.0)
			assert.Less(t, w, 1.0)
		}
	})

	t.Run("Low temperature follows logit", func(t *testing.T) {
		var hi, lo float64
		for range 500 {
			hi += RelaxedBernoulli(rng, 4, 0.1)
			lo += RelaxedBernoulli(rng, -4, 0.1)
		}
		assert.Greater(t, hi/500, 0.9)
		assert.Less(t, lo/500, 0.1)
	})
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-15)
	assert.InDelta(t, 1.0, sigmoid(800), 1e-15)
	assert.InDelta(t, 0.0, sigmoid(-800), 1e-15)
	assert.False(t, math.IsNaN(sigmoid(-800)))
}
