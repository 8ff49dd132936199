package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"unit steps of two", 0, 10, 5, []float64{0, 2, 4, 6, 8, 10}},
		{"sub-unit steps", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"bounds off the step", 1, 17.6, 5, []float64{5, 10, 15}},
		{"symmetric around zero", -50, 50, 5, []float64{-40, -20, 0, 20, 40}},
		{"thousands", 100, 5000, 5, []float64{1000, 2000, 3000, 4000, 5000}},
		{"small fractions", 0.01, 0.05, 5, []float64{0.01, 0.02, 0.03, 0.04, 0.05}},
		{"reversed bounds descend", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"equal bounds", 5, 5, 5, []float64{5}},
		{"zero count", 0, 10, 0, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NiceTicks(tt.start, tt.stop, tt.count))
		})
	}
}

func TestTickIncrement(t *testing.T) {
	assert.Equal(t, 2.0, tickIncrement(0, 10, 5))
	assert.Equal(t, 1000.0, tickIncrement(100, 5000, 5))
	assert.Equal(t, 5.0, tickIncrement(1, 17.6, 5))
	assert.Equal(t, -5.0, tickIncrement(0, 1, 5))
	assert.Equal(t, -100.0, tickIncrement(0.01, 0.05, 5))
}
