package greencoins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoinsFor(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		isSustainable bool
		want          int
	}{
		{"zero amount earns nothing", 0, true, 0},
		{"negative amount earns nothing", -100, true, 0},
		{"non-sustainable earns nothing", 1000, false, 0},
		{"exactly one ratio", 500, true, 1},
		{"just above one ratio rounds up", 501, true, 2},
		{"two ratios", 1000, true, 2},
		{"below one ratio rounds up to one", 1, true, 1},
		{"large amount", 300000, true, 600},
		{"fractional amount", 750.50, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoinsFor(tt.amount, tt.isSustainable))
		})
	}
}

func TestCoinsFor_Deterministic(t *testing.T) {
	first := CoinsFor(1234.56, true)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, CoinsFor(1234.56, true))
	}
}
