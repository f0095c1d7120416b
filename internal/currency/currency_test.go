package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"cents", 0.5, "$0.50"},
		{"thousands", 1234.5, "$1,234.50"},
		{"millions", 1234567.891, "$1,234,567.89"},
		{"negative", -42.1, "-$42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, USD(tt.amount))
		})
	}
}

func TestEUR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "0,00 €"},
		{"converted at fixed rate", 100, "93,00 €"},
		{"rounds half away from zero", 1234.5, "1.148,09 €"},
		{"millions", 2000000, "1.860.000,00 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EUR(tt.amount))
		})
	}
}

func TestPair(t *testing.T) {
	assert.Equal(t, "$35.00 (32,55 €)", Pair(35))
}

func TestDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, "$1,234.50", USD(1234.5))
		assert.Equal(t, "1.148,09 €", EUR(1234.5))
	}
}
