package cuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		cuit string
		want bool
	}{
		{"valid with dashes", "20-12345678-6", true},
		{"valid without dashes", "20123456786", true},
		{"valid with spaces", "20 12345678 6", true},
		{"wrong check digit", "20-12345678-5", false},
		{"too short", "2012345678", false},
		{"too long", "201234567860", false},
		{"letters", "20-1234567a-6", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.cuit))
		})
	}
}
