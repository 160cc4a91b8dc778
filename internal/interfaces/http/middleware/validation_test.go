package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPakistaniPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"03001234567", true},
		{"03451234567", true},
		{"+923001234567", true},
		{"923001234567", false},
		{"0300123456", false},
		{"030012345678", false},
		{"+92300123456", false},
		{"04001234567", false},
		{"0300-1234567", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPakistaniPhone(tt.phone), tt.phone)
	}
}
