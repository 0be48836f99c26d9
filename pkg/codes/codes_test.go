package codes_test

import (
	"testing"

	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" cafe-01 ", "CAFE-01"},
		{"café", "CAFE"},
		{"Piña Colada", "PINA COLADA"},
		{"BAR", "BAR"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, codes.Normalize(tt.in))
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	got := codes.NormalizeAll([]string{"bar", " ", "cocina"})
	assert.Equal(t, []string{"BAR", "COCINA"}, got)
}
