package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Moka Pot", "moka-pot"},
		{"mixed case and digits", "Drip Kettle 600ml", "drip-kettle-600ml"},
		{"symbols collapse to one dash", "Cold Brew -- Bottle (1L)", "cold-brew-bottle-1l"},
		{"leading and trailing junk trimmed", "  ++Tote Bag++  ", "tote-bag"},
		{"thai letters kept", "เสื้อยืด สีขาว", "เสื้อยืด-สีขาว"},
		{"symbols only leaves nothing", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
