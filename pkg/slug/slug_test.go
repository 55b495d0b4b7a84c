package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Kaliningrad – Gdańsk", "kaliningrad-gdansk"},
		{"Калининград — Гданьск", "kaliningrad-gdansk"},
		{"Трансфер в Вильнюс: цены 2024!", "transfer-v-vilnyus-tseny-2024"},
		{"  Łódź & Poznań  ", "lodz-poznan"},
		{"Straße nach Berlin", "strasse-nach-berlin"},
		{"Щука и ёж", "schuka-i-ezh"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMake_TruncatesAtWordBoundary(t *testing.T) {
	in := strings.Repeat("transfer ", 20)
	got := Make(in)
	assert.LessOrEqual(t, len(got), MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, strings.HasSuffix(got, "transfer"))
}
