//go:build unit

package phone_test

import (
	"testing"

	"table-concierge/internal/pkg/phone"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+27 82 555 0100", "+27825550100"},
		{"whatsapp:+27825550100", "+27825550100"},
		{"SMS: 082 555-0100", "+0825550100"},
		{"(082) 555 0100", ""},
		{"tel:0825550100", "+0825550100"},
		{"12345", ""},
		{"call me", ""},
		{"+1234567890123456", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, phone.Normalize(tt.in))
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "*******0100", phone.Mask("+27825550100"))
	assert.Equal(t, "123", phone.Mask("123"))
}
