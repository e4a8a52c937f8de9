package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWhatsapp_StripsWhitespace(t *testing.T) {
	got, err := NormalizeWhatsapp(" +20 100 123 4567 ")
	require.NoError(t, err)
	assert.Equal(t, "+201001234567", got)
}

func TestNormalizeWhatsapp_PlainDigits(t *testing.T) {
	got, err := NormalizeWhatsapp("01001234567")
	require.NoError(t, err)
	assert.Equal(t, "01001234567", got)
}

func TestNormalizeWhatsapp_Rejects(t *testing.T) {
	cases := []string{
		"",
		"12345",             // too short
		"1234567890123456",  // too long
		"+2010012345a7",     // letters
		"++201001234567",    // double plus
		"201-001-234-567",   // dashes
	}

	for _, c := range cases {
		_, err := NormalizeWhatsapp(c)
		assert.ErrorIs(t, err, ErrInvalidWhatsapp, c)
	}
}
