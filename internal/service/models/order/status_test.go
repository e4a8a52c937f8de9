package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_AllKnownValues(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"} {
		parsed, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, parsed.String())
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "Pending", "returned", "all"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}
