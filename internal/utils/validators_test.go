package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	v, err := ParseRating(" 6 ", 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	for _, raw := range []string{"", "abc", "0", "8"} {
		_, err := ParseRating(raw, 1, 7)
		assert.Error(t, err, raw)
	}
}

func TestIsChecked(t *testing.T) {
	assert.True(t, IsChecked("on"))
	assert.True(t, IsChecked("TRUE"))
	assert.False(t, IsChecked(""))
	assert.False(t, IsChecked("off"))
}

func TestNewSessionIDIsUnique(t *testing.T) {
	a, err := NewSessionID()
	require.NoError(t, err)
	b, err := NewSessionID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
