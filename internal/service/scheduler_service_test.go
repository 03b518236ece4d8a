package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("08:00")
	require.NoError(t, err)
	assert.Equal(t, "0 8 * * *", spec)

	spec, err = buildDailySpec("21:35")
	require.NoError(t, err)
	assert.Equal(t, "35 21 * * *", spec)
}

func TestBuildDailySpecRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "8", "8:00:00", "24:00", "12:60", "aa:bb"} {
		_, err := buildDailySpec(input)
		assert.Error(t, err, "input %q", input)
	}
}
