package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDays(t *testing.T) {
	days, err := parseDays("90, 180,720")
	require.NoError(t, err)
	assert.Equal(t, []int{90, 180, 720}, days)

	days, err = parseDays("360")
	require.NoError(t, err)
	assert.Equal(t, []int{360}, days)
}

func TestParseDays_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "30,", "0", "-5", "90,-1"} {
		_, err := parseDays(in)
		assert.Error(t, err, in)
	}
}
