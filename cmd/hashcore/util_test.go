package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreforensics/hashcore/hashtypes"
)

func TestParseAlgorithmValid(t *testing.T) {
	alg, err := parseAlgorithm("sha256")
	require.NoError(t, err)
	assert.Equal(t, hashtypes.SHA256, alg)
}

func TestParseAlgorithmInvalid(t *testing.T) {
	_, err := parseAlgorithm("whirlpool")
	assert.Error(t, err)
}

func TestFormatThroughput(t *testing.T) {
	assert.Equal(t, "432 MB/s", formatThroughput(432))
}
