package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreforensics/hashcore/hashtypes"
)

func TestDigestKnownVectors(t *testing.T) {
	cases := []struct {
		algorithm hashtypes.Algorithm
		input     string
		want      string
	}{
		{hashtypes.SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{hashtypes.SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{hashtypes.SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{hashtypes.MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
	}
	for _, c := range cases {
		d, err := New(c.algorithm)
		require.NoError(t, err, "New(%v)", c.algorithm)
		d.Update([]byte(c.input))
		assert.Equal(t, c.want, d.Finalize(), "%v(%q)", c.algorithm, c.input)
	}
}

func TestDigestChunkedUpdateMatchesSingleShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated for bulk")

	whole, err := New(hashtypes.SHA256)
	require.NoError(t, err)
	whole.Update(data)

	chunked, err := New(hashtypes.SHA256)
	require.NoError(t, err)
	for i := 0; i < len(data); i += 7 {
		end := i + 7
		if end > len(data) {
			end = len(data)
		}
		chunked.Update(data[i:end])
	}

	assert.Equal(t, whole.Finalize(), chunked.Finalize(), "chunked update diverged from single-shot update")
}

func TestNewUnsupportedAlgorithm(t *testing.T) {
	_, err := New(hashtypes.Algorithm(99))
	assert.Error(t, err, "expected error for unsupported algorithm tag")
}

func TestBufferSizeTiers(t *testing.T) {
	cases := []struct {
		size uint64
		want int
	}{
		{0, smallBufferSize},
		{999_999, smallBufferSize},
		{1_000_000, mediumBufferSize},
		{99_999_999, mediumBufferSize},
		{100_000_000, largeBufferSize},
		{10_000_000_000, largeBufferSize},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BufferSize(c.size), "BufferSize(%d)", c.size)
	}
}
