package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMediaTypePNG(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	kind, ext, err := DetectMediaType(png)

	require.NoError(t, err)
	assert.Equal(t, MediaImage, kind)
	assert.Equal(t, ".png", ext)
}

func TestDetectMediaTypeRejectsText(t *testing.T) {
	_, _, err := DetectMediaType([]byte("#!/bin/sh\nrm -rf /\n"))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestMediaFilenameIsUniqueAndKeepsExtension(t *testing.T) {
	a := MediaFilename(".png")
	b := MediaFilename(".png")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.NotContains(t, a, "/")
}
