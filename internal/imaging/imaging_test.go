package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestProcessAvatarReencodesAsJPEG(t *testing.T) {
	out, err := ProcessAvatar(bytes.NewReader(encodePNG(t, 100, 80)))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
}

func TestProcessAvatarDownscalesLargeImages(t *testing.T) {
	out, err := ProcessAvatar(bytes.NewReader(encodePNG(t, 2048, 1024)))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, MaxDimension, cfg.Width)
	assert.Equal(t, MaxDimension/2, cfg.Height)
}

func TestProcessAvatarRejectsNonImageData(t *testing.T) {
	_, err := ProcessAvatar(bytes.NewReader([]byte("plain text payload")))
	assert.Error(t, err)
}
