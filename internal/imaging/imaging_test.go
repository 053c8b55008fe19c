package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "golang.org/x/image/webp"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), G: 80, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess(t *testing.T) {
	t.Run("Small Image Keeps Dimensions", func(t *testing.T) {
		result, err := Process(encodePNG(t, 640, 480))
		require.NoError(t, err)
		assert.Equal(t, 640, result.Width)
		assert.Equal(t, 480, result.Height)
		assert.NotEmpty(t, result.Hash)
		assert.NotEmpty(t, result.Content)

		// Output must decode as WebP.
		decoded, format, err := image.Decode(bytes.NewReader(result.Content))
		require.NoError(t, err)
		assert.Equal(t, "webp", format)
		assert.Equal(t, 640, decoded.Bounds().Dx())
	})

	t.Run("Wide Image Scaled To Max Edge", func(t *testing.T) {
		result, err := Process(encodePNG(t, 3200, 1600))
		require.NoError(t, err)
		assert.Equal(t, MaxDimension, result.Width)
		assert.Equal(t, 800, result.Height)
	})

	t.Run("Tall Image Scaled To Max Edge", func(t *testing.T) {
		result, err := Process(encodePNG(t, 400, 4000))
		require.NoError(t, err)
		assert.Equal(t, MaxDimension, result.Height)
		assert.Equal(t, 160, result.Width)
	})

	t.Run("Extreme Aspect Ratio Never Hits Zero", func(t *testing.T) {
		result, err := Process(encodePNG(t, 4000, 1))
		require.NoError(t, err)
		assert.Equal(t, MaxDimension, result.Width)
		assert.GreaterOrEqual(t, result.Height, 1)
	})

	t.Run("Garbage Input", func(t *testing.T) {
		_, err := Process([]byte("not an image at all"))
		assert.Error(t, err)
	})

	t.Run("Deterministic Hash", func(t *testing.T) {
		content := encodePNG(t, 100, 100)
		a, err := Process(content)
		require.NoError(t, err)
		b, err := Process(content)
		require.NoError(t, err)
		assert.Equal(t, a.Hash, b.Hash)
	})
}
