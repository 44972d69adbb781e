package textures

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalUploader(t *testing.T) {
	uploader := NewTerminalUploader(4)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	handle, err := uploader.Upload("key", img)
	require.NoError(t, err)
	assert.Equal(t, Handle(1), handle)

	rendered := uploader.Render(handle, 4)
	lines := strings.Split(rendered, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, 4, strings.Count(lines[0], halfBlock))

	uploader.Release(handle)
	assert.Empty(t, uploader.Render(handle, 4))
	assert.Zero(t, uploader.Len())

	_, err = uploader.Upload("empty", image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
}

func TestResize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 4))
	img.Set(9, 3, color.White)

	out := resize(img, 5)
	assert.Equal(t, image.Rect(0, 0, 5, 2), out.Bounds())

	tiny := resize(img, 1)
	assert.Equal(t, 1, tiny.Bounds().Dy())
}

func TestResizeKeepsColors(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := range 32 {
		for x := range 64 {
			img.Set(x, y, red)
		}
	}

	out := resize(img, 16)
	assert.Equal(t, image.Rect(0, 0, 16, 8), out.Bounds())
	assert.Equal(t, red, out.RGBAAt(0, 0))
	assert.Equal(t, red, out.RGBAAt(15, 7))
	assert.Equal(t, lipgloss.Color("#ff0000"), toColor(out.At(8, 4)))
}
