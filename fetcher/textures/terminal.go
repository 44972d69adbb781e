package textures

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Upper half block, the foreground paints the top pixel and the background the bottom one.
const halfBlock = "▀"

// TerminalUploader keeps a downscaled copy of every texture, rendered with half blocks.
type TerminalUploader struct {
	mu       sync.Mutex
	next     Handle
	textures map[Handle]*image.RGBA
	maxWidth int
}

// NewTerminalUploader creates a uploader storing textures at most maxWidth pixels wide.
func NewTerminalUploader(maxWidth int) *TerminalUploader {
	if maxWidth <= 0 {
		maxWidth = 64
	}
	return &TerminalUploader{
		textures: make(map[Handle]*image.RGBA),
		maxWidth: maxWidth,
	}
}

func (u *TerminalUploader) Upload(key string, img image.Image) (Handle, error) {
	if img == nil || img.Bounds().Empty() {
		return NoTexture, errors.New("empty image")
	}

	thumb := resize(img, min(u.maxWidth, img.Bounds().Dx()))

	u.mu.Lock()
	defer u.mu.Unlock()

	u.next++
	u.textures[u.next] = thumb
	return u.next, nil
}

func (u *TerminalUploader) Release(handle Handle) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.textures, handle)
}

// Len returns how many textures are alive.
func (u *TerminalUploader) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.textures)
}

// Render draws a texture with the given width in cells. Unknown handles render as nothing.
func (u *TerminalUploader) Render(handle Handle, width int) string {
	u.mu.Lock()
	tex, ok := u.textures[handle]
	u.mu.Unlock()
	if !ok || width <= 0 {
		return ""
	}

	img := resize(tex, width)
	bounds := img.Bounds()

	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(toColor(img.At(x, y)))
			if y+1 < bounds.Max.Y {
				style = style.Background(toColor(img.At(x, y+1)))
			}
			sb.WriteString(style.Render(halfBlock))
		}
		if y+2 < bounds.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func toColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// Bilinear resize keeping the aspect ratio.
func resize(img image.Image, width int) *image.RGBA {
	src := img.Bounds()
	if width <= 0 {
		width = 1
	}
	height := max(1, src.Dy()*width/src.Dx())

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
