package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(ColorBlue)
	require.Equal(t, ColorBlue, fb.GetPixel(3, 2))

	fb.SetPixel(1, 1, ColorRed)
	require.Equal(t, ColorRed, fb.GetPixel(1, 1))

	// Out of range writes are dropped and reads are transparent.
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(4, 0, ColorRed)
	require.Equal(t, Color{}, fb.GetPixel(4, 0))
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	fb.DrawLine(0, 0, 4, 4, ColorWhite)
	for i := range 5 {
		require.Equal(t, ColorWhite, fb.GetPixel(i, i))
	}
	require.Equal(t, Color{}, fb.GetPixel(1, 0))
}

func TestClipLine(t *testing.T) {
	tests := []struct {
		name               string
		x0, y0, x1, y1     float64
		ok                 bool
		wx0, wy0, wx1, wy1 float64
	}{
		{"inside", 1, 1, 3, 3, true, 1, 1, 3, 3},
		{"crossing", -5, 2, 15, 2, true, 0, 2, 9, 2},
		{"left of box", -5, 0, -1, 9, false, 0, 0, 0, 0},
		{"above box", 0, -3, 9, -1, false, 0, 0, 0, 0},
		{"diagonal", -1, -1, 10, 10, true, 0, 0, 9, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipLine(tc.x0, tc.y0, tc.x1, tc.y1, 0, 0, 9, 9)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			require.InDelta(t, tc.wx0, x0, 1e-12)
			require.InDelta(t, tc.wy0, y0, 1e-12)
			require.InDelta(t, tc.wx1, x1, 1e-12)
			require.InDelta(t, tc.wy1, y1, 1e-12)
		})
	}
}

func TestFramebufferDrawLineFar(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLineF(-1e9, 5, 1e9, 5, ColorGreen)
	for x := range 10 {
		require.Equal(t, ColorGreen, fb.GetPixel(x, 5))
	}
	require.Equal(t, Color{}, fb.GetPixel(0, 4))

	// Entirely outside: nothing drawn.
	fb.DrawLineF(-10, -10, -5, 20, ColorRed)
	for _, p := range fb.Pixels {
		require.NotEqual(t, ColorRed, p)
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(2, 1, ColorRed)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, fb.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 3, img.Bounds().Dx())
	r, g, b, _ := img.At(2, 1).RGBA()
	require.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
}
