package render

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// Built-in backgrounds.
const (
	BackgroundWall        = "wall"
	BackgroundCliff       = "cliff"
	BackgroundSpace       = "space"
	BackgroundBlack       = "black"
	BackgroundTransparent = "transparent"
)

// DefaultBackgroundPadding is the margin kept free on every side when text
// is placed on a background.
const DefaultBackgroundPadding = 50

type textureFunc func(size image.Point) image.Image

var textures = map[string]textureFunc{
	BackgroundWall:        wall,
	BackgroundCliff:       cliff,
	BackgroundSpace:       space,
	BackgroundBlack:       black,
	BackgroundTransparent: func(size image.Point) image.Image { return image.NewNRGBA(image.Rectangle{Max: size}) },
}

// Backgrounds lists the built-in background names.
func Backgrounds() []string {
	names := make([]string, 0, len(textures))
	for n := range textures {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// IsBuiltinBackground reports whether name is one of [Backgrounds].
func IsBuiltinBackground(name string) bool {
	_, ok := textures[name]
	return ok
}

// Background returns the named texture generated at the given size, or
// loads name as an image file when it is not a built-in. Loaded files keep
// their own size.
func Background(name string, size image.Point) (image.Image, error) {
	if tex, ok := textures[name]; ok {
		return tex(size), nil
	}
	img, err := imaging.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load background %s: %w", name, err)
	}
	return img, nil
}

// Place scales fg to fit inside bg minus padding on every side, keeping the
// aspect ratio, and draws it centered.
func Place(fg, bg image.Image, padding int) *image.NRGBA {
	bs := bg.Bounds().Size()
	box := bs.Sub(image.Pt(2*padding, 2*padding))
	if box.X <= 0 || box.Y <= 0 {
		box = bs
	}

	fs := fg.Bounds().Size()
	if fs.X == 0 || fs.Y == 0 {
		return imaging.Clone(bg)
	}
	scale := min(float64(box.X)/float64(fs.X), float64(box.Y)/float64(fs.Y))
	w := max(1, int(float64(fs.X)*scale+0.5))
	h := max(1, int(float64(fs.Y)*scale+0.5))

	fitted := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(fitted, fitted.Bounds(), fg, fg.Bounds(), xdraw.Over, nil)

	pos := image.Pt((bs.X-w)/2, (bs.Y-h)/2)
	return imaging.Overlay(bg, fitted, pos, 1)
}

func black(size image.Point) image.Image {
	dc := gg.NewContext(size.X, size.Y)
	dc.SetColor(color.Black)
	dc.Clear()
	return dc.Image()
}

func wall(size image.Point) image.Image {
	top, _ := colorful.Hex("#5b4a3c")
	bottom, _ := colorful.Hex("#2e241d")
	return grain(gradient(size, top, bottom, 0), 14, 1)
}

func cliff(size image.Point) image.Image {
	top, _ := colorful.Hex("#6f6a62")
	bottom, _ := colorful.Hex("#3a3631")
	return grain(gradient(size, top, bottom, 0.5), 22, 2)
}

func space(size image.Point) image.Image {
	top, _ := colorful.Hex("#0b0f24")
	bottom, _ := colorful.Hex("#000005")
	dc := gg.NewContextForImage(gradient(size, top, bottom, 0))

	rng := rand.New(rand.NewPCG(3, 3))
	stars := size.X * size.Y / 4000
	for range stars {
		x := rng.Float64() * float64(size.X)
		y := rng.Float64() * float64(size.Y)
		dc.SetRGBA(1, 1, 1, 0.3+0.7*rng.Float64())
		dc.DrawCircle(x, y, 0.5+1.5*rng.Float64())
		dc.Fill()
	}
	return dc.Image()
}

// gradient blends from top to bottom in Lab space. skew tilts the gradient
// axis towards the diagonal.
func gradient(size image.Point, from, to colorful.Color, skew float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rectangle{Max: size})
	span := float64(size.Y) + skew*float64(size.X)
	if span <= 0 {
		return img
	}

	var lut [256][3]uint8
	for i := range lut {
		r, g, b := from.BlendLab(to, float64(i)/255).Clamped().RGB255()
		lut[i] = [3]uint8{r, g, b}
	}
	for y := range size.Y {
		for x := range size.X {
			c := lut[int(255*(float64(y)+skew*float64(x))/span)]
			i := img.PixOffset(x, y)
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c[0], c[1], c[2], 0xff
		}
	}
	return img
}

// grain adds deterministic luminance noise, softened by a small blur.
func grain(img *image.NRGBA, amount int, softness float64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < len(img.Pix); i += 4 {
		d := rng.IntN(2*amount+1) - amount
		for c := range 3 {
			img.Pix[i+c] = uint8(min(255, max(0, int(img.Pix[i+c])+d)))
		}
	}
	return imaging.Blur(img, softness)
}
