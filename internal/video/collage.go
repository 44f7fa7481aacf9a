package video

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultCollageWidth bounds the collage row width in pixels.
const DefaultCollageWidth = 1024

// Collage tiles the sampled frames into a square grid:
// floor(sqrt(n)) images per row, ceil(n/perRow) rows, filled
// left-to-right then top-to-bottom. Frames are scaled uniformly to make
// a full row maxWidth wide; each tile's size rounds up, so a row may
// exceed maxWidth by up to one pixel per tile. Unfilled cells stay black.
func Collage(images []image.Image, maxWidth int) image.Image {
	if len(images) == 0 {
		return nil
	}

	b := images[0].Bounds()
	frameW, frameH := b.Dx(), b.Dy()

	perRow := int(math.Floor(math.Sqrt(float64(len(images)))))
	scale := 1.0
	if perRow*frameW > maxWidth {
		scale = float64(maxWidth) / float64(perRow*frameW)
	}
	scaledW := int(math.Ceil(float64(frameW) * scale))
	scaledH := int(math.Ceil(float64(frameH) * scale))
	rows := int(math.Ceil(float64(len(images)) / float64(perRow)))

	canvas := imaging.New(perRow*scaledW, rows*scaledH, color.Black)
	i := 0
	for y := 0; y < rows && i < len(images); y++ {
		for x := 0; x < perRow && i < len(images); x++ {
			tile := images[i]
			tb := tile.Bounds()
			if tb.Dx() != scaledW || tb.Dy() != scaledH {
				tile = imaging.Resize(tile, scaledW, scaledH, imaging.Box)
			}
			canvas = imaging.Paste(canvas, tile, image.Pt(x*scaledW, y*scaledH))
			i++
		}
	}
	return canvas
}
