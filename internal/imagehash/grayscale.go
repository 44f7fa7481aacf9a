package imagehash

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"

	"github.com/JustinTDCT/VHash/internal/verrors"
)

// DecodeGray reads and decodes an image file into an 8-bit grayscale
// matrix.
func DecodeGray(path string) (*image.Gray, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, verrors.OpenFile)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, verrors.DecodeImage)
	}
	return ToGray(img), nil
}

// ToGray converts any image to image.Gray using the L formula
// L = (R*299 + G*587 + B*114) / 1000, rounded to the nearest integer.
func ToGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	if nrgba, ok := img.(*image.NRGBA); ok {
		// fast path for the imaging package's native format
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			si := nrgba.PixOffset(bounds.Min.X, y)
			di := gray.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r := uint32(nrgba.Pix[si])
				g := uint32(nrgba.Pix[si+1])
				b := uint32(nrgba.Pix[si+2])
				gray.Pix[di] = uint8((r*299 + g*587 + b*114 + 500) / 1000)
				si += 4
				di++
			}
		}
		return gray
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a > 0 && a < 0xffff {
				r = r * 0xffff / a
				g = g * 0xffff / a
				b = b * 0xffff / a
			}
			l := ((r>>8)*299 + (g>>8)*587 + (b>>8)*114 + 500) / 1000
			gray.Pix[gray.PixOffset(x, y)] = uint8(l)
		}
	}
	return gray
}

// resizeGray scales a grayscale matrix to w x h using area interpolation.
func resizeGray(img *image.Gray, w, h int) *image.Gray {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	return ToGray(imaging.Resize(img, w, h, imaging.Box))
}
