package grid

import (
	"fmt"
	"image"
)

// FromImages packs decoded images into a Batch. All images must share the
// same bounds, otherwise ErrShapeMismatch is returned. When every input is
// grayscale the batch is stored channel-less; anything else is converted
// to 3-channel RGB, dropping alpha.
func FromImages(imgs []image.Image) (Batch, error) {
	if len(imgs) == 0 {
		return Batch{}, fmt.Errorf("%w: no images", ErrInvalidArgument)
	}

	w := imgs[0].Bounds().Dx()
	h := imgs[0].Bounds().Dy()
	gray := true
	for i, img := range imgs {
		b := img.Bounds()
		if b.Dx() != w || b.Dy() != h {
			return Batch{}, fmt.Errorf("%w: image %d is %dx%d, want %dx%d",
				ErrShapeMismatch, i, b.Dx(), b.Dy(), w, h)
		}
		if _, ok := img.(*image.Gray); !ok {
			gray = false
		}
	}

	if gray {
		out := Batch{Data: make([]uint8, 0, len(imgs)*h*w), N: len(imgs), H: h, W: w, C: 0}
		for _, img := range imgs {
			g := img.(*image.Gray)
			for y := 0; y < h; y++ {
				out.Data = append(out.Data, g.Pix[y*g.Stride:y*g.Stride+w]...)
			}
		}
		return out, nil
	}

	out := Batch{Data: make([]uint8, 0, len(imgs)*h*w*3), N: len(imgs), H: h, W: w, C: 3}
	for _, img := range imgs {
		min := img.Bounds().Min
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(min.X+x, min.Y+y).RGBA()
				out.Data = append(out.Data, uint8(r>>8), uint8(g>>8), uint8(b>>8))
			}
		}
	}
	return out, nil
}

// Image converts the grid into a stdlib image for rendering or saving.
// Channel-less grids come back as *image.Gray, 3-channel grids as opaque
// *image.NRGBA.
func (g Grid) Image() (image.Image, error) {
	switch g.C {
	case 0, 1:
		img := image.NewGray(image.Rect(0, 0, g.W, g.H))
		copy(img.Pix, g.Data)
		return img, nil
	case 3:
		img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
		for i := 0; i < g.W*g.H; i++ {
			img.Pix[i*4+0] = g.Data[i*3+0]
			img.Pix[i*4+1] = g.Data[i*3+1]
			img.Pix[i*4+2] = g.Data[i*3+2]
			img.Pix[i*4+3] = 0xff
		}
		return img, nil
	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, g.W, g.H))
		copy(img.Pix, g.Data)
		return img, nil
	default:
		return nil, fmt.Errorf("%w: cannot render %d-channel grid", ErrInvalidArgument, g.C)
	}
}

// GrayImage builds a single-image batch from raw grayscale pixel values.
// Mostly a convenience for tests and small tools.
func GrayImage(pix []uint8, h, w int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}
