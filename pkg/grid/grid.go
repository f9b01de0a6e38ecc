// Package grid arranges batches of same-shaped images into composite grid
// images for visual inspection of classification datasets.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports non-positive grid dimensions or a
	// malformed batch.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrShapeMismatch reports images of differing shapes in one batch.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Batch is an ordered set of N same-shaped images stored as one flat
// row-major pixel buffer. C is the number of channels per pixel; C == 0
// marks a channel-less (grayscale, rank-3) batch, which is stored the
// same as C == 1 but tracked so that grids built from it stay
// channel-less too.
type Batch struct {
	Data       []uint8
	N, H, W, C int
}

// Grid is a single composite image produced by Tile. Like Batch, C == 0
// marks a channel-less image.
type Grid struct {
	Data    []uint8
	H, W, C int
}

func pixelSize(c int) int {
	if c == 0 {
		return 1
	}
	return c
}

func (b Batch) validate() error {
	if b.N <= 0 {
		return fmt.Errorf("%w: empty batch", ErrInvalidArgument)
	}
	if b.H <= 0 || b.W <= 0 || b.C < 0 {
		return fmt.Errorf("%w: bad image dimensions %dx%dx%d", ErrInvalidArgument, b.H, b.W, b.C)
	}
	if want := b.N * b.H * b.W * pixelSize(b.C); len(b.Data) != want {
		return fmt.Errorf("%w: batch data has %d bytes, want %d", ErrInvalidArgument, len(b.Data), want)
	}
	return nil
}

// image returns the flat pixel data of image i.
func (b Batch) image(i int) []uint8 {
	stride := b.H * b.W * pixelSize(b.C)
	return b.Data[i*stride : (i+1)*stride]
}

// Subset returns a new batch holding the listed images, in order.
func (b Batch) Subset(indices []int) (Batch, error) {
	if err := b.validate(); err != nil {
		return Batch{}, err
	}
	if len(indices) == 0 {
		return Batch{}, fmt.Errorf("%w: empty subset", ErrInvalidArgument)
	}
	stride := b.H * b.W * pixelSize(b.C)
	out := Batch{
		Data: make([]uint8, 0, len(indices)*stride),
		N:    len(indices), H: b.H, W: b.W, C: b.C,
	}
	for _, i := range indices {
		if i < 0 || i >= b.N {
			return Batch{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidArgument, i, b.N)
		}
		out.Data = append(out.Data, b.image(i)...)
	}
	return out, nil
}

// Tile lays the batch out into a rows x cols grid in row-major order and
// returns it as one composite image of rows*H by cols*W pixels. When the
// batch holds more than rows*cols images the excess is dropped; when it
// holds fewer, the remaining cells stay blank (zero-valued). The output
// keeps the batch's channel count, including channel-lessness.
func Tile(b Batch, rows, cols int) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, fmt.Errorf("%w: rows and cols must be positive, got %dx%d", ErrInvalidArgument, rows, cols)
	}
	if err := b.validate(); err != nil {
		return Grid{}, err
	}

	n := b.N
	if cells := rows * cols; n > cells {
		n = cells
	}

	px := pixelSize(b.C)
	// strides of one pixel row, in the source image and in the grid
	rowStride := b.W * px
	gridStride := cols * b.W * px
	out := make([]uint8, rows*b.H*gridStride)

	for i := 0; i < n; i++ {
		r, c := i/cols, i%cols
		src := b.image(i)
		base := r*b.H*gridStride + c*rowStride
		for y := 0; y < b.H; y++ {
			copy(out[base+y*gridStride:base+y*gridStride+rowStride], src[y*rowStride:(y+1)*rowStride])
		}
	}

	return Grid{Data: out, H: rows * b.H, W: cols * b.W, C: b.C}, nil
}
