package grid

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassGridRowsPerClass(t *testing.T) {
	// 4 images, two per class; image i is filled with 10*(i+1).
	b := Batch{N: 4, H: 2, W: 2, C: 0}
	for i := 0; i < 4; i++ {
		v := uint8(10 * (i + 1))
		b.Data = append(b.Data, v, v, v, v)
	}
	labels := []int{0, 1, 0, 1}

	img, err := ClassGrid(b, labels, 2, 2, nil)
	require.NoError(t, err)

	// Two columns of samples, no icon column, one row per class.
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	at := func(x, y int) uint8 {
		r, _, _, _ := img.At(x, y).RGBA()
		return uint8(r >> 8)
	}
	assert.Equal(t, uint8(10), at(0, 0), "class 0, first sample")
	assert.Equal(t, uint8(30), at(2, 0), "class 0, second sample")
	assert.Equal(t, uint8(20), at(0, 2), "class 1, first sample")
	assert.Equal(t, uint8(40), at(2, 2), "class 1, second sample")
}

func TestClassGridInfersClassCountAndPadsSparseClasses(t *testing.T) {
	b := grayBatch(2)
	labels := []int{0, 2}

	img, err := ClassGrid(b, labels, 0, 3, nil)
	require.NoError(t, err)

	// Inferred 3 classes, 3 samples wide.
	assert.Equal(t, image.Rect(0, 0, 6, 6), img.Bounds())

	// Class 1 has no samples: its row stays blank.
	r, _, _, _ := img.At(0, 2).RGBA()
	assert.Zero(t, uint8(r>>8))
}

func TestClassGridValidatesArguments(t *testing.T) {
	b := grayBatch(2)

	_, err := ClassGrid(b, []int{0}, 1, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ClassGrid(b, []int{0, 0}, 1, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDirIconsResizesToSampleSize(t *testing.T) {
	dir := t.TempDir()
	icon := imaging.New(8, 8, color.NRGBA{255, 0, 0, 255})
	require.NoError(t, imaging.Save(icon, filepath.Join(dir, "00.png")))

	got, err := DirIcons(dir).Icon(0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Bounds().Dx())
	assert.Equal(t, 2, got.Bounds().Dy())

	_, err = DirIcons(dir).Icon(1, 2, 2)
	assert.Error(t, err, "missing icon file should surface as an error")
}
