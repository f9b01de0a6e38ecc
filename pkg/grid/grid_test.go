package grid

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayBatch builds a channel-less batch of n 2x2 images where image i is
// filled with the value i+1.
func grayBatch(n int) Batch {
	b := Batch{N: n, H: 2, W: 2, C: 0}
	for i := 0; i < n; i++ {
		v := uint8(i + 1)
		b.Data = append(b.Data, v, v, v, v)
	}
	return b
}

func TestTileFillsRowMajorAndPadsWithBlanks(t *testing.T) {
	g, err := Tile(grayBatch(3), 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, g.H)
	assert.Equal(t, 4, g.W)
	assert.Equal(t, 0, g.C)

	want := []uint8{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 0, 0,
		3, 3, 0, 0,
	}
	assert.Equal(t, want, g.Data)
}

func TestTileTruncatesOverfullBatch(t *testing.T) {
	b := Batch{Data: []uint8{1, 2, 3, 4, 5}, N: 5, H: 1, W: 1, C: 0}
	g, err := Tile(b, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, g.H)
	assert.Equal(t, 2, g.W)
	assert.Equal(t, []uint8{1, 2}, g.Data)
}

func TestTilePreservesChannels(t *testing.T) {
	b := Batch{
		Data: []uint8{
			10, 11, 12, 20, 21, 22, // image 0: 1x2 RGB
			30, 31, 32, 40, 41, 42, // image 1
		},
		N: 2, H: 1, W: 2, C: 3,
	}
	g, err := Tile(b, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, g.C)
	assert.Equal(t, 2, g.H)
	assert.Equal(t, 2, g.W)
	want := []uint8{
		10, 11, 12, 20, 21, 22,
		30, 31, 32, 40, 41, 42,
	}
	assert.Equal(t, want, g.Data)
}

func TestTileRejectsBadGridDims(t *testing.T) {
	_, err := Tile(grayBatch(1), 0, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Tile(grayBatch(1), 2, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTileRejectsMalformedBatch(t *testing.T) {
	_, err := Tile(Batch{}, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	short := Batch{Data: []uint8{1, 2}, N: 2, H: 2, W: 2, C: 0}
	_, err = Tile(short, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSubsetPicksImagesInOrder(t *testing.T) {
	sub, err := grayBatch(4).Subset([]int{2, 0})
	require.NoError(t, err)

	assert.Equal(t, 2, sub.N)
	assert.Equal(t, []uint8{3, 3, 3, 3, 1, 1, 1, 1}, sub.Data)

	_, err = grayBatch(4).Subset([]int{4})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFromImagesDetectsGrayscale(t *testing.T) {
	imgs := []image.Image{
		GrayImage([]uint8{1, 2, 3, 4}, 2, 2),
		GrayImage([]uint8{5, 6, 7, 8}, 2, 2),
	}
	b, err := FromImages(imgs)
	require.NoError(t, err)

	assert.Equal(t, 0, b.C)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6, 7, 8}, b.Data)
}

func TestFromImagesRejectsMixedShapes(t *testing.T) {
	imgs := []image.Image{
		GrayImage([]uint8{1, 2, 3, 4}, 2, 2),
		GrayImage([]uint8{1, 2}, 1, 2),
	}
	_, err := FromImages(imgs)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFromImagesConvertsColorToRGB(t *testing.T) {
	rgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	rgba.Pix = []uint8{10, 20, 30, 255}
	b, err := FromImages([]image.Image{rgba})
	require.NoError(t, err)

	assert.Equal(t, 3, b.C)
	assert.Equal(t, []uint8{10, 20, 30}, b.Data)
}

func TestGridImageRoundTrip(t *testing.T) {
	g, err := Tile(grayBatch(2), 1, 2)
	require.NoError(t, err)

	img, err := g.Image()
	require.NoError(t, err)

	gray, ok := img.(*image.Gray)
	require.True(t, ok, "channel-less grid should render as *image.Gray")
	assert.Equal(t, image.Rect(0, 0, 4, 2), gray.Bounds())
	assert.Equal(t, g.Data, gray.Pix)
}
