package grid

import (
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFilesAndWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, "in"+string(rune('a'+i))+".png")
		img := GrayImage([]uint8{uint8(i), uint8(i), uint8(i), uint8(i)}, 2, 2)
		require.NoError(t, imaging.Save(img, paths[i]))
	}

	b, err := FromFiles(paths)
	require.NoError(t, err)
	assert.Equal(t, 3, b.N)
	assert.Equal(t, 2, b.H)
	assert.Equal(t, 2, b.W)

	g, err := Tile(b, 2, 2)
	require.NoError(t, err)

	out := filepath.Join(dir, "grid.png")
	require.NoError(t, g.WriteFile(out))

	reread, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 4, reread.Bounds().Dx())
	assert.Equal(t, 4, reread.Bounds().Dy())
}

func TestFromFilesMissingInput(t *testing.T) {
	_, err := FromFiles([]string{filepath.Join(t.TempDir(), "missing.png")})
	assert.Error(t, err)

	_, err = FromFiles(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
