package grid

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// FromFiles decodes the named image files into a Batch, in argument order.
func FromFiles(paths []string) (Batch, error) {
	if len(paths) == 0 {
		return Batch{}, fmt.Errorf("%w: no input files", ErrInvalidArgument)
	}
	imgs := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		img, err := imaging.Open(p)
		if err != nil {
			return Batch{}, fmt.Errorf("open %s: %w", p, err)
		}
		imgs = append(imgs, img)
	}
	return FromImages(imgs)
}

// WriteFile renders the grid and saves it; the format is chosen from the
// file extension (png, jpg, ...).
func (g Grid) WriteFile(path string) error {
	img, err := g.Image()
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
