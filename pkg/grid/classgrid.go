package grid

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// IconSet maps a class id to a small representative image, already scaled
// to the requested size.
type IconSet interface {
	Icon(class, w, h int) (image.Image, error)
}

type dirIcons struct {
	dir string
}

// DirIcons reads label icons from dir, one file per class named by the
// zero-padded class index ("00.png", "01.png", ...). Icons are resized to
// the sample image size and their alpha channel is discarded.
func DirIcons(dir string) IconSet {
	return dirIcons{dir: dir}
}

func (d dirIcons) Icon(class, w, h int) (image.Image, error) {
	path := filepath.Join(d.dir, fmt.Sprintf("%02d.png", class))
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("label icon for class %d: %w", class, err)
	}
	// Resize also flattens onto an opaque NRGBA canvas, which is all the
	// alpha handling the grid needs.
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

// ClassGrid composes one row per class: an optional label icon followed by
// the first perClass samples of that class, blank-padded when a class has
// fewer. classes <= 0 infers the class count from the largest label.
// labels must carry one entry per batch image.
func ClassGrid(b Batch, labels []int, classes, perClass int, icons IconSet) (image.Image, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if len(labels) != b.N {
		return nil, fmt.Errorf("%w: %d labels for %d images", ErrInvalidArgument, len(labels), b.N)
	}
	if perClass <= 0 {
		return nil, fmt.Errorf("%w: perClass must be positive, got %d", ErrInvalidArgument, perClass)
	}
	if classes <= 0 {
		for _, l := range labels {
			if l+1 > classes {
				classes = l + 1
			}
		}
		if classes == 0 {
			return nil, fmt.Errorf("%w: cannot infer class count", ErrInvalidArgument)
		}
	}

	iconCols := 0
	if icons != nil {
		iconCols = 1
	}
	canvas := imaging.New((perClass+iconCols)*b.W, classes*b.H, color.NRGBA{0, 0, 0, 255})

	for id := 0; id < classes; id++ {
		var idx []int
		for i, l := range labels {
			if l == id {
				idx = append(idx, i)
				if len(idx) == perClass {
					break
				}
			}
		}

		y := id * b.H
		if icons != nil {
			icon, err := icons.Icon(id, b.W, b.H)
			if err != nil {
				return nil, err
			}
			canvas = imaging.Paste(canvas, icon, image.Pt(0, y))
		}

		// Classes with no samples leave a blank row.
		if len(idx) == 0 {
			continue
		}
		sub, err := b.Subset(idx)
		if err != nil {
			return nil, err
		}
		row, err := Tile(sub, 1, perClass)
		if err != nil {
			return nil, err
		}
		rowImg, err := row.Image()
		if err != nil {
			return nil, err
		}
		canvas = imaging.Paste(canvas, rowImg, image.Pt(iconCols*b.W, y))
	}

	return canvas, nil
}
