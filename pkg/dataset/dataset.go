// Package dataset loads and saves classification dataset snapshots: an
// image batch, one integer label per image, and optional class names.
package dataset

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"

	"github.com/imagegrid/gridviz/pkg/grid"
)

// Snapshot is a persisted dataset: the image batch with its labels.
// Names, when present, maps class ids to human-readable names.
type Snapshot struct {
	Images grid.Batch
	Labels []int
	Names  []string
}

// Validate checks that labels line up with the batch.
func (s *Snapshot) Validate() error {
	if len(s.Labels) != s.Images.N {
		return fmt.Errorf("snapshot has %d labels for %d images", len(s.Labels), s.Images.N)
	}
	return nil
}

// Save writes the snapshot to path in gob encoding.
func Save(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("save dataset %s: %w", path, err)
	}
	return nil
}

// Load reads a snapshot previously written by Save. Missing or corrupt
// files surface here, not in the consumers.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return &s, nil
}

// LabelCount is one entry of a label histogram.
type LabelCount struct {
	Label, Count int
}

// Frequencies counts label occurrences, ordered by label value.
func Frequencies(labels []int) []LabelCount {
	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	out := make([]LabelCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, LabelCount{Label: l, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// PixelValues flattens the batch into float64 samples for density plots.
func PixelValues(b grid.Batch) []float64 {
	out := make([]float64, len(b.Data))
	for i, v := range b.Data {
		out[i] = float64(v)
	}
	return out
}
