// Command tilegrid tiles image files into one composite grid image.
//
//	tilegrid <rows>x<cols> <output.png> <input1> [input2 ...]
//
// Inputs are placed row-major; missing cells stay blank and extra inputs
// are dropped.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/imagegrid/gridviz/pkg/grid"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <rows>x<cols> <output.png> <input1> [input2 ...]\n", os.Args[0])
		os.Exit(1)
	}

	layout := strings.Split(os.Args[1], "x")
	if len(layout) != 2 {
		log.Fatalf("Invalid layout %q (expected RxC)", os.Args[1])
	}
	rows, err := strconv.Atoi(layout[0])
	if err != nil {
		log.Fatalf("Invalid rows: %v", err)
	}
	cols, err := strconv.Atoi(layout[1])
	if err != nil {
		log.Fatalf("Invalid cols: %v", err)
	}

	outPath := os.Args[2]
	inputs := os.Args[3:]

	batch, err := grid.FromFiles(inputs)
	if err != nil {
		log.Fatalf("failed to load input images: %v", err)
	}

	g, err := grid.Tile(batch, rows, cols)
	if err != nil {
		log.Fatalf("failed to tile images: %v", err)
	}

	if err := g.WriteFile(outPath); err != nil {
		log.Fatalf("failed to write grid: %v", err)
	}
	fmt.Printf("Wrote %dx%d grid of %d images to %s\n", rows, cols, batch.N, outPath)
}
