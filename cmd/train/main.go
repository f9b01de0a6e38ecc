// Command train is the training workflow stub: it loads a dataset
// snapshot, renders inspection artifacts (label frequencies, pixel value
// density, per-class sample grid), and optionally publishes them to the
// object store and submits the real training job to the cluster.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/imagegrid/gridviz/pkg/dataset"
	"github.com/imagegrid/gridviz/pkg/grid"
	"github.com/imagegrid/gridviz/pkg/kube"
	"github.com/imagegrid/gridviz/pkg/plot"
	"github.com/imagegrid/gridviz/pkg/storage"
)

var (
	datasetPath = getEnv("DATASET_PATH", "data/dataset.gob")
	outputDir   = getEnv("OUTPUT_DIR", "out")
	iconDir     = getEnv("ICON_DIR", "images")
	nClasses    = getEnvInt("N_CLASSES", 25)
	perClass    = getEnvInt("SAMPLES_PER_CLASS", 5)
	epochs      = getEnvInt("EPOCHS", 10)

	uploadArtifacts = getEnvBool("UPLOAD_ARTIFACTS", false)
	submitJob       = getEnvBool("SUBMIT_JOB", false)
	trainerImage    = getEnv("TRAINER_IMAGE", "ghcr.io/imagegrid/gridviz-trainer:latest")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func storeConfig() storage.Config {
	return storage.Config{
		Endpoint:  getEnv("STORE_ENDPOINT", "http://localhost:9000"),
		Region:    getEnv("STORE_REGION", "us-east-1"),
		AccessKey: getEnv("STORE_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("STORE_SECRET_KEY", "minioadmin"),
		Bucket:    getEnv("STORE_BUCKET", "training-artifacts"),
		Prefix:    getEnv("STORE_PREFIX", time.Now().Format("run-20060102-150405")),
	}
}

func sanitizeJobName(s string) string {
	base := strings.TrimSuffix(filepath.Base(s), filepath.Ext(s))
	sanitized := regexp.MustCompile(`[^a-z0-9-]`).ReplaceAllString(strings.ToLower(base), "-")
	sanitized = strings.Trim(sanitized, "-")

	name := fmt.Sprintf("gridviz-train-%s-%d", sanitized, time.Now().UnixNano())
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

func renderArtifacts(snap *dataset.Snapshot) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	write := func(name string, render func(f *os.File) error) error {
		f, err := os.Create(filepath.Join(outputDir, name))
		if err != nil {
			return err
		}
		if err := render(f); err != nil {
			f.Close()
			return fmt.Errorf("render %s: %w", name, err)
		}
		return f.Close()
	}

	if err := write("label_frequencies.png", func(f *os.File) error {
		return plot.LabelFrequencies(f, snap.Labels, plot.FreqOptions{Dataset: "train"})
	}); err != nil {
		return err
	}

	if err := write("value_density.png", func(f *os.File) error {
		return plot.DensityDistribution(f, dataset.PixelValues(snap.Images), plot.DensityOptions{
			Dataset:   "train",
			Bandwidth: 8, // pixel values span 0..255
		})
	}); err != nil {
		return err
	}

	var icons grid.IconSet
	if _, err := os.Stat(iconDir); err == nil {
		icons = grid.DirIcons(iconDir)
	} else {
		log.Printf("no icon dir at %s, rendering sample grid without labels", iconDir)
	}
	samples, err := grid.ClassGrid(snap.Images, snap.Labels, nClasses, perClass, icons)
	if err != nil {
		return err
	}
	if err := imaging.Save(samples, filepath.Join(outputDir, "class_samples.png")); err != nil {
		return fmt.Errorf("save class samples: %w", err)
	}

	// A metrics file only exists once a previous run has trained; the
	// curve chart is skipped otherwise.
	if metricsPath := getEnv("METRICS_PATH", ""); metricsPath != "" {
		train, valid, err := loadCurves(metricsPath)
		if err != nil {
			return err
		}
		if err := write("training_curves.png", func(f *os.File) error {
			return plot.TrainCurves(f, train, valid, plot.CurveOptions{})
		}); err != nil {
			return err
		}
	}
	return nil
}

// loadCurves reads per-epoch "train,valid" accuracy pairs from a CSV file.
func loadCurves(path string) (train, valid []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load metrics: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("load metrics %s: %w", path, err)
	}
	for i, row := range rows {
		if len(row) != 2 {
			return nil, nil, fmt.Errorf("load metrics %s: row %d has %d columns, want 2", path, i+1, len(row))
		}
		tv, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("load metrics %s: row %d: %w", path, i+1, err)
		}
		vv, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("load metrics %s: row %d: %w", path, i+1, err)
		}
		train = append(train, tv)
		valid = append(valid, vv)
	}
	return train, valid, nil
}

func main() {
	ctx := context.Background()
	cfg := storeConfig()

	// DATASET_KEY pulls the snapshot from the object store when it is not
	// already on disk.
	if key := getEnv("DATASET_KEY", ""); key != "" {
		if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
			store, err := storage.New(ctx, cfg)
			if err != nil {
				log.Fatalf("error building store client: %v", err)
			}
			if err := store.Download(ctx, key, datasetPath); err != nil {
				log.Fatalf("failed to fetch dataset: %v", err)
			}
			log.Printf("fetched dataset %s to %s", key, datasetPath)
		}
	}

	snap, err := dataset.Load(datasetPath)
	if err != nil {
		log.Fatalf("error loading dataset: %v", err)
	}
	log.Printf("loaded %d images (%dx%d), %d labels", snap.Images.N, snap.Images.H, snap.Images.W, len(snap.Labels))

	if err := renderArtifacts(snap); err != nil {
		log.Fatalf("error rendering artifacts: %v", err)
	}
	log.Printf("artifacts written to %s", outputDir)

	if uploadArtifacts {
		store, err := storage.New(ctx, cfg)
		if err != nil {
			log.Fatalf("error building store client: %v", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatalf("error ensuring bucket: %v", err)
		}
		if err := store.UploadDir(ctx, outputDir); err != nil {
			log.Fatalf("failed to upload artifacts: %v", err)
		}
	}

	if submitJob {
		job := kube.TrainingJob{
			Name:        sanitizeJobName(datasetPath),
			Namespace:   getEnv("JOB_NAMESPACE", "default"),
			Image:       trainerImage,
			DatasetURL:  fmt.Sprintf("%s/%s/%s", cfg.Endpoint, cfg.Bucket, filepath.Base(datasetPath)),
			ArtifactURL: fmt.Sprintf("%s/%s/%s", cfg.Endpoint, cfg.Bucket, cfg.Prefix),
			Epochs:      epochs,
		}
		if err := kube.Submit(ctx, job); err != nil {
			log.Fatalf("failed to create training job: %v", err)
		}
		log.Printf("training job submitted: %s", job.Name)
	}
}
