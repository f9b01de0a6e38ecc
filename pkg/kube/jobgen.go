package kube

import (
	"context"
	"fmt"
	"strconv"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	meta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/retry"
)

func int32Ptr(i int32) *int32 { return &i }

// TrainingJob describes a cluster-side training run: where the dataset
// snapshot lives, where artifacts go, and the trainer image to run.
type TrainingJob struct {
	Name        string
	Namespace   string
	Image       string
	DatasetURL  string
	ArtifactURL string
	Epochs      int
}

// buildJob assembles the Job object:
// 1) an init container downloads the dataset snapshot to a shared volume
// 2) the trainer container reads it and publishes results to ArtifactURL
func buildJob(t TrainingJob) *batchv1.Job {
	return &batchv1.Job{
		ObjectMeta: meta.ObjectMeta{
			Name:      t.Name,
			Namespace: t.Namespace,
			Labels:    map[string]string{"app": "gridviz-trainer"},
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: int32Ptr(1),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: meta.ObjectMeta{
					Labels: map[string]string{"job-name": t.Name},
				},
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyOnFailure,

					InitContainers: []corev1.Container{{
						Name:  "init-dataset",
						Image: "curlimages/curl:7.85.0",
						Command: []string{
							"sh", "-c",
							fmt.Sprintf(
								"mkdir -p /data && "+
									"curl -s %s -o /data/dataset.gob && "+
									"ls -l /data",
								t.DatasetURL,
							),
						},
						VolumeMounts: []corev1.VolumeMount{{
							Name:      "dataset-volume",
							MountPath: "/data",
						}},
					}},

					Containers: []corev1.Container{{
						Name:  "trainer",
						Image: t.Image,
						Env: []corev1.EnvVar{
							{Name: "DATASET_PATH", Value: "/data/dataset.gob"},
							{Name: "ARTIFACT_URL", Value: t.ArtifactURL},
							{Name: "EPOCHS", Value: strconv.Itoa(t.Epochs)},
						},
						VolumeMounts: []corev1.VolumeMount{{
							Name:      "dataset-volume",
							MountPath: "/data",
						}},
					}},

					Volumes: []corev1.Volume{{
						Name: "dataset-volume",
						VolumeSource: corev1.VolumeSource{
							EmptyDir: &corev1.EmptyDirVolumeSource{},
						},
					}},
				},
			},
		},
	}
}

// Submit creates the training Job on the cluster named by the local
// kubeconfig.
func Submit(ctx context.Context, t TrainingJob) error {
	cfg, err := clientcmd.BuildConfigFromFlags("", clientcmd.RecommendedHomeFile)
	if err != nil {
		return fmt.Errorf("loading kubeconfig: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return fmt.Errorf("building clientset: %w", err)
	}

	job := buildJob(t)

	return retry.RetryOnConflict(retry.DefaultRetry, func() error {
		_, err := clientset.BatchV1().Jobs(t.Namespace).Create(ctx, job, meta.CreateOptions{})
		return err
	})
}
