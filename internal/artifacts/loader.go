package artifacts

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"raincast/internal/features"
	"raincast/internal/types"
)

// Artifact file names within a task's artifact directory.
const (
	modelFileName     = "model.json"
	scalerFileName    = "scaler.json"
	thresholdFileName = "threshold.txt"

	// zstExtension marks a zstd-compressed artifact file. The loader accepts
	// either the plain file or "<name>.zst" and decompresses transparently.
	zstExtension = ".zst"
)

// Artifact is an immutable trained bundle for one task. Once loaded it is
// never mutated and is safe for unsynchronized concurrent reads.
type Artifact struct {
	Task   types.Task
	Scaler Scaler
	Model  Model

	// Threshold is the inclusive decision boundary for the rain task:
	// probability >= Threshold classifies as rain. HasThreshold is false for
	// the precipitation task.
	Threshold    float64
	HasThreshold bool
}

// featureCountFor returns the schema length the task's artifacts must match.
func featureCountFor(task types.Task) (int, error) {
	switch task {
	case types.TaskRain:
		return features.RainFeatureCount, nil
	case types.TaskPrecipitation:
		return features.PrecipFeatureCount, nil
	default:
		return 0, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			fmt.Sprintf("unknown task %q", task),
			nil,
		)
	}
}

// Load reads a task's artifact bundle from baseDir/<task>/. Construction is
// all-or-nothing: either every file loads and validates, or an error is
// returned and no partial Artifact exists.
//
// Missing files produce config_artifact_missing; present-but-invalid files
// produce config_artifact_corrupt.
func Load(baseDir string, task types.Task) (*Artifact, error) {
	featureCount, err := featureCountFor(task)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(baseDir, string(task))

	modelBytes, err := readArtifactFile(filepath.Join(dir, modelFileName))
	if err != nil {
		return nil, err
	}
	scalerBytes, err := readArtifactFile(filepath.Join(dir, scalerFileName))
	if err != nil {
		return nil, err
	}

	var mf modelFile
	if err := json.Unmarshal(modelBytes, &mf); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("unreadable model file for task %s", task),
			err,
		)
	}
	model, err := newModel(mf, featureCount)
	if err != nil {
		return nil, err
	}

	var sf standardScalerFile
	if err := json.Unmarshal(scalerBytes, &sf); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("unreadable scaler file for task %s", task),
			err,
		)
	}
	scaler, err := newStandardScaler(sf, featureCount)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		Task:   task,
		Scaler: scaler,
		Model:  model,
	}

	// The decision threshold exists only for the classification task.
	if task == types.TaskRain {
		threshold, err := loadThreshold(filepath.Join(dir, thresholdFileName))
		if err != nil {
			return nil, err
		}
		artifact.Threshold = threshold
		artifact.HasThreshold = true
	}

	return artifact, nil
}

// readArtifactFile reads an artifact file, accepting a zstd-compressed
// "<path>.zst" variant when the plain file is absent. A file missing in both
// forms is a configuration error, not corruption.
func readArtifactFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("failed to read artifact file %s", path),
			err,
		)
	}

	compressed, zerr := os.ReadFile(path + zstExtension)
	if zerr != nil {
		if os.IsNotExist(zerr) {
			return nil, types.NewAppError(
				types.ErrCodeConfigArtifactMissing,
				fmt.Sprintf("artifact file %s not found", path),
				err,
			)
		}
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("failed to read artifact file %s%s", path, zstExtension),
			zerr,
		)
	}

	decoder, derr := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if derr != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create zstd decoder",
			derr,
		)
	}
	defer decoder.Close()

	data, derr = decoder.DecodeAll(compressed, nil)
	if derr != nil {
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("failed to decompress artifact file %s%s", path, zstExtension),
			derr,
		)
	}
	return data, nil
}

// loadThreshold reads and validates the plain-text decision threshold.
func loadThreshold(path string) (float64, error) {
	data, err := readArtifactFile(path)
	if err != nil {
		return 0, err
	}

	raw := strings.TrimSpace(string(data))
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("threshold file %s does not contain a number", path),
			err,
		)
	}

	// NaN must be rejected explicitly: it compares false against any bound,
	// and probability >= NaN would silently classify every date as no-rain.
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return 0, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("threshold %v outside [0, 1]", threshold),
			nil,
		)
	}

	return threshold, nil
}
