package artifacts

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raincast/internal/features"
	"raincast/internal/types"
)

// writeRainArtifacts writes a valid rain artifact bundle under dir and
// returns the task directory. Individual files can then be overwritten or
// removed by the test.
func writeRainArtifacts(t *testing.T, dir string) string {
	t.Helper()
	return writeArtifacts(t, dir, types.TaskRain, features.RainFeatureCount, "0.42")
}

func writePrecipArtifacts(t *testing.T, dir string) string {
	t.Helper()
	return writeArtifacts(t, dir, types.TaskPrecipitation, features.PrecipFeatureCount, "")
}

func writeArtifacts(t *testing.T, dir string, task types.Task, n int, threshold string) string {
	t.Helper()

	taskDir := filepath.Join(dir, string(task))
	require.NoError(t, os.MkdirAll(taskDir, 0o755))

	modelType := modelTypeLinearRegression
	if task == types.TaskRain {
		modelType = modelTypeLogisticRegression
	}
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 0.1
	}
	model, err := json.Marshal(modelFile{Type: modelType, Coefficients: coeffs, Intercept: 0.5})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, modelFileName), model, 0o644))

	mean := make([]float64, n)
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	scaler, err := json.Marshal(standardScalerFile{Mean: mean, Scale: scale})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, scalerFileName), scaler, 0o644))

	if threshold != "" {
		require.NoError(t, os.WriteFile(filepath.Join(taskDir, thresholdFileName), []byte(threshold+"\n"), 0o644))
	}

	return taskDir
}

func appErrCode(t *testing.T, err error) types.ErrorCode {
	t.Helper()
	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestLoadRainArtifact(t *testing.T) {
	dir := t.TempDir()
	writeRainArtifacts(t, dir)

	artifact, err := Load(dir, types.TaskRain)
	require.NoError(t, err)

	assert.Equal(t, types.TaskRain, artifact.Task)
	assert.True(t, artifact.HasThreshold)
	assert.Equal(t, 0.42, artifact.Threshold)
	assert.NotNil(t, artifact.Scaler)
	assert.NotNil(t, artifact.Model)
}

func TestLoadPrecipitationArtifactHasNoThreshold(t *testing.T) {
	dir := t.TempDir()
	writePrecipArtifacts(t, dir)

	artifact, err := Load(dir, types.TaskPrecipitation)
	require.NoError(t, err)
	assert.False(t, artifact.HasThreshold)
}

func TestLoadMissingFiles(t *testing.T) {
	tests := []struct {
		name   string
		remove string
	}{
		{"missing model", modelFileName},
		{"missing scaler", scalerFileName},
		{"missing threshold", thresholdFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			taskDir := writeRainArtifacts(t, dir)
			require.NoError(t, os.Remove(filepath.Join(taskDir, tt.remove)))

			_, err := Load(dir, types.TaskRain)
			assert.Equal(t, types.ErrCodeConfigArtifactMissing, appErrCode(t, err))
		})
	}
}

func TestLoadEmptyDirectoryIsMissingNotCorrupt(t *testing.T) {
	_, err := Load(t.TempDir(), types.TaskRain)
	assert.Equal(t, types.ErrCodeConfigArtifactMissing, appErrCode(t, err))
}

func TestLoadCorruptArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"model not json", modelFileName, "{not json"},
		{"model unknown type", modelFileName, `{"type":"random_forest","coefficients":[1],"intercept":0}`},
		{"model wrong dimensions", modelFileName, `{"type":"logistic_regression","coefficients":[1,2,3],"intercept":0}`},
		{"scaler not json", scalerFileName, "oops"},
		{"scaler wrong dimensions", scalerFileName, `{"mean":[0],"scale":[1]}`},
		{"scaler zero scale column", scalerFileName, `{"mean":[0,0,0,0,0,0,0,0,0,0,0,0,0,0],"scale":[1,1,1,1,1,1,0,1,1,1,1,1,1,1]}`},
		{"threshold not a number", thresholdFileName, "almost one"},
		{"threshold above one", thresholdFileName, "1.5"},
		{"threshold negative", thresholdFileName, "-0.1"},
		{"threshold NaN", thresholdFileName, "NaN"},
		{"threshold positive infinity", thresholdFileName, "+Inf"},
		{"threshold negative infinity", thresholdFileName, "-Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			taskDir := writeRainArtifacts(t, dir)
			require.NoError(t, os.WriteFile(filepath.Join(taskDir, tt.file), []byte(tt.content), 0o644))

			_, err := Load(dir, types.TaskRain)
			assert.Equal(t, types.ErrCodeConfigArtifactCorrupt, appErrCode(t, err))
		})
	}
}

func TestLoadThresholdBoundaryValuesAccepted(t *testing.T) {
	for _, threshold := range []string{"0", "1", "0.5"} {
		t.Run(threshold, func(t *testing.T) {
			dir := t.TempDir()
			taskDir := writeRainArtifacts(t, dir)
			require.NoError(t, os.WriteFile(filepath.Join(taskDir, thresholdFileName), []byte(threshold), 0o644))

			_, err := Load(dir, types.TaskRain)
			assert.NoError(t, err)
		})
	}
}

func TestLoadZstdCompressedArtifact(t *testing.T) {
	dir := t.TempDir()
	taskDir := writeRainArtifacts(t, dir)

	// Replace the plain scaler file with a zstd-compressed variant.
	plain, err := os.ReadFile(filepath.Join(taskDir, scalerFileName))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(taskDir, scalerFileName)))

	encoder, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := encoder.EncodeAll(plain, nil)
	require.NoError(t, encoder.Close())
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, scalerFileName+zstExtension), compressed, 0o644))

	artifact, err := Load(dir, types.TaskRain)
	require.NoError(t, err)
	assert.NotNil(t, artifact.Scaler)
}

func TestLoadCorruptZstdArtifact(t *testing.T) {
	dir := t.TempDir()
	taskDir := writeRainArtifacts(t, dir)

	require.NoError(t, os.Remove(filepath.Join(taskDir, modelFileName)))
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, modelFileName+zstExtension), []byte("not zstd"), 0o644))

	_, err := Load(dir, types.TaskRain)
	assert.Equal(t, types.ErrCodeConfigArtifactCorrupt, appErrCode(t, err))
}

func TestLoadUnknownTask(t *testing.T) {
	_, err := Load(t.TempDir(), types.Task("hail_size"))
	assert.Equal(t, types.ErrCodeInternalUnexpected, appErrCode(t, err))
}
