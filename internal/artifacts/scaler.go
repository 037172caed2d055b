// Package artifacts loads and caches the trained model bundles the prediction
// pipeline runs against. An artifact bundle is immutable after load: a scaler,
// a model, and (for the rain task) a decision threshold, all fitted offline by
// the training pipeline and shipped as files.
//
// The concrete numerical method behind a model is deliberately opaque to the
// rest of the service: predictors only see the Scaler and Model capabilities.
package artifacts

import (
	"fmt"

	"raincast/internal/types"
)

// Scaler applies a previously-fitted feature scaling transform. The transform
// must use the exact parameters learned during training; fitting a new scaler
// at serve time would silently change every prediction.
type Scaler interface {
	// Transform scales a feature vector. The input length must match the
	// schema the scaler was fitted on.
	Transform(x []float64) ([]float64, error)
}

// Model invokes a previously-trained model on a scaled feature vector.
// For the rain task the output is the probability of the positive class;
// for the precipitation task it is a continuous estimate in millimetres.
type Model interface {
	Infer(x []float64) (float64, error)
}

// standardScalerFile is the serialized form of a fitted standard scaler.
type standardScalerFile struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// standardScaler implements Scaler as (x - mean) / scale per column, the
// transform learned by the training pipeline's StandardScaler.
type standardScaler struct {
	mean  []float64
	scale []float64
}

// newStandardScaler validates the serialized parameters against the task's
// schema length. A zero scale entry would divide by zero at serve time, so it
// is rejected at load time as corruption.
func newStandardScaler(f standardScalerFile, featureCount int) (*standardScaler, error) {
	if len(f.Mean) != featureCount || len(f.Scale) != featureCount {
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("scaler dimensions mean=%d scale=%d do not match feature schema length %d",
				len(f.Mean), len(f.Scale), featureCount),
			nil,
		)
	}
	for i, s := range f.Scale {
		if s == 0 {
			return nil, types.NewAppError(
				types.ErrCodeConfigArtifactCorrupt,
				fmt.Sprintf("scaler has zero scale at column %d", i),
				nil,
			)
		}
	}
	return &standardScaler{mean: f.Mean, scale: f.Scale}, nil
}

// Transform implements Scaler.
func (s *standardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.mean) {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			fmt.Sprintf("feature vector length %d does not match scaler dimension %d", len(x), len(s.mean)),
			nil,
		)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
