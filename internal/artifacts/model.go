package artifacts

import (
	"fmt"
	"math"

	"raincast/internal/types"
)

// Model file type tags. The training pipeline exports models as a tagged JSON
// document; the tag selects which inference implementation is constructed.
const (
	modelTypeLogisticRegression = "logistic_regression"
	modelTypeLinearRegression   = "linear_regression"
)

// modelFile is the serialized form of a trained model.
type modelFile struct {
	Type         string    `json:"type"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// newModel constructs the inference implementation for a serialized model and
// validates its dimensions against the task's feature schema.
func newModel(f modelFile, featureCount int) (Model, error) {
	if len(f.Coefficients) != featureCount {
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("model has %d coefficients, feature schema has %d columns",
				len(f.Coefficients), featureCount),
			nil,
		)
	}

	switch f.Type {
	case modelTypeLogisticRegression:
		return &logisticModel{coefficients: f.Coefficients, intercept: f.Intercept}, nil
	case modelTypeLinearRegression:
		return &linearModel{coefficients: f.Coefficients, intercept: f.Intercept}, nil
	default:
		return nil, types.NewAppError(
			types.ErrCodeConfigArtifactCorrupt,
			fmt.Sprintf("unknown model type %q", f.Type),
			nil,
		)
	}
}

// dot computes the inner product of a weight vector and a feature vector.
func dot(w, x []float64) (float64, error) {
	if len(w) != len(x) {
		return 0, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			fmt.Sprintf("feature vector length %d does not match model dimension %d", len(x), len(w)),
			nil,
		)
	}
	var sum float64
	for i, v := range x {
		sum += w[i] * v
	}
	return sum, nil
}

// logisticModel implements Model for binary classification. Infer returns the
// probability of the positive (rain) class.
type logisticModel struct {
	coefficients []float64
	intercept    float64
}

// Infer implements Model via the logistic sigmoid of the linear score.
func (m *logisticModel) Infer(x []float64) (float64, error) {
	score, err := dot(m.coefficients, x)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-(score + m.intercept))), nil
}

// linearModel implements Model for regression. Infer returns the raw estimate,
// which may be negative near zero; clamping is the predictor's responsibility.
type linearModel struct {
	coefficients []float64
	intercept    float64
}

// Infer implements Model.
func (m *linearModel) Infer(x []float64) (float64, error) {
	score, err := dot(m.coefficients, x)
	if err != nil {
		return 0, err
	}
	return score + m.intercept, nil
}
