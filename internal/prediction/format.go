package prediction

import (
	"strconv"

	"raincast/internal/types"
)

// RainResponse is the public shape of a rain prediction.
type RainResponse struct {
	InputDate  types.CivilDate `json:"input_date"`
	Prediction RainPrediction  `json:"prediction"`
}

// RainPrediction is the nested prediction block of a RainResponse.
type RainPrediction struct {
	Date     types.CivilDate `json:"date"`
	WillRain bool            `json:"will_rain"`
}

// PrecipitationResponse is the public shape of a precipitation prediction.
// The amount is serialized as a string with exactly one decimal place.
type PrecipitationResponse struct {
	InputDate  types.CivilDate         `json:"input_date"`
	Prediction PrecipitationPrediction `json:"prediction"`
}

// PrecipitationPrediction is the nested prediction block of a
// PrecipitationResponse.
type PrecipitationPrediction struct {
	StartDate         types.CivilDate `json:"start_date"`
	EndDate           types.CivilDate `json:"end_date"`
	PrecipitationFall string          `json:"precipitation_fall"`
}

// SummaryResponse combines both task predictions for one input date.
type SummaryResponse struct {
	InputDate     types.CivilDate         `json:"input_date"`
	Rain          RainPrediction          `json:"rain"`
	Precipitation PrecipitationPrediction `json:"precipitation"`
}

// FormatRain converts a rain result into its public response shape.
func FormatRain(result *types.RainResult) RainResponse {
	return RainResponse{
		InputDate: result.InputDate,
		Prediction: RainPrediction{
			Date:     result.TargetDate,
			WillRain: result.WillRain,
		},
	}
}

// FormatPrecipitation converts a precipitation result into its public
// response shape.
func FormatPrecipitation(result *types.PrecipitationResult) PrecipitationResponse {
	return PrecipitationResponse{
		InputDate: result.InputDate,
		Prediction: PrecipitationPrediction{
			StartDate:         result.StartDate,
			EndDate:           result.EndDate,
			PrecipitationFall: FormatAmount(result.AmountMM),
		},
	}
}

// FormatSummary converts a summary into its public response shape.
func FormatSummary(summary *Summary) SummaryResponse {
	rain := FormatRain(summary.Rain)
	precip := FormatPrecipitation(summary.Precipitation)
	return SummaryResponse{
		InputDate:     rain.InputDate,
		Rain:          rain.Prediction,
		Precipitation: precip.Prediction,
	}
}

// FormatAmount renders a millimetre amount rounded to one decimal place.
// The non-negative invariant is owned by the prediction service, which clamps
// model output before any result reaches the formatter.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 1, 64)
}
