package features

import "raincast/internal/types"

// Precipitation feature schema. Independently fixed from the rain schema: the
// two vectors share sub-formulas but are separate contracts, each tied to the
// artifact bundle trained on it. Do not reorder.
const (
	PrecipPrecipitationSum = iota
	PrecipPrecipitationHours
	PrecipTemperatureMax
	PrecipTemperatureMin
	PrecipApparentTempMax
	PrecipApparentTempMin
	PrecipSunshineDuration
	PrecipDaylightDuration
	PrecipWindDirectionSin
	PrecipWindDirectionCos
	PrecipHeavyRainCode
	PrecipSeasonSin
	PrecipSeasonCos

	// PrecipFeatureCount is the length of the precipitation feature vector.
	PrecipFeatureCount
)

// PrecipVector is an ordered feature vector for the precipitation regression task.
type PrecipVector [PrecipFeatureCount]float64

var precipFeatureNames = [PrecipFeatureCount]string{
	PrecipPrecipitationSum:   types.VarPrecipitationSum,
	PrecipPrecipitationHours: types.VarPrecipitationHours,
	PrecipTemperatureMax:     types.VarTemperatureMax,
	PrecipTemperatureMin:     types.VarTemperatureMin,
	PrecipApparentTempMax:    types.VarApparentTempMax,
	PrecipApparentTempMin:    types.VarApparentTempMin,
	PrecipSunshineDuration:   types.VarSunshineDuration,
	PrecipDaylightDuration:   types.VarDaylightDuration,
	PrecipWindDirectionSin:   "wind_direction_sin",
	PrecipWindDirectionCos:   "wind_direction_cos",
	PrecipHeavyRainCode:      "is_weather_code_63_or_65",
	PrecipSeasonSin:          "season_sin",
	PrecipSeasonCos:          "season_cos",
}

// PrecipitationFeatureNames returns the precipitation schema column names in
// vector order.
func PrecipitationFeatureNames() []string {
	names := make([]string, PrecipFeatureCount)
	copy(names, precipFeatureNames[:])
	return names
}

// EncodePrecipitation maps an observation and its calendar date to the
// precipitation feature vector. The observation's own precipitation sum and
// hours carry the autocorrelation signal for short-horizon forecasting.
// Missing measurements default to zero; encoding never fails.
func EncodePrecipitation(obs *types.WeatherObservation, date types.CivilDate) PrecipVector {
	var v PrecipVector

	v[PrecipPrecipitationSum] = obs.Get(types.VarPrecipitationSum)
	v[PrecipPrecipitationHours] = obs.Get(types.VarPrecipitationHours)
	v[PrecipTemperatureMax] = obs.Get(types.VarTemperatureMax)
	v[PrecipTemperatureMin] = obs.Get(types.VarTemperatureMin)
	v[PrecipApparentTempMax] = obs.Get(types.VarApparentTempMax)
	v[PrecipApparentTempMin] = obs.Get(types.VarApparentTempMin)
	v[PrecipSunshineDuration] = obs.Get(types.VarSunshineDuration)
	v[PrecipDaylightDuration] = obs.Get(types.VarDaylightDuration)

	v[PrecipWindDirectionSin], v[PrecipWindDirectionCos] = windDirectionEncoding(obs.Get(types.VarWindDirection))
	v[PrecipHeavyRainCode] = heavyRainIndicator(obs.Get(types.VarWeatherCode))
	v[PrecipSeasonSin], v[PrecipSeasonCos] = seasonEncoding(int(date.Month))

	return v
}
