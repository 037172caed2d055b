package features

import "raincast/internal/types"

// Rain feature schema. The index constants define the exact column order the
// rain classifier and its scaler were fitted on. Do not reorder.
const (
	RainTemperatureMax = iota
	RainTemperatureMin
	RainApparentTempMax
	RainApparentTempMin
	RainDaylightDuration
	RainShortwaveRadiation
	RainEvapotranspiration
	RainWindSpeedMax
	RainWindGustsMax
	RainWindDirectionSin
	RainWindDirectionCos
	RainHeavyRainCode
	RainSeasonSin
	RainSeasonCos

	// RainFeatureCount is the length of the rain feature vector.
	RainFeatureCount
)

// RainVector is an ordered feature vector for the rain classification task.
type RainVector [RainFeatureCount]float64

// rainFeatureNames lists the schema column names in vector order. Used for
// artifact dimension validation and diagnostics.
var rainFeatureNames = [RainFeatureCount]string{
	RainTemperatureMax:     types.VarTemperatureMax,
	RainTemperatureMin:     types.VarTemperatureMin,
	RainApparentTempMax:    types.VarApparentTempMax,
	RainApparentTempMin:    types.VarApparentTempMin,
	RainDaylightDuration:   types.VarDaylightDuration,
	RainShortwaveRadiation: types.VarShortwaveRadiation,
	RainEvapotranspiration: types.VarEvapotranspiration,
	RainWindSpeedMax:       types.VarWindSpeedMax,
	RainWindGustsMax:       types.VarWindGustsMax,
	RainWindDirectionSin:   "wind_direction_sin",
	RainWindDirectionCos:   "wind_direction_cos",
	RainHeavyRainCode:      "is_weather_code_63_or_65",
	RainSeasonSin:          "season_sin",
	RainSeasonCos:          "season_cos",
}

// RainFeatureNames returns the rain schema column names in vector order.
func RainFeatureNames() []string {
	names := make([]string, RainFeatureCount)
	copy(names, rainFeatureNames[:])
	return names
}

// EncodeRain maps an observation and its calendar date to the rain feature
// vector. Missing measurements default to zero; encoding never fails.
func EncodeRain(obs *types.WeatherObservation, date types.CivilDate) RainVector {
	var v RainVector

	v[RainTemperatureMax] = obs.Get(types.VarTemperatureMax)
	v[RainTemperatureMin] = obs.Get(types.VarTemperatureMin)
	v[RainApparentTempMax] = obs.Get(types.VarApparentTempMax)
	v[RainApparentTempMin] = obs.Get(types.VarApparentTempMin)
	v[RainDaylightDuration] = obs.Get(types.VarDaylightDuration)
	v[RainShortwaveRadiation] = obs.Get(types.VarShortwaveRadiation)
	v[RainEvapotranspiration] = obs.Get(types.VarEvapotranspiration)
	v[RainWindSpeedMax] = obs.Get(types.VarWindSpeedMax)
	v[RainWindGustsMax] = obs.Get(types.VarWindGustsMax)

	v[RainWindDirectionSin], v[RainWindDirectionCos] = windDirectionEncoding(obs.Get(types.VarWindDirection))
	v[RainHeavyRainCode] = heavyRainIndicator(obs.Get(types.VarWeatherCode))
	v[RainSeasonSin], v[RainSeasonCos] = seasonEncoding(int(date.Month))

	return v
}
