package types

// Task identifies one of the two prediction tasks served by the pipeline.
// Each task has its own feature schema and its own trained artifact bundle.
type Task string

const (
	// TaskRain is the binary rain/no-rain classification task (7 days ahead).
	TaskRain Task = "rain_or_not"

	// TaskPrecipitation is the cumulative precipitation regression task
	// (following 3 days).
	TaskPrecipitation Task = "precipitation_fall"
)

// Canonical daily measurement names as returned by the Open-Meteo archive API.
// The feature encoders look observations up by these names; an absent name
// reads as zero.
const (
	VarWeatherCode        = "weather_code"
	VarTemperatureMax     = "temperature_2m_max"
	VarTemperatureMin     = "temperature_2m_min"
	VarApparentTempMax    = "apparent_temperature_max"
	VarApparentTempMin    = "apparent_temperature_min"
	VarPrecipitationSum   = "precipitation_sum"
	VarPrecipitationHours = "precipitation_hours"
	VarWindSpeedMax       = "wind_speed_10m_max"
	VarWindGustsMax       = "wind_gusts_10m_max"
	VarWindDirection      = "wind_direction_10m_dominant"
	VarShortwaveRadiation = "shortwave_radiation_sum"
	VarEvapotranspiration = "et0_fao_evapotranspiration"
	VarDaylightDuration   = "daylight_duration"
	VarSunshineDuration   = "sunshine_duration"
)

// WeatherObservation is the raw per-day measurement set for one calendar date
// at the fixed location. It is produced by the weather collaborator and
// consumed once per prediction. Measurements the upstream did not report are
// simply absent from the map; Get returns zero for them, which is the
// documented default the models were trained with.
type WeatherObservation struct {
	Date         CivilDate
	Measurements map[string]float64
}

// Get returns the named measurement, or 0 if it is absent.
// Missing measurements are a normal condition, never an error.
func (o *WeatherObservation) Get(name string) float64 {
	if o == nil || o.Measurements == nil {
		return 0
	}
	return o.Measurements[name]
}

// Has reports whether the named measurement was present in the upstream data.
func (o *WeatherObservation) Has(name string) bool {
	if o == nil || o.Measurements == nil {
		return false
	}
	_, ok := o.Measurements[name]
	return ok
}

// RainResult is the outcome of the rain classification task.
type RainResult struct {
	InputDate   CivilDate
	TargetDate  CivilDate
	WillRain    bool
	Probability float64
}

// PrecipitationResult is the outcome of the precipitation regression task.
// AmountMM is already clamped to be non-negative.
type PrecipitationResult struct {
	InputDate CivilDate
	StartDate CivilDate
	EndDate   CivilDate
	AmountMM  float64
}
