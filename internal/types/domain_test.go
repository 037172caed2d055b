package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeatherObservationGet(t *testing.T) {
	obs := &WeatherObservation{
		Date: CivilDate{2024, time.September, 15},
		Measurements: map[string]float64{
			VarTemperatureMax: 25.3,
			VarWeatherCode:    63,
		},
	}

	assert.Equal(t, 25.3, obs.Get(VarTemperatureMax))
	assert.Equal(t, float64(63), obs.Get(VarWeatherCode))
	assert.Equal(t, 0.0, obs.Get(VarPrecipitationSum), "missing measurement reads as zero")
	assert.True(t, obs.Has(VarWeatherCode))
	assert.False(t, obs.Has(VarPrecipitationSum))
}

func TestWeatherObservationGetNilSafe(t *testing.T) {
	var obs *WeatherObservation
	assert.Equal(t, 0.0, obs.Get(VarTemperatureMax))
	assert.False(t, obs.Has(VarTemperatureMax))

	empty := &WeatherObservation{}
	assert.Equal(t, 0.0, empty.Get(VarTemperatureMax))
}
