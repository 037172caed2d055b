// Package weather implements the upstream historical weather collaborator.
// It fetches per-day observations for the fixed location from the Open-Meteo
// archive API through the resilient external.BaseClient.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"raincast/internal/config"
	"raincast/internal/external"
	"raincast/internal/types"
)

// dailyVariables is the full set of daily aggregates requested from the
// archive API. It covers both task schemas; the encoders pick what they need.
var dailyVariables = []string{
	types.VarWeatherCode,
	types.VarTemperatureMax,
	types.VarTemperatureMin,
	types.VarApparentTempMax,
	types.VarApparentTempMin,
	types.VarPrecipitationSum,
	types.VarPrecipitationHours,
	types.VarWindSpeedMax,
	types.VarWindGustsMax,
	types.VarWindDirection,
	types.VarShortwaveRadiation,
	types.VarEvapotranspiration,
	types.VarDaylightDuration,
	types.VarSunshineDuration,
}

// Source is the weather collaborator contract consumed by the predictors.
type Source interface {
	// FetchObservation returns the observation for the given calendar date.
	// Fails with validation_future_date before any network I/O if the date is
	// after "today" in the source's reference timezone, with
	// upstream_weather_unavailable on network/timeout/non-success status, and
	// with upstream_no_data if the source has no measurements for the date.
	FetchObservation(ctx context.Context, date types.CivilDate) (*types.WeatherObservation, error)
}

// OpenMeteoClient implements Source against the Open-Meteo archive API.
type OpenMeteoClient struct {
	base     *external.BaseClient
	baseURL  string
	lat, lon float64
	location *time.Location
	logger   *slog.Logger

	// nowFn returns the current instant; injectable for tests.
	nowFn func() time.Time
}

// ClientOption is a functional option for configuring an OpenMeteoClient.
type ClientOption func(*OpenMeteoClient)

// WithNowFunc overrides the clock used for the future-date guard.
// This is intended for testing.
func WithNowFunc(fn func() time.Time) ClientOption {
	return func(c *OpenMeteoClient) {
		c.nowFn = fn
	}
}

// WithBaseClient overrides the resilient HTTP client. This is intended for
// tests that want to disable retries.
func WithBaseClient(base *external.BaseClient) ClientOption {
	return func(c *OpenMeteoClient) {
		c.base = base
	}
}

// NewOpenMeteoClient creates a client for the configured location. The
// reference timezone must already be validated by config loading; an
// unresolvable timezone here is a programmer error and returns an error.
func NewOpenMeteoClient(cfg config.WeatherConfig, logger *slog.Logger, opts ...ClientOption) (*OpenMeteoClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading weather timezone %q: %w", cfg.Timezone, err)
	}

	c := &OpenMeteoClient{
		base: external.NewBaseClient(
			&http.Client{Timeout: cfg.Timeout},
			"openmeteo",
			external.DefaultRetryPolicy(),
			"RainCast/1.0",
		),
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		lat:      cfg.Latitude,
		lon:      cfg.Longitude,
		location: location,
		logger:   logger,
		nowFn:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// archiveResponse is the subset of the archive API response the client reads.
// Each daily variable is an array with one entry per requested day; entries
// may be null when the archive has no value. Values are kept raw because the
// "time" axis holds date strings, not numbers.
type archiveResponse struct {
	Daily map[string]json.RawMessage `json:"daily"`
}

// FetchObservation implements Source.
func (c *OpenMeteoClient) FetchObservation(ctx context.Context, date types.CivilDate) (*types.WeatherObservation, error) {
	// The archive only holds historical data. Compare against "today" in the
	// reference timezone before touching the network.
	today := types.CivilDateOf(c.nowFn().In(c.location))
	if date.After(today) {
		return nil, types.NewAppError(
			types.ErrCodeValidationFutureDate,
			fmt.Sprintf("cannot fetch weather for future date %s; today in %s is %s",
				date, c.location, today),
			nil,
		)
	}

	req, err := c.buildRequest(ctx, date)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to build archive request",
			err,
		)
	}

	c.logger.DebugContext(ctx, "fetching weather observation",
		"date", date.String(),
		"lat", c.lat,
		"lon", c.lon,
	)

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err // already a types.AppError from BaseClient
	}
	defer resp.Body.Close()

	// 4xx responses pass through BaseClient without error.
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("archive API returned HTTP %d", resp.StatusCode),
			fmt.Errorf("archive response: %s", string(body)),
		)
	}

	var payload archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamWeather,
			"archive API returned invalid JSON",
			err,
		)
	}

	obs := flattenDaily(date, payload.Daily)
	if len(obs.Measurements) == 0 {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamNoData,
			fmt.Sprintf("no weather data available for %s", date),
			nil,
		)
	}

	return obs, nil
}

// buildRequest constructs the archive API GET request for a single day.
func (c *OpenMeteoClient) buildRequest(ctx context.Context, date types.CivilDate) (*http.Request, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(c.lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(c.lon, 'f', -1, 64))
	values.Set("start_date", date.String())
	values.Set("end_date", date.String())
	values.Set("daily", strings.Join(dailyVariables, ","))
	values.Set("timezone", c.location.String())

	return http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+values.Encode(), nil)
}

// flattenDaily converts the archive's arrays-of-one into a flat measurement
// map. The "time" axis and null entries are skipped; the encoders default
// absent measurements to zero.
func flattenDaily(date types.CivilDate, daily map[string]json.RawMessage) *types.WeatherObservation {
	obs := &types.WeatherObservation{
		Date:         date,
		Measurements: make(map[string]float64, len(daily)),
	}

	for name, raw := range daily {
		if name == "time" {
			continue
		}
		var values []*float64
		if err := json.Unmarshal(raw, &values); err != nil {
			continue
		}
		if len(values) == 0 || values[0] == nil {
			continue
		}
		obs.Measurements[name] = *values[0]
	}

	return obs
}

// Compile-time interface compliance check.
var _ Source = (*OpenMeteoClient)(nil)
