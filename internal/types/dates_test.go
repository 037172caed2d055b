package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCivilDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CivilDate
		wantErr bool
	}{
		{"valid date", "2024-09-15", CivilDate{2024, time.September, 15}, false},
		{"leap day", "2024-02-29", CivilDate{2024, time.February, 29}, false},
		{"non-leap february 29", "2023-02-29", CivilDate{}, true},
		{"month out of range", "2024-13-01", CivilDate{}, true},
		{"missing zero padding", "2024-9-5", CivilDate{}, true},
		{"garbage", "not-a-date", CivilDate{}, true},
		{"empty", "", CivilDate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCivilDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var appErr *AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, ErrCodeValidationInvalidDate, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCivilDateAddDays(t *testing.T) {
	tests := []struct {
		name string
		date string
		days int
		want string
	}{
		{"rain horizon", "2024-09-15", 7, "2024-09-22"},
		{"window start", "2024-09-15", 1, "2024-09-16"},
		{"window end", "2024-09-15", 3, "2024-09-18"},
		{"month rollover", "2024-09-29", 3, "2024-10-02"},
		{"year rollover", "2024-12-30", 7, "2025-01-06"},
		{"leap february", "2024-02-27", 3, "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseCivilDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.AddDays(tt.days).String())
		})
	}
}

func TestCivilDateAfter(t *testing.T) {
	a := CivilDate{2024, time.September, 15}
	assert.False(t, a.After(a))
	assert.True(t, CivilDate{2024, time.September, 16}.After(a))
	assert.True(t, CivilDate{2024, time.October, 1}.After(a))
	assert.True(t, CivilDate{2025, time.January, 1}.After(a))
	assert.False(t, CivilDate{2024, time.September, 14}.After(a))
	assert.False(t, CivilDate{2023, time.December, 31}.After(a))
}

func TestCivilDateJSONRoundTrip(t *testing.T) {
	d := CivilDate{2024, time.September, 15}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-09-15"`, string(data))

	var back CivilDate
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	var bad CivilDate
	assert.Error(t, json.Unmarshal([]byte(`"15/09/2024"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestCivilDateOfUsesLocation(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	// 2024-09-15 23:30 UTC is already 2024-09-16 in Sydney.
	utc := time.Date(2024, time.September, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-09-16", CivilDateOf(utc.In(sydney)).String())
	assert.Equal(t, "2024-09-15", CivilDateOf(utc).String())
}
