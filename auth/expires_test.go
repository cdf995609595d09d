package auth_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/portive/upload-auth/auth"
)

func TestParseExpiresIn(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		testCases := []struct {
			value    string
			expected time.Duration
		}{
			{"30s", 30 * time.Second},
			{"1m", time.Minute},
			{"15 minutes", 15 * time.Minute},
			{"1h", time.Hour},
			{"2 hours", 2 * time.Hour},
			{"1d", 24 * time.Hour},
			{"7days", 7 * 24 * time.Hour},
			{"1w", 7 * 24 * time.Hour},
			{"1.5h", 90 * time.Minute},
			{" 1H ", time.Hour},
		}

		for _, testCase := range testCases {
			testCase := testCase

			t.Run(testCase.value, func(t *testing.T) {
				actual, err := auth.ParseExpiresIn(testCase.value)
				require.NoError(t, err)

				assert.Equal(t, testCase.expected, actual.Duration())
			})
		}
	})

	t.Run("Error", func(t *testing.T) {
		testCases := []string{
			"",
			"h",
			"3600",
			"1y",
			"1 fortnight",
			"0h",
			"-1h",
			"1.2.3h",
		}

		for _, testCase := range testCases {
			testCase := testCase

			t.Run(testCase, func(t *testing.T) {
				_, err := auth.ParseExpiresIn(testCase)
				require.Error(t, err)

				var expiresErr *auth.InvalidExpiresInError
				assert.ErrorAs(t, err, &expiresErr)
			})
		}
	})
}

func TestExpiresIn_Unmarshal(t *testing.T) {
	type options struct {
		ExpiresIn auth.ExpiresIn `json:"expiresIn" yaml:"expiresIn" mapstructure:"expiresIn"`
	}

	t.Run("JSON", func(t *testing.T) {
		var fromString, fromNumber options

		require.NoError(t, json.Unmarshal([]byte(`{"expiresIn":"1h"}`), &fromString))
		require.NoError(t, json.Unmarshal([]byte(`{"expiresIn":3600}`), &fromNumber))

		assert.Equal(t, auth.ExpiresInSeconds(3600), fromString.ExpiresIn)
		assert.Equal(t, fromString, fromNumber)
	})

	t.Run("YAML", func(t *testing.T) {
		var fromString, fromNumber options

		require.NoError(t, yaml.Unmarshal([]byte("expiresIn: 1d"), &fromString))
		require.NoError(t, yaml.Unmarshal([]byte("expiresIn: 86400"), &fromNumber))

		assert.Equal(t, auth.ExpiresInSeconds(86400), fromString.ExpiresIn)
		assert.Equal(t, fromString, fromNumber)
	})

	t.Run("Mapstructure", func(t *testing.T) {
		testCases := []map[string]any{
			{"expiresIn": "1h"},
			{"expiresIn": 3600},
		}

		for _, testCase := range testCases {
			testCase := testCase

			t.Run("", func(t *testing.T) {
				var actual options

				decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
					DecodeHook: auth.ExpiresInHookFunc(),
					Result:     &actual,
				})
				require.NoError(t, err)

				require.NoError(t, decoder.Decode(testCase))

				assert.Equal(t, auth.ExpiresInSeconds(3600), actual.ExpiresIn)
			})
		}
	})

	t.Run("Error", func(t *testing.T) {
		var actual options

		require.Error(t, json.Unmarshal([]byte(`{"expiresIn":"3600"}`), &actual))
		require.Error(t, yaml.Unmarshal([]byte("expiresIn: soon"), &actual))
	})

	t.Run("MapstructureOutOfRange", func(t *testing.T) {
		testCases := []struct {
			input    any
			expected string
		}{
			{uint64(math.MaxUint64), "18446744073709551615"},
			{uint64(math.MaxInt32 + 1), "2147483648"},
			{int64(math.MaxInt64), "9223372036854775807"},
			{0, "0"},
			{-60, "-60"},
			{float64(0.5), "0.5"},
			{float64(1e12), "1000000000000"},
		}

		for _, testCase := range testCases {
			testCase := testCase

			t.Run(testCase.expected, func(t *testing.T) {
				var actual options

				decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
					DecodeHook: auth.ExpiresInHookFunc(),
					Result:     &actual,
				})
				require.NoError(t, err)

				err = decoder.Decode(map[string]any{"expiresIn": testCase.input})

				// mapstructure flattens hook errors into strings
				require.Error(t, err)
				assert.Contains(t, err.Error(), (&auth.InvalidExpiresInError{Value: testCase.expected}).Error())
				assert.Equal(t, auth.ExpiresIn(0), actual.ExpiresIn)
			})
		}
	})
}
