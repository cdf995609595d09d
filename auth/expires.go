package auth

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ExpiresIn is the lifetime of a token in seconds.
//
// It can be decoded from either an integer (seconds) or a duration string (eg. "15m", "1h", "7d").
type ExpiresIn int64

// ExpiresInSeconds returns an ExpiresIn of n seconds.
func ExpiresInSeconds(n int64) ExpiresIn {
	return ExpiresIn(n)
}

var secondsPerUnit = map[string]int64{
	"s":       1,
	"sec":     1,
	"secs":    1,
	"second":  1,
	"seconds": 1,
	"m":       60,
	"min":     60,
	"mins":    60,
	"minute":  60,
	"minutes": 60,
	"h":       3600,
	"hr":      3600,
	"hrs":     3600,
	"hour":    3600,
	"hours":   3600,
	"d":       86400,
	"day":     86400,
	"days":    86400,
	"w":       604800,
	"week":    604800,
	"weeks":   604800,
}

// ParseExpiresIn parses a duration string like "1h", "90 minutes" or "1.5d".
// Fractions of a second are dropped.
func ParseExpiresIn(s string) (ExpiresIn, error) {
	value := strings.TrimSpace(s)

	i := strings.IndexFunc(value, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i <= 0 {
		// A bare number in a string is ambiguous (seconds or milliseconds?), so it is rejected.
		return 0, &InvalidExpiresInError{Value: s}
	}

	amount, err := strconv.ParseFloat(value[:i], 64)
	if err != nil {
		return 0, &InvalidExpiresInError{Value: s}
	}

	perUnit, ok := secondsPerUnit[strings.ToLower(strings.TrimSpace(value[i:]))]
	if !ok {
		return 0, &InvalidExpiresInError{Value: s}
	}

	seconds := math.Floor(amount * float64(perUnit))
	if seconds < 1 || seconds > math.MaxInt32 {
		return 0, &InvalidExpiresInError{Value: s}
	}

	return ExpiresIn(seconds), nil
}

// Seconds returns the number of seconds.
func (e ExpiresIn) Seconds() int64 {
	return int64(e)
}

// Duration returns e as a time.Duration.
func (e ExpiresIn) Duration() time.Duration {
	return time.Duration(e) * time.Second
}

// Validate checks that e is a usable token lifetime.
func (e ExpiresIn) Validate() error {
	if e <= 0 {
		return &InvalidExpiresInError{Value: strconv.FormatInt(int64(e), 10)}
	}

	return nil
}

// UnmarshalJSON accepts a number of seconds or a duration string.
func (e *ExpiresIn) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := ParseExpiresIn(s)
		if err != nil {
			return err
		}

		*e = v

		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return &InvalidExpiresInError{Value: string(data)}
	}

	*e = ExpiresIn(n)

	return nil
}

// UnmarshalYAML accepts a number of seconds or a duration string.
func (e *ExpiresIn) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" {
		var n int64
		if err := value.Decode(&n); err != nil {
			return err
		}

		*e = ExpiresIn(n)

		return nil
	}

	v, err := ParseExpiresIn(value.Value)
	if err != nil {
		return err
	}

	*e = v

	return nil
}

// ExpiresInHookFunc returns a mapstructure.DecodeHookFunc that decodes strings and numbers into ExpiresIn.
func ExpiresInHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(ExpiresIn(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParseExpiresIn(v)
		case int:
			return expiresInFromInt(int64(v))
		case int64:
			return expiresInFromInt(v)
		case uint64:
			if v > math.MaxInt32 {
				return nil, &InvalidExpiresInError{Value: strconv.FormatUint(v, 10)}
			}

			return expiresInFromInt(int64(v))
		case float64:
			seconds := math.Floor(v)
			if math.IsNaN(seconds) || seconds < 1 || seconds > math.MaxInt32 {
				return nil, &InvalidExpiresInError{Value: strconv.FormatFloat(v, 'f', -1, 64)}
			}

			return ExpiresIn(seconds), nil
		default:
			return data, nil
		}
	}
}

func expiresInFromInt(n int64) (ExpiresIn, error) {
	if n < 1 || n > math.MaxInt32 {
		return 0, &InvalidExpiresInError{Value: strconv.FormatInt(n, 10)}
	}

	return ExpiresIn(n), nil
}
