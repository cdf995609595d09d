package config

import (
	"github.com/mitchellh/mapstructure"

	"github.com/portive/upload-auth/auth"
)

// decode decodes a raw factory config into a typed factory.
// Unknown keys are rejected to catch typos early.
func decode(input map[string]interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			auth.ExpiresInHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused: true,
		Result:      output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
