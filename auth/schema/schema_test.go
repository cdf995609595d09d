package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Validate(t *testing.T) {
	s := Schema{
		Fields: map[string]Field{
			"path":         {Kind: String, Required: true},
			"maxFileBytes": {Kind: Number},
			"public":       {Kind: Bool},
			"image": {Kind: Object, Object: &Schema{
				Fields: map[string]Field{
					"width": {Kind: Number, Required: true},
				},
			}},
		},
		Reserved: []string{"exp", "iat"},
	}

	t.Run("OK", func(t *testing.T) {
		testCases := []map[string]any{
			{"path": "**/*"},
			{"path": "articles/*", "maxFileBytes": 1024},
			{"path": "articles/*", "maxFileBytes": 1024.5, "public": true},
			{"path": "articles/*", "image": map[string]any{"width": int64(800)}},
			{"path": "articles/*", "maxFileBytes": nil},
		}

		for _, testCase := range testCases {
			testCase := testCase

			t.Run("", func(t *testing.T) {
				require.NoError(t, s.Validate(testCase))
			})
		}
	})

	t.Run("Error", func(t *testing.T) {
		testCases := []struct {
			value        map[string]any
			expectedPath string
		}{
			{map[string]any{}, "path"},
			{map[string]any{"path": 123}, "path"},
			{map[string]any{"path": "**/*", "maxFileBytes": "1kb"}, "maxFileBytes"},
			{map[string]any{"path": "**/*", "public": "yes"}, "public"},
			{map[string]any{"path": "**/*", "image": map[string]any{}}, "image.width"},
			{map[string]any{"path": "**/*", "image": "800x600"}, "image"},
			{map[string]any{"path": "**/*", "unknown": true}, "unknown"},
			{map[string]any{"path": "**/*", "exp": 1}, "exp"},
		}

		for _, testCase := range testCases {
			testCase := testCase

			t.Run(testCase.expectedPath, func(t *testing.T) {
				err := s.Validate(testCase.value)
				require.Error(t, err)

				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)

				assert.Equal(t, testCase.expectedPath, fieldErr.Path)
			})
		}
	})

	t.Run("NonEmpty", func(t *testing.T) {
		s := Schema{
			Fields: map[string]Field{
				"kid": {Kind: String, Required: true, NonEmpty: true},
			},
		}

		err := s.Validate(map[string]any{"kid": ""})
		require.Error(t, err)

		assert.Equal(t, "kid: must be a non-empty string", err.Error())
	})

	t.Run("AllowUnknown", func(t *testing.T) {
		s := Schema{AllowUnknown: true, Reserved: []string{"kid"}}

		require.NoError(t, s.Validate(map[string]any{"anything": []string{"goes"}}))
		require.Error(t, s.Validate(map[string]any{"kid": "K"}))
	})
}
