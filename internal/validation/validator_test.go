package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string  `json:"name" validate:"notblank,max=10"`
	Email    string  `json:"email" validate:"required,email"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,max=3"`
	Username string  `json:"-" validate:"omitempty,username"`
}

func TestFormatValidationError(t *testing.T) {
	v := New()
	long := "abcd"

	tests := []struct {
		name      string
		in        sample
		wantField []string
		wantTags  []string
	}{
		{"valid", sample{Name: "Åsa Ñuñez", Email: "a@x.com"}, nil, nil},
		{"blank name", sample{Name: "   ", Email: "a@x.com"}, []string{"name"}, []string{"notblank"}},
		{"missing email", sample{Name: "A"}, []string{"email"}, []string{"required"}},
		{"bad email", sample{Name: "A", Email: "not-an-email"}, []string{"email"}, []string{"email"}},
		{"too long", sample{Name: "abcdefghijk", Email: "a@x.com"}, []string{"name"}, []string{"max"}},
		{"optional pointer", sample{Name: "A", Email: "a@x.com", Nickname: &long}, []string{"nickname"}, []string{"max"}},
		{"username rule", sample{Name: "A", Email: "a@x.com", Username: "a b"}, []string{"Username"}, []string{"username"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantField == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			violations := FormatValidationError(err)
			require.Len(t, violations, len(tt.wantField))
			for i, vio := range violations {
				assert.Equal(t, tt.wantField[i], vio.Field)
				assert.Equal(t, tt.wantTags[i], vio.Tag)
				assert.NotEmpty(t, vio.Message)
			}
		})
	}
}

func TestFormatValidationErrorIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, FormatValidationError(assert.AnError))
}
