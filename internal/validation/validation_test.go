package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plain", false},
		{"no@tld", false},
		{"white space@example.com", false},
		{"user@@example.com", false},
		{"@example.com", false},
		{"user@.com", true}, // pattern only checks local@domain.tld shape
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ValidEmail(tc.email), "email %q", tc.email)
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456", "123456"},
		{"12-34-56", "123456"},
		{" 1 2 3 4 5 6 7 8 ", "123456"},
		{"abc123", "123"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeCode(tc.in))
	}
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("000000"))
	assert.True(t, ValidCode("123456"))
	assert.False(t, ValidCode("12345"))
	assert.False(t, ValidCode("1234567"))
	assert.False(t, ValidCode("12345a"))
	assert.False(t, ValidCode(""))
}

func TestValidateName(t *testing.T) {
	t.Run("valid name passes", func(t *testing.T) {
		require.Empty(t, ValidateName("Standard Pricing"))
	})

	t.Run("empty name is required", func(t *testing.T) {
		errs := ValidateName("")
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
		assert.Contains(t, errs[0].Message, "required")
	})

	t.Run("whitespace-only name is required", func(t *testing.T) {
		errs := ValidateName("   ")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "required")
	})

	t.Run("leading or trailing spaces rejected", func(t *testing.T) {
		errs := ValidateName(" padded ")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "leading or trailing")
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		long := make([]byte, 256)
		for i := range long {
			long[i] = 'x'
		}
		errs := ValidateName(string(long))
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "exceed")
	})
}

func TestValidator_ClearField(t *testing.T) {
	v := &Validator{}
	v.Validate("", "name", NameRule())
	require.True(t, v.HasErrors())

	v.ClearField("name")
	require.False(t, v.HasErrors())
	require.Empty(t, v.Error("name"))
}
