package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sufficient1Pass", false},
		{"too short", "Ab1", true},
		{"too long", strings.Repeat("Aa1", 50), true},
		{"no uppercase", "lowercase1only", true},
		{"no lowercase", "UPPERCASE1ONLY", true},
		{"no digit", "NoDigitsHereAtAll", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "amina_wanjiku", false},
		{"valid with hyphen", "lens-reader", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"illegal characters", "not ok!", true},
		{"leading underscore", "_amina", true},
		{"trailing hyphen", "amina-", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail("reader@sanaalens.co.ke"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}
