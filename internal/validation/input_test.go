package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInstitutionalEmail(t *testing.T) {
	suffix := "@chitkara.edu.in"

	assert.NoError(t, ValidateInstitutionalEmail("student@chitkara.edu.in", suffix))
	assert.NoError(t, ValidateInstitutionalEmail("Student@Chitkara.EDU.in", suffix))

	assert.Error(t, ValidateInstitutionalEmail("", suffix))
	assert.Error(t, ValidateInstitutionalEmail("student@gmail.com", suffix))
	assert.Error(t, ValidateInstitutionalEmail("no-at-sign", suffix))

	// Пустой суффикс означает "любой домен".
	assert.NoError(t, ValidateInstitutionalEmail("someone@example.com", ""))
}

func TestValidateConcernDescription(t *testing.T) {
	assert.Error(t, ValidateConcernDescription(""))
	assert.Error(t, ValidateConcernDescription("short"))
	assert.NoError(t, ValidateConcernDescription("this is long enough to pass"))
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Passw0rd", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}

	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.ok {
			assert.NoErrorf(t, err, "пароль %q должен проходить", tc.password)
		} else {
			assert.Errorf(t, err, "пароль %q не должен проходить", tc.password)
		}
	}
}

func TestValidateEnum(t *testing.T) {
	valid := map[string]struct{}{"low": {}, "medium": {}, "high": {}}
	assert.NoError(t, ValidateEnum("срочность", "high", valid))
	assert.Error(t, ValidateEnum("срочность", "urgent", valid))
}

func TestValidatePrice(t *testing.T) {
	neg := -1.0
	huge := MaxPrice + 1
	okPrice := 150.0

	assert.NoError(t, ValidatePrice("цена", nil))
	assert.NoError(t, ValidatePrice("цена", &okPrice))
	assert.Error(t, ValidatePrice("цена", &neg))
	assert.Error(t, ValidatePrice("цена", &huge))
}
