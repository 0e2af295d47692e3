package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type dateHolder struct {
	Date string `validate:"date"`
}

func TestDateRule(t *testing.T) {
	val := New()

	cases := []struct {
		value string
		ok    bool
	}{
		{"", true},
		{"2024-03-01", true},
		{"  ", true},
		{"2024/03/01", false},
		{"2024-13-01", false},
		{"yesterday", false},
	}

	for _, tc := range cases {
		err := val.Struct(dateHolder{Date: tc.value})
		if tc.ok {
			assert.NoError(t, err, "value %q", tc.value)
		} else {
			assert.Error(t, err, "value %q", tc.value)
		}
	}
}
