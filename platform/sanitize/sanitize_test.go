package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain remark", "plain remark"},
		{"  <b>glass</b> delayed  ", "glass delayed"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;deliver Monday", "alert(1)deliver Monday"},
		{"A &amp; B", "A & B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripHTML(tt.in), tt.in)
	}
}

func TestTextPtr(t *testing.T) {
	assert.Nil(t, TextPtr(nil))

	in := "<i>call first</i>"
	assert.Equal(t, "call first", *TextPtr(&in))
}
