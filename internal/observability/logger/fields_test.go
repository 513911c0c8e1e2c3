package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"anna@example.se": "a***@example.se",
		"x@y.z":           "x***@y.z",
		"no-at-sign":      "***",
		"@leading.com":    "***",
		"åsa@exempel.se":  "å***@exempel.se",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskEmail(in), in)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "error", parseLevel(" error ").String())
	assert.Equal(t, "info", parseLevel("").String())
}
