package grayscale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethod_ParseMethod(t *testing.T) {
	testCases := map[string]Method{
		"red":              RedChannel,
		"Green":            GreenChannel,
		" BLUE ":           BlueChannel,
		"average":          Average,
		"lightness":        Lightness,
		"luminosity":       Luminosity,
		"rms":              RootMeanSquare,
		"root-mean-square": RootMeanSquare,
	}
	for name, want := range testCases {
		got, err := ParseMethod(name)
		assert.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestMethod_ParseUnknownMethod(t *testing.T) {
	_, err := ParseMethod("sepia")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Contains(t, err.Error(), "sepia")
}

func TestMethod_StringRoundTrip(t *testing.T) {
	methods := Methods()
	assert.Len(t, methods, 7)
	for i, m := range methods {
		assert.Equal(t, Method(i), m)
		assert.True(t, m.Valid())

		parsed, err := ParseMethod(m.String())
		assert.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "unknown", Method(99).String())
	assert.False(t, Method(-1).Valid())
}
