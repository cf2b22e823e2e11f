package grayscale

import "strings"

// Method selects the formula used to compute the grayscale intensity.
type Method int

// The supported conversion methods.
const (
	RedChannel Method = iota
	GreenChannel
	BlueChannel
	Average
	Lightness
	Luminosity
	RootMeanSquare

	numMethods
)

var methodNames = [numMethods]string{
	RedChannel:     "red",
	GreenChannel:   "green",
	BlueChannel:    "blue",
	Average:        "average",
	Lightness:      "lightness",
	Luminosity:     "luminosity",
	RootMeanSquare: "rms",
}

// Methods returns every supported method in declaration order.
func Methods() []Method {
	methods := make([]Method, 0, numMethods)
	for m := Method(0); m < numMethods; m++ {
		methods = append(methods, m)
	}
	return methods
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	return m >= 0 && m < numMethods
}

func (m Method) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return methodNames[m]
}

// ParseMethod returns the method identified by name.
// The lookup is case insensitive, "root-mean-square" is accepted as an alias of "rms".
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "root-mean-square" {
		return RootMeanSquare, nil
	}
	for m, n := range methodNames {
		if n == name {
			return Method(m), nil
		}
	}
	return 0, &MethodError{Method: -1, Name: name}
}
