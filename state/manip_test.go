package state

import (
	"errors"
	"testing"
)

func TestManipRoundTrip(t *testing.T) {
	for _, m := range Manips() {
		got, err := ParseManip(m.String())
		if err != nil {
			t.Errorf("%s: %v", m, err)
			continue
		}
		if got != m {
			t.Errorf("got %s want %s", got, m)
		}
	}
}

func TestParseManipAliases(t *testing.T) {
	aliases := []struct {
		in   string
		want Manip
	}{
		{"single", SingleQuoted},
		{"double", DoubleQuoted},
		{"upper", UpperCase},
		{"lower", LowerCase},
		{"camel", CamelCase},
	}
	for _, a := range aliases {
		got, err := ParseManip(a.in)
		if err != nil {
			t.Errorf("%s: %v", a.in, err)
			continue
		}
		if got != a.want {
			t.Errorf("%s: got %s want %s", a.in, got, a.want)
		}
	}
}

func TestParseManipBad(t *testing.T) {
	for _, in := range []string{"", "hexy", "Flow"} {
		if _, err := ParseManip(in); !errors.Is(err, ErrBadManip) {
			t.Errorf("%q: got %v want %v", in, err, ErrBadManip)
		}
	}
}
