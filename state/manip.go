package state

import (
	"errors"
	"fmt"
)

// Manip is a formatting manipulator. One enum covers the values of every
// settable concept; each Set* method on State accepts only the members of
// its own concept's domain and rejects the rest.
type Manip int

const (
	// output charset
	EmitNonASCII Manip = iota
	EscapeNonASCII

	// scalar quoting style; Auto is shared with the map key style
	Auto
	SingleQuoted
	DoubleQuoted
	Literal

	// bool spelling
	OnOffBool
	TrueFalseBool
	YesNoBool

	// bool length
	LongBool
	ShortBool

	// bool letter case
	UpperCase
	LowerCase
	CamelCase

	// int base
	Dec
	Hex
	Oct

	// group layout
	Block
	Flow

	// map key style
	LongKey
)

var ErrBadManip = errors.New("bad manipulator")

var manipNames = map[Manip]string{
	EmitNonASCII:   "emit-non-ascii",
	EscapeNonASCII: "escape-non-ascii",
	Auto:           "auto",
	SingleQuoted:   "single-quoted",
	DoubleQuoted:   "double-quoted",
	Literal:        "literal",
	OnOffBool:      "on-off",
	TrueFalseBool:  "true-false",
	YesNoBool:      "yes-no",
	LongBool:       "long-bool",
	ShortBool:      "short-bool",
	UpperCase:      "upper-case",
	LowerCase:      "lower-case",
	CamelCase:      "camel-case",
	Dec:            "dec",
	Hex:            "hex",
	Oct:            "oct",
	Block:          "block",
	Flow:           "flow",
	LongKey:        "long-key",
}

func ParseManip(v string) (Manip, error) {
	m, ok := map[string]Manip{
		"emit-non-ascii":   EmitNonASCII,
		"escape-non-ascii": EscapeNonASCII,
		"auto":             Auto,
		"single":           SingleQuoted,
		"single-quoted":    SingleQuoted,
		"double":           DoubleQuoted,
		"double-quoted":    DoubleQuoted,
		"literal":          Literal,
		"on-off":           OnOffBool,
		"true-false":       TrueFalseBool,
		"yes-no":           YesNoBool,
		"long-bool":        LongBool,
		"short-bool":       ShortBool,
		"upper":            UpperCase,
		"upper-case":       UpperCase,
		"lower":            LowerCase,
		"lower-case":       LowerCase,
		"camel":            CamelCase,
		"camel-case":       CamelCase,
		"dec":              Dec,
		"hex":              Hex,
		"oct":              Oct,
		"block":            Block,
		"flow":             Flow,
		"long-key":         LongKey,
	}[v]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadManip, v)
	}
	return m, nil
}

func (m Manip) String() string {
	d, err := m.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (m Manip) MarshalText() ([]byte, error) {
	s, ok := manipNames[m]
	if !ok {
		return nil, fmt.Errorf("<err: %d is not a manipulator>", m)
	}
	return []byte(s), nil
}

func (m *Manip) UnmarshalText(d []byte) error {
	pm, err := ParseManip(string(d))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

// Manips returns all manipulators in declaration order.
func Manips() []Manip {
	res := make([]Manip, 0, len(manipNames))
	for m := EmitNonASCII; m <= LongKey; m++ {
		res = append(res, m)
	}
	return res
}
