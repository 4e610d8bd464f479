package emit

import (
	"math"
	"strconv"
	"strings"

	"github.com/plume-format/plume/state"
)

// Scalar writes a string value, quoted per the current string format
// and output charset.
func (e *Emitter) Scalar(v string) {
	if !e.ok() {
		return
	}
	attr := StringColor
	if e.st.CurrentGroupKind() == state.MapGroup && e.st.CurrentChildCount()%2 == 0 {
		attr = KeyColor
	}
	e.node(e.color(attr, e.formatString(v)))
}

// Int writes an integer in the current base.
func (e *Emitter) Int(v int64) {
	if !e.ok() {
		return
	}
	e.node(e.color(NumberColor, e.formatInt(v)))
}

// Uint writes an unsigned integer in the current base.
func (e *Emitter) Uint(v uint64) {
	if !e.ok() {
		return
	}
	e.node(e.color(NumberColor, e.formatUint(v)))
}

// Bool writes a boolean in the current spelling, case and length.
func (e *Emitter) Bool(v bool) {
	if !e.ok() {
		return
	}
	e.node(e.color(BoolColor, e.formatBool(v)))
}

// Float32 writes v with the configured single-precision significant
// digits.
func (e *Emitter) Float32(v float32) {
	if !e.ok() {
		return
	}
	e.node(e.color(NumberColor, e.formatFloat(float64(v), 32, e.st.FloatPrecision())))
}

// Float64 writes v with the configured double-precision significant
// digits.
func (e *Emitter) Float64(v float64) {
	if !e.ok() {
		return
	}
	e.node(e.color(NumberColor, e.formatFloat(v, 64, e.st.DoublePrecision())))
}

// Null writes a null value.
func (e *Emitter) Null() {
	if !e.ok() {
		return
	}
	e.node(e.color(NullColor, "null"))
}

func (e *Emitter) formatString(v string) string {
	escape := e.st.OutputCharset() == state.EscapeNonASCII
	if e.fmat.IsJSON() {
		return quoteDouble(v, escape)
	}

	// block literals cannot appear as map keys or inside flow groups;
	// those positions degrade to the Auto style
	inKey := e.st.CurrentGroupKind() == state.MapGroup && e.st.CurrentChildCount()%2 == 0
	inFlow := e.inFlow()

	sf := e.st.StringFormat()
	if sf == state.Literal && (inKey || inFlow) {
		sf = state.Auto
	}
	switch sf {
	case state.SingleQuoted:
		if s, ok := quoteSingle(v); ok {
			return s
		}
		return quoteDouble(v, escape)
	case state.DoubleQuoted:
		return quoteDouble(v, escape)
	case state.Literal:
		return e.literalBlock(v)
	default: // Auto
		if strings.Contains(v, "\n") {
			if inKey || inFlow {
				return quoteDouble(v, escape)
			}
			return e.literalBlock(v)
		}
		if escape && !isASCII(v) {
			return quoteDouble(v, true)
		}
		if NeedsQuote(v) {
			return quoteAuto(v)
		}
		return v
	}
}

// literalBlock renders v as a "|" block scalar, lines indented one
// level past the current children column.
func (e *Emitter) literalBlock(v string) string {
	col := e.childCol() + e.st.Indent()
	pad := strings.Repeat(" ", col)
	header := "|"
	if !strings.HasSuffix(v, "\n") {
		header = "|-"
	}
	body := strings.TrimSuffix(v, "\n")
	var b strings.Builder
	b.WriteString(header)
	for _, ln := range strings.Split(body, "\n") {
		b.WriteString("\n")
		if ln != "" {
			b.WriteString(pad)
			b.WriteString(ln)
		}
	}
	return b.String()
}

func (e *Emitter) formatBool(v bool) string {
	if e.fmat.IsJSON() {
		return strconv.FormatBool(v)
	}
	var word string
	switch e.st.BoolFormat() {
	case state.OnOffBool:
		word = map[bool]string{true: "on", false: "off"}[v]
	case state.YesNoBool:
		word = map[bool]string{true: "yes", false: "no"}[v]
	default:
		word = strconv.FormatBool(v)
	}
	if e.st.BoolLengthFormat() == state.ShortBool && e.st.BoolFormat() != state.OnOffBool {
		// on/off shortens ambiguously to "o"/"o", so it stays long
		word = word[:1]
	}
	switch e.st.BoolCaseFormat() {
	case state.UpperCase:
		return strings.ToUpper(word)
	case state.CamelCase:
		return strings.ToUpper(word[:1]) + word[1:]
	default:
		return word
	}
}

func (e *Emitter) formatInt(v int64) string {
	if e.fmat.IsJSON() {
		return strconv.FormatInt(v, 10)
	}
	neg := ""
	u := uint64(v)
	if v < 0 {
		neg = "-"
		u = uint64(-v)
	}
	return neg + e.formatUintBase(u)
}

func (e *Emitter) formatUint(v uint64) string {
	if e.fmat.IsJSON() {
		return strconv.FormatUint(v, 10)
	}
	return e.formatUintBase(v)
}

func (e *Emitter) formatUintBase(u uint64) string {
	switch e.st.IntFormat() {
	case state.Hex:
		return "0x" + strconv.FormatUint(u, 16)
	case state.Oct:
		return "0o" + strconv.FormatUint(u, 8)
	default:
		return strconv.FormatUint(u, 10)
	}
}

func (e *Emitter) formatFloat(v float64, bits, prec int) string {
	switch {
	case math.IsNaN(v):
		if e.fmat.IsJSON() {
			return "null"
		}
		return ".nan"
	case math.IsInf(v, 1):
		if e.fmat.IsJSON() {
			return "null"
		}
		return ".inf"
	case math.IsInf(v, -1):
		if e.fmat.IsJSON() {
			return "null"
		}
		return "-.inf"
	}
	if prec <= 0 {
		prec = -1
	}
	return strconv.FormatFloat(v, 'g', prec, bits)
}
