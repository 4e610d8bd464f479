package emit

import (
	"testing"
)

type nqTest struct {
	in   string
	want bool
}

func TestNeedsQuote(t *testing.T) {
	var nqs = []nqTest{
		{in: "", want: true},
		{in: "plain", want: false},
		{in: "with space", want: false},
		{in: "trailing ", want: true},
		{in: "3d", want: true},
		{in: "-dash", want: true},
		{in: "a: b", want: true},
		{in: "a #c", want: true},
		{in: "a:b", want: false},
		{in: "tab\there", want: true},
		{in: "True", want: true},
		{in: "off", want: true},
		{in: "onward", want: false},
		{in: "~", want: true},
		{in: "café", want: false},
	}
	for _, nq := range nqs {
		if got := NeedsQuote(nq.in); got != nq.want {
			t.Errorf("%q: got %v want %v", nq.in, got, nq.want)
		}
	}
}

func TestQuoteDouble(t *testing.T) {
	var qds = []struct {
		in     string
		escape bool
		want   string
	}{
		{in: "a\"b", want: `"a\"b"`},
		{in: "a\\b", want: `"a\\b"`},
		{in: "a\nb", want: `"a\nb"`},
		{in: "bell\x07", want: `"bell\u0007"`},
		{in: "café", want: "\"café\""},
		{in: "café", escape: true, want: `"caf\u00e9"`},
		{in: "\U0001f600", escape: true, want: `"\U0001f600"`},
	}
	for _, qd := range qds {
		if got := quoteDouble(qd.in, qd.escape); got != qd.want {
			t.Errorf("%q: got %q want %q", qd.in, got, qd.want)
		}
	}
}

func TestQuoteSingle(t *testing.T) {
	if s, ok := quoteSingle("it's"); !ok || s != "'it''s'" {
		t.Errorf("got %q, %v", s, ok)
	}
	if _, ok := quoteSingle("a\nb"); ok {
		t.Error("single quoting accepted a newline")
	}
}
