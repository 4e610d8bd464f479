package emit

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/plume-format/plume/format"
	"github.com/plume-format/plume/state"
)

func emitString(t *testing.T, build func(e *Emitter), opts ...EmitOption) string {
	t.Helper()
	var buf bytes.Buffer
	e := New(&buf, opts...)
	build(e)
	if err := e.Err(); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	return buf.String()
}

func TestEmitDocs(t *testing.T) {
	docs := []struct {
		name  string
		build func(e *Emitter)
		opts  []EmitOption
		want  string
	}{
		{
			name:  "scalar-doc",
			build: func(e *Emitter) { e.Scalar("hi") },
			want:  "hi\n",
		},
		{
			name: "block-map",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("name")
				e.Scalar("plume")
				e.Scalar("size")
				e.Int(3)
				e.EndMap()
			},
			want: "name: plume\nsize: 3\n",
		},
		{
			name: "nested-seq-value",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("a")
				e.BeginSeq()
				e.Scalar("x")
				e.Scalar("y")
				e.EndSeq()
				e.Scalar("b")
				e.Int(1)
				e.EndMap()
			},
			want: "a:\n  - x\n  - y\nb: 1\n",
		},
		{
			name: "compact-seq-of-maps",
			build: func(e *Emitter) {
				e.BeginSeq()
				e.BeginMap()
				e.Scalar("k")
				e.Scalar("v")
				e.Scalar("k2")
				e.Scalar("v2")
				e.EndMap()
				e.EndSeq()
			},
			want: "- k: v\n  k2: v2\n",
		},
		{
			name: "flow-map",
			build: func(e *Emitter) {
				e.Set(state.Flow, state.GlobalScope)
				e.BeginMap()
				e.Scalar("a")
				e.Int(1)
				e.Scalar("b")
				e.Int(2)
				e.EndMap()
			},
			want: "{a: 1, b: 2}\n",
		},
		{
			name: "flow-seq",
			build: func(e *Emitter) {
				e.Set(state.Flow, state.GlobalScope)
				e.BeginSeq()
				e.Int(1)
				e.Int(2)
				e.Int(3)
				e.EndSeq()
			},
			want: "[1, 2, 3]\n",
		},
		{
			name: "empty-containers",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("s")
				e.BeginSeq()
				e.EndSeq()
				e.Scalar("m")
				e.BeginMap()
				e.EndMap()
				e.EndMap()
			},
			want: "s: []\nm: {}\n",
		},
		{
			name: "empty-root-seq",
			build: func(e *Emitter) {
				e.BeginSeq()
				e.EndSeq()
			},
			want: "[]\n",
		},
		{
			name: "multi-doc",
			build: func(e *Emitter) {
				e.Scalar("one")
				e.Scalar("two")
			},
			want: "one\n---\ntwo\n",
		},
		{
			name: "long-keys",
			build: func(e *Emitter) {
				e.Set(state.LongKey, state.GlobalScope)
				e.BeginMap()
				e.Scalar("k")
				e.Scalar("v")
				e.EndMap()
			},
			want: "? k\n: v\n",
		},
		{
			name: "composite-key",
			build: func(e *Emitter) {
				e.BeginMap()
				e.BeginSeq()
				e.Scalar("a")
				e.Scalar("b")
				e.EndSeq()
				e.Scalar("v")
				e.EndMap()
			},
			want: "? - a\n  - b\n: v\n",
		},
		{
			name: "json",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("a")
				e.Int(1)
				e.Scalar("b")
				e.BeginSeq()
				e.Bool(true)
				e.Null()
				e.EndSeq()
				e.EndMap()
			},
			opts: []EmitOption{EmitFormat(format.JSONFormat)},
			want: `{"a": 1, "b": [true, null]}` + "\n",
		},
		{
			name: "json-nested",
			build: func(e *Emitter) {
				e.BeginSeq()
				e.BeginMap()
				e.Scalar("k")
				e.Int(1)
				e.EndMap()
				e.Int(2)
				e.EndSeq()
			},
			opts: []EmitOption{EmitFormat(format.JSONFormat)},
			want: `[{"k": 1}, 2]` + "\n",
		},
		{
			name: "trailing-comment",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("a")
				e.Int(1)
				e.Comment("note")
				e.Scalar("b")
				e.Int(2)
				e.EndMap()
			},
			want: "a: 1  # note\nb: 2\n",
		},
		{
			name: "leading-comment",
			build: func(e *Emitter) {
				e.Comment("head")
				e.BeginMap()
				e.Scalar("a")
				e.Int(1)
				e.EndMap()
			},
			want: "# head\na: 1\n",
		},
		{
			name: "comment-dropped-in-json",
			build: func(e *Emitter) {
				e.Comment("gone")
				e.Scalar("v")
			},
			opts: []EmitOption{EmitFormat(format.JSONFormat)},
			want: `"v"` + "\n",
		},
		{
			name: "anchor-alias",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("x")
				e.Anchor("a")
				e.Int(1)
				e.Scalar("y")
				e.Alias("a")
				e.EndMap()
			},
			want: "x: &a 1\ny: *a\n",
		},
		{
			name: "tag",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("k")
				e.Tag("!!str")
				e.Scalar("hi")
				e.EndMap()
			},
			want: "k: !!str hi\n",
		},
		{
			name: "literal-block",
			build: func(e *Emitter) {
				e.Set(state.Literal, state.GlobalScope)
				e.BeginMap()
				e.Scalar("k")
				e.Scalar("a\nb")
				e.EndMap()
			},
			want: "k: |-\n  a\n  b\n",
		},
		{
			name: "local-manip-reverts",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("a")
				e.Set(state.Hex, state.LocalScope)
				e.Int(255)
				e.EndMap()
				e.Int(255)
			},
			want: "a: 0xff\n---\n255\n",
		},
		{
			name: "literal-falls-back-in-flow",
			build: func(e *Emitter) {
				e.Set(state.Literal, state.GlobalScope)
				e.Set(state.Flow, state.GlobalScope)
				e.BeginSeq()
				e.Scalar("a\nb")
				e.EndSeq()
			},
			want: "[\"a\\nb\"]\n",
		},
		{
			name: "no-compact",
			build: func(e *Emitter) {
				e.BeginSeq()
				e.BeginMap()
				e.Scalar("k")
				e.Scalar("v")
				e.EndMap()
				e.EndSeq()
			},
			opts: []EmitOption{EmitCompact(false)},
			want: "-\n  k: v\n",
		},
		{
			name: "flow-contagion",
			build: func(e *Emitter) {
				e.BeginMap()
				e.Scalar("a")
				e.Set(state.Flow, state.LocalScope)
				e.BeginSeq()
				e.BeginSeq()
				e.Int(1)
				e.EndSeq()
				e.Int(2)
				e.EndSeq()
				e.EndMap()
			},
			want: "a: [[1], 2]\n",
		},
	}
	for _, d := range docs {
		t.Run(d.name, func(t *testing.T) {
			got := emitString(t, d.build, d.opts...)
			if got != d.want {
				t.Errorf("got %q want %q", got, d.want)
			}
		})
	}
}

func TestScalarFormats(t *testing.T) {
	scalars := []struct {
		name  string
		manip []state.Manip
		build func(e *Emitter)
		want  string
	}{
		{
			name:  "plain",
			build: func(e *Emitter) { e.Scalar("plain") },
			want:  "plain\n",
		},
		{
			name:  "needs-quote",
			build: func(e *Emitter) { e.Scalar("a: b") },
			want:  "'a: b'\n",
		},
		{
			name:  "bool-lookalike",
			build: func(e *Emitter) { e.Scalar("yes") },
			want:  "'yes'\n",
		},
		{
			name:  "leading-digit",
			build: func(e *Emitter) { e.Scalar("3d") },
			want:  "'3d'\n",
		},
		{
			name:  "single-quoted",
			manip: []state.Manip{state.SingleQuoted},
			build: func(e *Emitter) { e.Scalar("it's") },
			want:  "'it''s'\n",
		},
		{
			name:  "single-falls-back-to-double",
			manip: []state.Manip{state.SingleQuoted},
			build: func(e *Emitter) { e.Scalar("a\nb") },
			want:  "\"a\\nb\"\n",
		},
		{
			name:  "double-quoted",
			manip: []state.Manip{state.DoubleQuoted},
			build: func(e *Emitter) { e.Scalar("hi") },
			want:  "\"hi\"\n",
		},
		{
			name:  "escape-non-ascii",
			manip: []state.Manip{state.EscapeNonASCII},
			build: func(e *Emitter) { e.Scalar("caf\u00e9") },
			want:  "\"caf\\u00e9\"\n",
		},
		{
			name:  "emit-non-ascii",
			build: func(e *Emitter) { e.Scalar("caf\u00e9") },
			want:  "caf\u00e9\n",
		},
		{
			name:  "yes-no",
			manip: []state.Manip{state.YesNoBool},
			build: func(e *Emitter) { e.Bool(true); e.Bool(false) },
			want:  "yes\n---\nno\n",
		},
		{
			name:  "camel-on-off",
			manip: []state.Manip{state.OnOffBool, state.CamelCase},
			build: func(e *Emitter) { e.Bool(true) },
			want:  "On\n",
		},
		{
			name:  "short-bool",
			manip: []state.Manip{state.ShortBool, state.UpperCase},
			build: func(e *Emitter) { e.Bool(true); e.Bool(false) },
			want:  "T\n---\nF\n",
		},
		{
			name:  "short-on-off-stays-long",
			manip: []state.Manip{state.ShortBool, state.OnOffBool},
			build: func(e *Emitter) { e.Bool(true); e.Bool(false) },
			want:  "on\n---\noff\n",
		},
		{
			name:  "hex",
			manip: []state.Manip{state.Hex},
			build: func(e *Emitter) { e.Int(-42); e.Uint(42) },
			want:  "-0x2a\n---\n0x2a\n",
		},
		{
			name:  "oct",
			manip: []state.Manip{state.Oct},
			build: func(e *Emitter) { e.Int(8) },
			want:  "0o10\n",
		},
		{
			name:  "float",
			build: func(e *Emitter) { e.Float64(0.5); e.Float32(0.25) },
			want:  "0.5\n---\n0.25\n",
		},
		{
			name: "float-precision",
			build: func(e *Emitter) {
				e.State().SetDoublePrecision(3, state.GlobalScope)
				e.Float64(1.0 / 3.0)
			},
			want: "0.333\n",
		},
		{
			name:  "non-finite",
			build: func(e *Emitter) { e.Float64(math.Inf(1)); e.Float64(math.Inf(-1)); e.Float64(math.NaN()) },
			want:  ".inf\n---\n-.inf\n---\n.nan\n",
		},
	}
	for _, s := range scalars {
		t.Run(s.name, func(t *testing.T) {
			got := emitString(t, func(e *Emitter) {
				for _, m := range s.manip {
					e.Set(m, state.GlobalScope)
				}
				s.build(e)
			})
			if got != s.want {
				t.Errorf("got %q want %q", got, s.want)
			}
		})
	}
}

func TestUnmatchedEnd(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	e.EndSeq()
	if !errors.Is(e.Err(), state.ErrUnmatchedGroupTag) {
		t.Errorf("got %v want %v", e.Err(), state.ErrUnmatchedGroupTag)
	}
	// subsequent calls are inert once the session failed
	e.Scalar("late")
	if buf.Len() != 0 {
		t.Errorf("wrote %q after failure", buf.String())
	}
}

func TestKindMismatchStops(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	e.BeginSeq()
	e.Int(1)
	e.EndMap()
	if !errors.Is(e.Err(), state.ErrUnmatchedGroupTag) {
		t.Errorf("got %v want %v", e.Err(), state.ErrUnmatchedGroupTag)
	}
}

func TestSetRejectsForeignValue(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	if e.Set(state.Manip(-1), state.GlobalScope) {
		t.Error("accepted a value outside every concept")
	}
	if !e.Set(state.Hex, state.GlobalScope) {
		t.Error("rejected an in-domain value")
	}
}
