package main

import (
	"bytes"
	"testing"

	"github.com/plume-format/plume/emit"
	"github.com/plume-format/plume/state"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
)

func TestFormatRoundTrip(t *testing.T) {
	in := `name: plume
on: true
items:
  - 1
  - 2
empty: []
---
second: doc
`
	docs, err := decodeDocs([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs want 2", len(docs))
	}
	var buf bytes.Buffer
	if err := emitDocs(&buf, docs, nil, nil); err != nil {
		t.Fatal(err)
	}
	want := `name: plume
'on': true
items:
  - 1
  - 2
empty: []
---
second: doc
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestFormatWithManips(t *testing.T) {
	docs, err := decodeDocs([]byte("mask: 255\nflow:\n  - a\n  - b\n"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := emitDocs(&buf, docs, nil, []state.Manip{state.Hex, state.Flow}); err != nil {
		t.Fatal(err)
	}
	want := "{mask: 0xff, flow: [a, b]}\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestToPlain(t *testing.T) {
	docs, err := decodeDocs([]byte("a:\n  b:\n    - 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	got := toPlain(docs[0])
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("got %T want map[string]any", got)
	}
	inner, ok := m["a"].(map[string]any)
	if !ok {
		t.Fatalf("got %T want map[string]any", m["a"])
	}
	if _, ok := inner["b"].([]any); !ok {
		t.Fatalf("got %T want []any", inner["b"])
	}
}

func TestApplyPatch(t *testing.T) {
	docs, err := decodeDocs([]byte("a: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := jsonpatch.DecodePatch([]byte(`[{"op": "replace", "path": "/a", "value": 2}]`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := applyPatch(p, docs[0])
	if err != nil {
		t.Fatal(err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("got %T want map[string]any", out)
	}
	if m["a"] != float64(2) {
		t.Errorf("got %v want 2", m["a"])
	}
}

func TestEmitValueSortsPlainMaps(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(&buf)
	emitValue(e, map[string]any{"b": 2, "a": 1})
	if err := e.Err(); err != nil {
		t.Fatal(err)
	}
	want := "a: 1\nb: 2\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}
