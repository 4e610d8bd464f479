package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/plume-format/plume/emit"
	"github.com/plume-format/plume/state"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func run(cfg *Config, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	var patch jsonpatch.Patch
	if cfg.PatchFile != "" {
		d, err := os.ReadFile(cfg.PatchFile)
		if err != nil {
			return fmt.Errorf("error reading patch %s: %w", cfg.PatchFile, err)
		}
		patch, err = jsonpatch.DecodePatch(d)
		if err != nil {
			return fmt.Errorf("error decoding patch %s: %w", cfg.PatchFile, err)
		}
	}
	var prg *vm.Program
	if cfg.ExprSrc != "" {
		prg, err = expr.Compile(cfg.ExprSrc)
		if err != nil {
			return fmt.Errorf("%w: bad expr program: %w", cli.ErrUsage, err)
		}
	}

	colored := cfg.colorEnabled(cc.Out)
	for _, arg := range args {
		if err := formatArg(cfg, cc.Out, arg, patch, prg, colored); err != nil {
			return err
		}
	}
	return nil
}

func formatArg(cfg *Config, w io.Writer, arg string, patch jsonpatch.Patch, prg *vm.Program, colored bool) error {
	var in io.Reader
	if arg == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	docs, err := decodeDocs(data)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", arg, err)
	}
	for i, doc := range docs {
		if patch != nil {
			doc, err = applyPatch(patch, doc)
			if err != nil {
				return fmt.Errorf("error patching %s: %w", arg, err)
			}
		}
		if prg != nil {
			doc, err = expr.Run(prg, map[string]any{"doc": toPlain(doc)})
			if err != nil {
				return fmt.Errorf("error evaluating expr on %s: %w", arg, err)
			}
		}
		docs[i] = doc
	}

	if cfg.Diff {
		opts, err := cfg.emitOpts(false)
		if err != nil {
			return err
		}
		buf := bytes.NewBuffer(nil)
		if err := emitDocs(buf, docs, opts, cfg.Sets); err != nil {
			return fmt.Errorf("error formatting %s: %w", arg, err)
		}
		return writeDiff(w, string(data), buf.String(), colored)
	}
	opts, err := cfg.emitOpts(colored)
	if err != nil {
		return err
	}
	if err := emitDocs(w, docs, opts, cfg.Sets); err != nil {
		return fmt.Errorf("error formatting %s: %w", arg, err)
	}
	return nil
}

func decodeDocs(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.UseOrderedMap())
	var docs []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		docs = append(docs, v)
	}
	return docs, nil
}

func emitDocs(w io.Writer, docs []any, opts []emit.EmitOption, sets []state.Manip) error {
	e := emit.New(w, opts...)
	for _, m := range sets {
		e.Set(m, state.GlobalScope)
	}
	for _, doc := range docs {
		emitValue(e, doc)
	}
	return e.Err()
}

func emitValue(e *emit.Emitter, v any) {
	switch x := v.(type) {
	case yaml.MapSlice:
		e.BeginMap()
		for _, it := range x {
			emitValue(e, it.Key)
			emitValue(e, it.Value)
		}
		e.EndMap()
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.BeginMap()
		for _, k := range keys {
			e.Scalar(k)
			emitValue(e, x[k])
		}
		e.EndMap()
	case map[any]any:
		keys := make([]any, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})
		e.BeginMap()
		for _, k := range keys {
			emitValue(e, k)
			emitValue(e, x[k])
		}
		e.EndMap()
	case []any:
		e.BeginSeq()
		for _, it := range x {
			emitValue(e, it)
		}
		e.EndSeq()
	case string:
		e.Scalar(x)
	case bool:
		e.Bool(x)
	case int:
		e.Int(int64(x))
	case int8:
		e.Int(int64(x))
	case int16:
		e.Int(int64(x))
	case int32:
		e.Int(int64(x))
	case int64:
		e.Int(x)
	case uint:
		e.Uint(uint64(x))
	case uint8:
		e.Uint(uint64(x))
	case uint16:
		e.Uint(uint64(x))
	case uint32:
		e.Uint(uint64(x))
	case uint64:
		e.Uint(x)
	case float32:
		e.Float32(x)
	case float64:
		e.Float64(x)
	case nil:
		e.Null()
	default:
		e.Scalar(fmt.Sprint(x))
	}
}

// toPlain strips ordered-map wrappers so documents can cross into
// encoding/json and expr environments.
func toPlain(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(x))
		for _, it := range x {
			m[fmt.Sprint(it.Key)] = toPlain(it.Value)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = toPlain(val)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = toPlain(val)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, it := range x {
			s[i] = toPlain(it)
		}
		return s
	default:
		return v
	}
}

func applyPatch(p jsonpatch.Patch, v any) (any, error) {
	d, err := json.Marshal(toPlain(v))
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, err
	}
	var res any
	if err := json.Unmarshal(out, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func writeDiff(w io.Writer, in, out string, colored bool) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(in, out, false)
	if colored {
		_, err := io.WriteString(w, dmp.DiffPrettyText(diffs))
		return err
	}
	patches := dmp.PatchMake(in, diffs)
	_, err := io.WriteString(w, dmp.PatchToText(patches))
	return err
}
