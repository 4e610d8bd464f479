package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/plume-format/plume/emit"
	"github.com/plume-format/plume/format"
	"github.com/plume-format/plume/state"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type Config struct {
	Color bool `cli:"name=color desc='colorize output'"`
	Diff  bool `cli:"name=d aliases=diff desc='show a diff between input and formatted output'"`
	JSON  bool `cli:"name=j aliases=json desc='emit json'"`

	Indent    int
	Sets      []state.Manip
	ExprSrc   string
	PatchFile string
	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *Config) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *Config) fmtOpt(_ *cli.Context, a string) (any, error) {
	f, err := format.ParseFormat(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.OutFormat = &f
	return f, nil
}

func (cfg *Config) indentOpt(_ *cli.Context, a string) (any, error) {
	n, err := strconv.Atoi(a)
	if err != nil {
		return nil, fmt.Errorf("%w: indent %q: %w", cli.ErrUsage, a, err)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: indent must be positive, got %d", cli.ErrUsage, n)
	}
	cfg.Indent = n
	return n, nil
}

func (cfg *Config) setOpt(_ *cli.Context, a string) (any, error) {
	m, err := state.ParseManip(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Sets = append(cfg.Sets, m)
	return m, nil
}

func (cfg *Config) exprOpt(_ *cli.Context, a string) (any, error) {
	cfg.ExprSrc = a
	return a, nil
}

func (cfg *Config) patchOpt(_ *cli.Context, a string) (any, error) {
	cfg.PatchFile = a
	return a, nil
}

// outFormat resolves the output format from -j and -O.
func (cfg *Config) outFormat() format.Format {
	f := format.YAMLFormat
	if cfg.JSON {
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

// colorEnabled follows the -color flag when given and falls back to
// detecting a terminal on the output.
func (cfg *Config) colorEnabled(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			// explicitly set (to false, or we returned above)
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// emitOpts builds the emitter options for one run, applying the
// configured indent and global manipulators to a fresh settings engine.
func (cfg *Config) emitOpts(colored bool) ([]emit.EmitOption, error) {
	st := state.New()
	if cfg.Indent > 0 {
		if !st.SetIndent(cfg.Indent, state.GlobalScope) {
			return nil, fmt.Errorf("%w: bad indent %d", cli.ErrUsage, cfg.Indent)
		}
	}
	res := []emit.EmitOption{
		emit.EmitFormat(cfg.outFormat()),
		emit.EmitState(st),
	}
	if colored {
		res = append(res, emit.EmitColors(emit.NewColors()))
	}
	return res, nil
}
