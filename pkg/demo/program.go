// Package demo implements the demo subprogram, which runs one of the bundled
// demos in the terminal.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"src.retui.sh/pkg/comp"
	"src.retui.sh/pkg/config"
	"src.retui.sh/pkg/logutil"
	"src.retui.sh/pkg/prog"
	"src.retui.sh/pkg/store"
	"src.retui.sh/pkg/sys"
	"src.retui.sh/pkg/term"
)

var logger = logutil.GetLogger("[demo] ")

// Program is the demo subprogram. It is always suitable, so it should be the
// last one in a composite program.
type Program struct {
	// Overrides the pacing of the demos when Tick is not zero.
	Params Params
}

const defaultTick = 300 * time.Millisecond

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	demo, ok := demos[f.Demo]
	if !ok {
		return prog.BadUsage(fmt.Sprintf(
			"unknown demo %q, should be one of %s", f.Demo, strings.Join(Names(), ", ")))
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if f.Log == "" && cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}
	logger.Printf("running demo %s with config:\n%s", f.Demo, cfg)

	var out io.Writer = fds[1]
	if cfg.Record != "" {
		st, err := store.NewStore(cfg.Record)
		if err != nil {
			return fmt.Errorf("cannot open recording: %w", err)
		}
		defer st.Close()
		if err := st.SetMeta(store.MetaDemo, f.Demo); err != nil {
			return fmt.Errorf("cannot write recording: %w", err)
		}
		out = io.MultiWriter(fds[1], store.NewRecorder(st))
	}

	runCfg := comp.RunCfg{
		Stderr:       fds[2],
		MaxHeight:    cfg.MaxHeight,
		ExitWhenIdle: true,
	}
	if sys.IsATTY(fds[1].Fd()) && !cfg.NonInteractive {
		runCfg.Driver = term.NewDriver(out)
		runCfg.Size = func() (int, int) {
			h, w := sys.WinSize(fds[1])
			return w, h
		}
		resize, stop := sys.NotifyResize()
		defer stop()
		runCfg.Resize = resize
	} else {
		runCfg.Driver = term.NewPlainDriver(out)
		runCfg.NonInteractive = true
	}

	params := p.Params
	if params.Tick == 0 {
		params.Tick = defaultTick
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err = comp.Run(ctx, demo(params), runCfg)
	if errors.Is(err, context.Canceled) {
		// Interrupted by the user.
		return nil
	}
	return err
}

// Loads the configuration file named by -config, or the one at the default
// location if it exists, and applies environment variables and flags on top.
func loadConfig(f *prog.Flags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.Config != "" {
		cfg, err = config.Load(f.Config)
	} else if path, pathErr := config.DefaultPath(); pathErr == nil {
		cfg, err = config.LoadOptional(path)
	} else {
		logger.Println("not loading configuration:", pathErr)
		cfg = &config.Config{}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if f.MaxHeight > 0 {
		cfg.MaxHeight = f.MaxHeight
	}
	if f.Record != "" {
		cfg.Record = f.Record
	}
	if f.NonInteractive {
		cfg.NonInteractive = true
	}
	return cfg, nil
}
