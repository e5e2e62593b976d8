package comp

import (
	"context"
	"io"
	"os"
	"strings"

	"src.retui.sh/pkg/errutil"
	"src.retui.sh/pkg/output"
	"src.retui.sh/pkg/sys"
	"src.retui.sh/pkg/term"
)

// RunCfg keeps configuration for Run.
type RunCfg struct {
	// Driver receives all output. If nil, output goes to os.Stdout; when it is
	// not a terminal, the session is non-interactive.
	Driver term.Driver
	// Stderr receives lines printed to stderr handles. If nil, they are
	// written to the driver.
	Stderr io.Writer
	// NonInteractive makes the dynamic region only written once, when the
	// session stops.
	NonInteractive bool
	// Size returns the size of the terminal. If nil, the size of os.Stdout is
	// used when Driver is nil, and 80 columns of unlimited height otherwise.
	// A height of 0 or less means unlimited.
	Size func() (width, height int)
	// Resize receives a value when the size of the terminal changes. If nil
	// and Driver is nil, SIGWINCH is watched.
	Resize <-chan struct{}
	// MaxHeight limits the height of the dynamic region when positive.
	MaxHeight int
	// ExitWhenIdle makes Run return once no task is running and no pass is
	// needed. Wakers held by components outside of tasks, such as those
	// passed to ChangePoller.PollChange, do not keep the session alive; a
	// component that wakes the loop from a timer needs a task instead.
	ExitWhenIdle bool
}

// Run runs the render loop with root as the root element until one of the
// following happens:
//
//   - A component calls Hooks.Exit, or root has no Kind. Run returns nil.
//
//   - ctx is cancelled. Run returns ctx.Err().
//
//   - RunCfg.ExitWhenIdle is set and the tree is idle. Run returns nil.
//
//   - A task fails, hooks are misused or the terminal cannot be written to.
//     Run returns the error.
//
// Before returning, Run cancels all tasks and waits for them, writes all
// pending output, and leaves the last frame on the terminal.
func Run(ctx context.Context, root Element, cfg RunCfg) (err error) {
	if root.Kind == nil {
		return nil
	}
	cfg, stopResize := fillDefaults(cfg)
	defer stopResize()
	width, height := cfg.Size()

	s := newSession(ctx, width, frameHeight(height, cfg.MaxHeight), func(onPrint func()) *output.Splitter {
		return output.NewSplitter(cfg.Driver, output.Opts{
			Stderr: cfg.Stderr, NonInteractive: cfg.NonInteractive, OnPrint: onPrint})
	})
	logger.Printf("session started, size %dx%d", width, height)

	defer func() {
		r := recover()
		if r != nil {
			if hookErr, ok := r.(*HookError); ok {
				logger.Printf("%v\n%s", hookErr, sys.DumpStack())
				err = hookErr
				r = nil
			}
		}
		s.shutdown()
		if failure := s.getFailure(); failure != nil && err == nil {
			err = failure
		}
		err = errutil.Multi(err, s.splitter.Finish(s.frame, s.width))
		logger.Println("session stopped:", err)
		if r != nil {
			panic(r)
		}
	}()

	for {
		select {
		case <-s.wakeCh:
		default:
		}
		if err := s.getFailure(); err != nil {
			return err
		}
		frame := s.pass(root)
		if err := s.splitter.Paint(frame, s.width); err != nil {
			return err
		}
		if s.exit.Load() {
			return nil
		}
		if s.pollChange() {
			continue
		}
		// The running count must be read before the wake channel. Every state
		// write and print of a task wakes the loop while the task is still
		// counted, so once the count is 0 any such wake-up is either pending
		// or was consumed before this pass.
		if cfg.ExitWhenIdle && s.running.Load() == 0 && len(s.wakeCh) == 0 {
			return nil
		}
		select {
		case <-s.wakeCh:
		case <-cfg.Resize:
			width, height := cfg.Size()
			logger.Printf("resized to %dx%d", width, height)
			s.width, s.maxHeight = width, frameHeight(height, cfg.MaxHeight)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func fillDefaults(cfg RunCfg) (RunCfg, func()) {
	stop := func() {}
	if cfg.Driver == nil {
		if sys.IsATTY(os.Stdout.Fd()) {
			cfg.Driver = term.NewDriver(os.Stdout)
			if cfg.Size == nil {
				cfg.Size = func() (int, int) {
					h, w := sys.WinSize(os.Stdout)
					return w, h
				}
			}
			if cfg.Resize == nil {
				cfg.Resize, stop = sys.NotifyResize()
			}
		} else {
			cfg.Driver = term.NewPlainDriver(os.Stdout)
			cfg.NonInteractive = true
		}
	}
	if cfg.Size == nil {
		cfg.Size = func() (int, int) { return 80, 0 }
	}
	return cfg, stop
}

// Returns the maximum height of the dynamic region in a terminal of the given
// height. One row is left for the cursor, since a frame that fills the screen
// scrolls its first line out of reach.
func frameHeight(termHeight, maxHeight int) int {
	h := -1
	if termHeight > 1 {
		h = termHeight - 1
	}
	if maxHeight > 0 && (h < 0 || maxHeight < h) {
		h = maxHeight
	}
	return h
}

// RenderString renders el once, at the given width, and returns the static
// lines it commits followed by the lines of the frame, each terminated by a
// newline. Styles are dropped.
func RenderString(el Element, width int) string {
	var sb strings.Builder
	for _, line := range renderLines(el, width, true) {
		sb.WriteString(line.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
