// Package replay implements the replay subprogram, which writes a recorded
// session back to the terminal.
package replay

import (
	"fmt"
	"os"

	"src.retui.sh/pkg/logutil"
	"src.retui.sh/pkg/prog"
	"src.retui.sh/pkg/store"
)

var logger = logutil.GetLogger("[replay] ")

// Program is the replay subprogram. It is suitable when -replay is given.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.Replay == "" {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	// Opening a database creates it; don't leave empty files behind.
	if _, err := os.Stat(f.Replay); err != nil {
		return fmt.Errorf("cannot open recording: %w", err)
	}
	st, err := store.NewStore(f.Replay)
	if err != nil {
		return fmt.Errorf("cannot open recording: %w", err)
	}
	defer st.Close()
	if name, err := st.Meta(store.MetaDemo); err == nil {
		logger.Printf("replaying a recording of demo %s", name)
	}
	return store.Replay(st, fds[1], f.ReplayDelay)
}
