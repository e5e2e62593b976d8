package prog_test

import (
	"os"
	"path/filepath"
	"testing"

	. "src.retui.sh/pkg/prog"
	"src.retui.sh/pkg/prog/progtest"
)

var (
	Test      = progtest.Test
	ThatRetui = progtest.ThatRetui
)

func TestCommonFlagHandling(t *testing.T) {
	dir := t.TempDir()
	cpuprof := filepath.Join(dir, "cpuprof")

	Test(t, testProgram{},
		ThatRetui("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatRetui("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatRetui("-help").
			WritesStdoutContaining("Usage: retui [flags]"),

		ThatRetui("-cpuprofile", cpuprof).DoesNothing(),
		ThatRetui("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
		ThatRetui("-log", filepath.Join(dir, "log")).DoesNothing(),
	)

	// Check for the effect of -cpuprofile. There isn't much to test beyond a
	// sanity check that the profile file now exists.
	if _, err := os.Stat(cpuprof); err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestFlagsPassedToProgram(t *testing.T) {
	var got Flags
	Test(t, flagRecorder{&got},
		ThatRetui("-demo", "counter", "-max-height", "5", "-non-interactive",
			"-record", "rec.db", "-replay-delay", "1s"),
	)
	if got.Demo != "counter" || got.MaxHeight != 5 || !got.NonInteractive ||
		got.Record != "rec.db" || got.ReplayDelay.String() != "1s" {
		t.Errorf("got flags %+v", got)
	}
}

type flagRecorder struct{ f *Flags }

func (p flagRecorder) Run(_ [3]*os.File, f *Flags, _ []string) error {
	*p.f = *f
	return nil
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatRetui().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatRetui().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatRetui().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatRetui().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatRetui().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatRetui().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatRetui().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}
