package output

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"src.retui.sh/pkg/term"
	"src.retui.sh/pkg/term/termtest"
	"src.retui.sh/pkg/ui"
)

func lines(ss ...string) []term.Line {
	ls := make([]term.Line, len(ss))
	for i, s := range ss {
		ls[i] = term.Wrap(ui.T(s), 0)[0]
	}
	return ls
}

func setup() (*termtest.Terminal, *Splitter) {
	t := termtest.NewTerminal()
	return t, NewSplitter(t, Opts{})
}

func checkLines(t *testing.T, term *termtest.Terminal, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, term.Lines(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("terminal lines (-want +got):\n%s", diff)
	}
}

func checkOps(t *testing.T, term *termtest.Terminal, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, term.Ops(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("terminal ops (-want +got):\n%s", diff)
	}
}

func TestPaint_FirstFrame(t *testing.T) {
	tm, s := setup()
	if err := s.Paint(lines("a", "b"), 10); err != nil {
		t.Fatal(err)
	}
	checkLines(t, tm, "a", "b")
	checkOps(t, tm, "write a", "write b", "flush")
}

func TestPaint_RepaintsFromFirstDifferentLine(t *testing.T) {
	tm, s := setup()
	s.Paint(lines("a", "b", "c"), 10)
	tm.Ops()

	s.Paint(lines("a", "x", "c", "d"), 10)
	checkLines(t, tm, "a", "x", "c", "d")
	checkOps(t, tm, "clear 2", "write x", "write c", "write d", "flush")
}

func TestPaint_ShrinkingFrame(t *testing.T) {
	tm, s := setup()
	s.Paint(lines("a", "b", "c"), 10)
	tm.Ops()

	s.Paint(lines("a"), 10)
	checkLines(t, tm, "a")
	checkOps(t, tm, "clear 2", "flush")
}

func TestPaint_IdenticalFrameWritesNothing(t *testing.T) {
	tm, s := setup()
	s.Paint(lines("a", "b"), 10)
	tm.Ops()

	s.Paint(lines("a", "b"), 10)
	checkOps(t, tm)
}

func TestPaint_WidthChangeRepaintsEverything(t *testing.T) {
	tm, s := setup()
	s.Paint(lines("a", "b"), 10)
	tm.Ops()

	s.Paint(lines("a", "b"), 8)
	checkOps(t, tm, "clear 2", "write a", "write b", "flush")
}

func TestPaint_StaticLinesGoAboveFrame(t *testing.T) {
	tm, s := setup()
	s.Paint(lines("frame 1"), 10)

	s.CommitStatic(lines("static 1", "static 2")...)
	s.Paint(lines("frame 2"), 10)
	checkLines(t, tm, "static 1", "static 2", "frame 2")

	s.CommitStatic(lines("static 3")...)
	s.Paint(lines("frame 3", "more"), 10)
	checkLines(t, tm, "static 1", "static 2", "static 3", "frame 3", "more")

	if diff := cmp.Diff(lines("static 1", "static 2", "static 3"), s.Static()); diff != "" {
		t.Errorf("Static (-want +got):\n%s", diff)
	}
}

func TestPaint_StaticLinesAreNeverRewritten(t *testing.T) {
	tm, s := setup()
	s.CommitStatic(lines("static")...)
	s.Paint(lines("frame"), 10)
	tm.Ops()

	s.Paint(lines("other frame"), 10)
	s.Paint(lines("other frame"), 12)
	for _, op := range tm.Ops() {
		if op == "write static" {
			t.Errorf("static line written again")
		}
	}
	checkLines(t, tm, "static", "other frame")
}

func TestPaint_PrintedLinesBeforeStaticLines(t *testing.T) {
	tm, s := setup()
	h := s.NewHandle(Stdout, nil)
	s.Paint(lines("frame"), 10)

	s.CommitStatic(lines("static")...)
	h.Println("printed")
	s.Paint(lines("frame"), 10)
	checkLines(t, tm, "printed", "static", "frame")
}

func TestPaint_KeepsStyles(t *testing.T) {
	tm, s := setup()
	s.Paint([]term.Line{{{Text: "x", Style: "1"}}}, 10)
	if diff := cmp.Diff([]string{"\033[0;1mx\033[m"}, tm.RawLines()); diff != "" {
		t.Errorf("raw lines (-want +got):\n%s", diff)
	}
}

func TestPaint_IOError(t *testing.T) {
	tm, s := setup()
	errFlush := errors.New("flush error")
	tm.SetError(errFlush)
	err := s.Paint(lines("a"), 10)
	var ioErr *IOError
	if !errors.As(err, &ioErr) || !errors.Is(err, errFlush) {
		t.Errorf("got error %v, want IOError wrapping %v", err, errFlush)
	}
}

func TestHandle_PartialLines(t *testing.T) {
	tm, s := setup()
	h := s.NewHandle(Stdout, nil)
	h.Print("foo")
	if s.Pending() {
		t.Errorf("partial line is pending")
	}
	h.Print("bar\nlux")
	s.Paint(nil, 10)
	checkLines(t, tm, "foobar")

	h.Printf("%d\n", 42)
	s.Paint(nil, 10)
	checkLines(t, tm, "foobar", "lux42")
}

func TestHandle_Write(t *testing.T) {
	tm, s := setup()
	h := s.NewHandle(Stdout, nil)
	fmt.Fprintln(h, "via fmt")
	s.Paint(nil, 10)
	checkLines(t, tm, "via fmt")
}

func TestHandle_Stderr(t *testing.T) {
	tm := termtest.NewTerminal()
	var stderr strings.Builder
	s := NewSplitter(tm, Opts{Stderr: &stderr})
	out := s.NewHandle(Stdout, nil)
	err := s.NewHandle(Stderr, nil)
	out.Println("to stdout")
	err.Println("to stderr")
	s.Paint(lines("frame"), 10)

	checkLines(t, tm, "to stdout", "frame")
	if stderr.String() != "to stderr\n" {
		t.Errorf("stderr got %q", stderr.String())
	}
}

func TestHandle_StderrWithoutWriterGoesToDriver(t *testing.T) {
	tm, s := setup()
	s.NewHandle(Stderr, nil).Println("error")
	s.Paint(nil, 10)
	checkLines(t, tm, "error")
}

type fakeGuard struct{ alive bool }

func (g *fakeGuard) Do(f func()) bool {
	if g.alive {
		f()
	}
	return g.alive
}

func TestHandle_Guard(t *testing.T) {
	tm, s := setup()
	g := &fakeGuard{alive: true}
	h := s.NewHandle(Stdout, g)
	h.Println("alive")
	g.alive = false
	h.Println("dead")
	s.Paint(nil, 10)
	checkLines(t, tm, "alive")
}

func TestHandle_OnPrint(t *testing.T) {
	calls := 0
	s := NewSplitter(termtest.NewTerminal(), Opts{OnPrint: func() { calls++ }})
	h := s.NewHandle(Stdout, nil)
	h.Print("partial")
	if calls != 0 {
		t.Errorf("OnPrint called for partial line")
	}
	h.Print("\n")
	if calls != 1 {
		t.Errorf("OnPrint called %d times, want 1", calls)
	}
}

func TestHandle_ConcurrentPrintsDoNotTear(t *testing.T) {
	tm, s := setup()
	const n, m = 10, 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		h := s.NewHandle(Stdout, nil)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < m; j++ {
				// Write each line in two pieces.
				h.Printf("task %d ", i)
				h.Printf("line %d\n", j)
			}
		}()
	}
	wg.Wait()
	s.Paint(nil, 80)

	got := tm.Lines()
	if len(got) != n*m {
		t.Fatalf("got %d lines, want %d", len(got), n*m)
	}
	next := make([]int, n)
	for _, line := range got {
		var i, j int
		if _, err := fmt.Sscanf(line, "task %d line %d", &i, &j); err != nil {
			t.Fatalf("torn line %q", line)
		}
		if j != next[i] {
			t.Errorf("task %d: got line %d, want %d", i, j, next[i])
		}
		next[i]++
	}
}

func TestFinish_FlushesPartialLines(t *testing.T) {
	tm, s := setup()
	h := s.NewHandle(Stdout, nil)
	h.Print("no newline")
	s.Finish(lines("final"), 10)
	checkLines(t, tm, "no newline", "final")
}

func TestNonInteractive(t *testing.T) {
	tm := termtest.NewTerminal()
	s := NewSplitter(tm, Opts{NonInteractive: true})
	h := s.NewHandle(Stdout, nil)

	s.Paint(lines("frame 1"), 10)
	checkLines(t, tm)

	h.Println("printed")
	s.CommitStatic(lines("static")...)
	s.Paint(lines("frame 2"), 10)
	checkLines(t, tm, "printed", "static")

	s.Finish(lines("final", "frame"), 10)
	checkLines(t, tm, "printed", "static", "final", "frame")
	for _, op := range tm.Ops() {
		if strings.HasPrefix(op, "clear") {
			t.Errorf("non-interactive splitter cleared lines")
		}
	}
}

func TestHandle_Close(t *testing.T) {
	tm, s := setup()
	h := s.NewHandle(Stdout, nil)
	h.Print("partial")
	h.Close()
	h.Println("after close")
	s.Paint(nil, 10)
	checkLines(t, tm, "partial")
}
