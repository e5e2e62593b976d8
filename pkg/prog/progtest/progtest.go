// Package progtest contains utilities for testing [prog.Program] instances.
package progtest

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"src.retui.sh/pkg/must"
	"src.retui.sh/pkg/prog"
)

// Case is a test case for Test.
type Case struct {
	args []string
	want result
}

type result struct {
	exitStatus int
	stdout     output
	stderr     output
}

type output struct {
	content  string
	partial  bool
	anything bool
}

func (o output) matches(s string) bool {
	switch {
	case o.anything:
		return true
	case o.partial:
		return strings.Contains(s, o.content)
	default:
		return s == o.content
	}
}

// ThatRetui returns a new Case with the specified CLI arguments. The first
// argument, the program name, is added automatically.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "retui -bad-flag" exits with 2 reads
// like:
//
//	ThatRetui("-bad-flag").ExitsWith(2)
func ThatRetui(args ...string) Case {
	return Case{args: append([]string{"retui"}, args...)}
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise don't
// have any expectations, for example:
//
//	ThatRetui("-help").DoesNothing()
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that expects the program run to return with
// the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that expects the program run to write
// exactly the given string to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that expects the program run
// to write output to stdout that contains the given string as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesAnyStdout returns an altered Case that accepts any output to stdout.
func (c Case) WritesAnyStdout() Case {
	c.want.stdout = output{anything: true}
	return c
}

// WritesStderr returns an altered Case that expects the program run to write
// exactly the given string to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that expects the program run
// to write output to stderr that contains the given string as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// WritesAnyStderr returns an altered Case that accepts any output to stderr.
func (c Case) WritesAnyStderr() Case {
	c.want.stderr = output{anything: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args)
			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !c.want.stdout.matches(r.stdout.content) {
				t.Errorf("got stdout %q, want %s", r.stdout.content, c.want.stdout)
			}
			if !c.want.stderr.matches(r.stderr.content) {
				t.Errorf("got stderr %q, want %s", r.stderr.content, c.want.stderr)
			}
		})
	}
}

func (o output) String() string {
	switch {
	case o.anything:
		return "anything"
	case o.partial:
		return "containing " + quote(o.content)
	default:
		return quote(o.content)
	}
}

func quote(s string) string { return `"` + strings.ReplaceAll(s, "\n", `\n`) + `"` }

// Runs the program with a nonexistent stdin and pipes for stdout and stderr,
// which are drained concurrently so that the program never blocks on them.
func run(p prog.Program, args []string) result {
	r0, w0 := must.OK2(os.Pipe())
	w0.Close()
	defer r0.Close()
	r1, w1 := must.OK2(os.Pipe())
	r2, w2 := must.OK2(os.Pipe())

	var wg sync.WaitGroup
	var stdout, stderr []byte
	wg.Add(2)
	go func() { defer wg.Done(); stdout = must.OK1(io.ReadAll(r1)) }()
	go func() { defer wg.Done(); stderr = must.OK1(io.ReadAll(r2)) }()

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	wg.Wait()
	r1.Close()
	r2.Close()
	return result{exit, output{content: string(stdout)}, output{content: string(stderr)}}
}
