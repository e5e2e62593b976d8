package demo

import (
	"context"
	"fmt"
	"time"

	"src.retui.sh/pkg/comp"
	"src.retui.sh/pkg/comp/comps"
	"src.retui.sh/pkg/layout"
	"src.retui.sh/pkg/ui"
)

// Params tunes the pacing of a demo.
type Params struct {
	// Time between steps.
	Tick time.Duration
	// Number of steps; 0 for the default of the demo. A demo whose default is
	// 0 runs until the session stops.
	Rounds int
}

type demoFn func(Params) comp.Element

var demos = map[string]demoFn{
	"static":  testRunner,
	"output":  outputExample,
	"counter": counter,
}

// Names returns the names of all demos, sorted.
func Names() []string { return []string{"counter", "output", "static"} }

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func orDefault(n, def int) int {
	if n > 0 {
		return n
	}
	return def
}

// A test runner whose completed tests are committed to the static region,
// with the progress shown below them.
func testRunner(p Params) comp.Element {
	total := orDefault(p.Rounds, 10)
	kind := comp.Func("TestRunner", func(_ struct{}, h *comp.Hooks, u *comp.Updater) {
		completed := comp.UseState(h, func() []string { return nil })
		count := comp.UseState(h, func() int { return 0 })
		comp.UseFuture(h, func(ctx context.Context) error {
			for i := 1; i <= total; i++ {
				if err := sleep(ctx, p.Tick); err != nil {
					return err
				}
				completed.Update(func(items []string) []string {
					return append(items[:len(items):len(items)], fmt.Sprintf("✓ Test #%d passed", i))
				})
				count.Set(i)
			}
			return nil
		})

		n := count.Get()
		status, color := "Running tests...", ui.White
		if n == total {
			status, color = "All tests completed!", ui.Cyan
		}
		u.UpdateChildren([]comp.Element{
			comps.Static(completed.Get()),
			comps.View(comps.ViewProps{
				Layout: layout.Style{Margin: layout.Edges{Top: 1}, Padding: layout.Uniform(1)},
				Border: comps.RoundBorder,
			}, comps.Text(
				fmt.Sprintf("%s (%d/%d completed)", status, n, total),
				ui.Style{Fg: color, Bold: true})),
		}, nil)
	})
	return comp.New(kind, nil)
}

// Prints to stdout and stderr above a fixed frame.
func outputExample(p Params) comp.Element {
	kind := comp.Func("OutputExample", func(_ struct{}, h *comp.Hooks, u *comp.Updater) {
		stdout, stderr := comp.UseOutput(h)
		comp.UseFuture(h, func(ctx context.Context) error {
			for i := 1; p.Rounds == 0 || i <= p.Rounds; i++ {
				if err := sleep(ctx, p.Tick); err != nil {
					return err
				}
				switch i % 3 {
				case 1:
					stdout.Println("Hello from retui to stdout!")
					stderr.Println("  And hello to stderr too!")
				case 2:
					stdout.Print("Progress: ")
					stdout.Print(fmt.Sprint(i))
					stdout.Println(" (using Print + Println)")
					stderr.Print("Error count: ")
					stderr.Println("0 (using Print)")
				default:
					stdout.Print("Loading")
					for j := 0; j < 3; j++ {
						if err := sleep(ctx, p.Tick/4); err != nil {
							return err
						}
						stdout.Print(".")
					}
					stdout.Println(" Done!")
				}
			}
			return nil
		})
		u.UpdateChildren([]comp.Element{
			comps.View(comps.ViewProps{
				Border: comps.RoundBorder, BorderStyle: ui.Style{Fg: ui.Green},
			}, comps.Text("Hello, UseOutput!")),
		}, nil)
	})
	return comp.New(kind, nil)
}

// A progress bar that fills up and then exits.
func counter(p Params) comp.Element {
	total := orDefault(p.Rounds, 10)
	kind := comp.Func("Counter", func(_ struct{}, h *comp.Hooks, u *comp.Updater) {
		count := comp.UseState(h, func() int { return 0 })
		comp.UseFuture(h, func(ctx context.Context) error {
			for i := 1; i <= total; i++ {
				if err := sleep(ctx, p.Tick); err != nil {
					return err
				}
				count.Set(i)
			}
			return nil
		})
		n := count.Get()
		if n == total {
			h.Exit()
		}
		u.UpdateChildren([]comp.Element{
			comps.View(comps.ViewProps{
				Layout: layout.Style{Direction: layout.Row, Gap: 1},
			},
				comps.Text(fmt.Sprintf("%d%%", n*100/total)),
				comps.View(comps.ViewProps{
					Layout: layout.Style{Width: layout.Cells(20)},
				}, comps.View(comps.ViewProps{
					Layout:     layout.Style{Width: layout.Percent(n * 100 / total), Height: layout.Cells(1)},
					Background: ui.Style{Inverse: true},
				})),
			),
		}, nil)
	})
	return comp.New(kind, nil)
}
