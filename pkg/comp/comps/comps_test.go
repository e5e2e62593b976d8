package comps_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"src.retui.sh/pkg/comp"
	. "src.retui.sh/pkg/comp/comps"
	"src.retui.sh/pkg/layout"
	"src.retui.sh/pkg/term/termtest"
	"src.retui.sh/pkg/testutil"
	"src.retui.sh/pkg/tt"
	"src.retui.sh/pkg/ui"
)

var renderString = tt.Fn("RenderString", comp.RenderString)

func TestStatic_RenderString(t *testing.T) {
	tt.Test(t, renderString, tt.Table{
		tt.Args(Static(nil), 80).Rets(""),
		tt.Args(Static([]string{"Item 1", "Item 2"}), 80).Rets("Item 1\nItem 2\n"),
		tt.Args(Static(nil, Text("Child 1"), Text("Child 2")), 80).
			Rets("Child 1\nChild 2\n"),
		tt.Args(Static([]string{"Item"}, Text("Child")), 80).Rets("Item\nChild\n"),
		// Items are wrapped to the width.
		tt.Args(Static([]string{"abcdef"}), 4).Rets("abcd\nef\n"),
	})
}

func TestText_RenderString(t *testing.T) {
	tt.Test(t, renderString, tt.Table{
		tt.Args(Text("hello"), 80).Rets("hello\n"),
		tt.Args(Text("one\ntwo"), 80).Rets("one\ntwo\n"),
		tt.Args(Text("abcdefg"), 3).Rets("abc\ndef\ng\n"),
		tt.Args(Text("styled", ui.Style{Bold: true}), 80).Rets("styled\n"),
	})
}

func TestView_RenderString(t *testing.T) {
	tt.Test(t, renderString, tt.Table{
		tt.Args(View(ViewProps{}, Text("a"), Text("b")), 80).Rets("a\nb\n"),
		tt.Args(View(ViewProps{Layout: layout.Style{Direction: layout.Row, Gap: 1}},
			Text("a"), Text("b")), 80).Rets("a b\n"),
		tt.Args(View(ViewProps{Layout: layout.Style{Width: layout.Cells(5)}, Border: RoundBorder},
			Text("hi")), 80).Rets("╭───╮\n│hi │\n╰───╯\n"),
		tt.Args(View(ViewProps{Layout: layout.Style{Width: layout.Cells(4)}, Border: SingleBorder},
			Text("abcd")), 80).Rets("┌──┐\n│ab│\n│cd│\n└──┘\n"),
		// Static content goes before the frame.
		tt.Args(View(ViewProps{}, Text("dynamic"), Static([]string{"static"})), 80).
			Rets("static\ndynamic\n"),
	})
}

func runCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), testutil.Scaled(5*time.Second))
	t.Cleanup(cancel)
	return ctx
}

func TestStatic_CommitsEachItemOnce(t *testing.T) {
	tm := termtest.NewTerminal()
	const n = 20
	root := comp.Func("Root", func(_ struct{}, h *comp.Hooks, u *comp.Updater) {
		items := comp.UseState(h, func() []string { return nil })
		comp.UseFuture(h, func(ctx context.Context) error {
			for i := 1; i <= n; i++ {
				items.Update(func(old []string) []string {
					return append(slices.Clone(old), fmt.Sprintf("item %d", i))
				})
				if i%3 == 0 {
					time.Sleep(time.Millisecond)
				}
			}
			return nil
		})
		u.UpdateChildren([]comp.Element{
			Static(items.Get()),
			Text(fmt.Sprintf("%d items", len(items.Get()))),
		}, nil)
	})

	err := comp.Run(runCtx(t), comp.New(root, nil), comp.RunCfg{Driver: tm, ExitWhenIdle: true})
	if err != nil {
		t.Fatal(err)
	}
	var want []string
	for i := 1; i <= n; i++ {
		want = append(want, fmt.Sprintf("item %d", i))
	}
	want = append(want, fmt.Sprintf("%d items", n))
	if diff := cmp.Diff(want, tm.Lines()); diff != "" {
		t.Errorf("terminal lines (-want +got):\n%s", diff)
	}
}

func TestStatic_IgnoresChangesToCommittedItems(t *testing.T) {
	tm := termtest.NewTerminal()
	root := comp.Func("Root", func(_ struct{}, h *comp.Hooks, u *comp.Updater) {
		items := comp.UseState(h, func() []string { return []string{"a", "b"} })
		comp.UseFuture(h, func(ctx context.Context) error {
			items.Set([]string{"A", "B", "c"})
			return nil
		})
		u.UpdateChildren([]comp.Element{Static(items.Get())}, nil)
	})

	err := comp.Run(runCtx(t), comp.New(root, nil), comp.RunCfg{Driver: tm, ExitWhenIdle: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(tm.Lines(), "\n"); got != "a\nb\nc" {
		t.Errorf("got %q, want %q", got, "a\nb\nc")
	}
}

func TestStatic_NewChildrenAfterItems(t *testing.T) {
	tm := termtest.NewTerminal()
	root := comp.Func("Root", func(_ struct{}, h *comp.Hooks, u *comp.Updater) {
		step := comp.UseState(h, func() int { return 0 })
		comp.UseFuture(h, func(ctx context.Context) error {
			step.Set(1)
			return nil
		})
		var el comp.Element
		if step.Get() == 0 {
			el = Static([]string{"item 1"}, Text("child 1"))
		} else {
			el = Static([]string{"item 1", "item 2"}, Text("child 1"), Text("child 2"))
		}
		u.UpdateChildren([]comp.Element{el}, nil)
	})

	err := comp.Run(runCtx(t), comp.New(root, nil), comp.RunCfg{Driver: tm, ExitWhenIdle: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"item 1", "child 1", "item 2", "child 2"}
	if diff := cmp.Diff(want, tm.Lines()); diff != "" {
		t.Errorf("terminal lines (-want +got):\n%s", diff)
	}
}
