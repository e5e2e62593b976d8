package replay_test

import (
	"path/filepath"
	"testing"

	"src.retui.sh/pkg/must"
	"src.retui.sh/pkg/prog/progtest"
	. "src.retui.sh/pkg/replay"
	"src.retui.sh/pkg/store"
)

func TestProgram(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "rec.db")
	st := must.OK1(store.NewStore(db))
	must.OK1(st.AddFrame([]byte("frame 1\n")))
	must.OK1(st.AddFrame([]byte("\033[Kframe 2\n")))
	must.OK(st.Close())

	progtest.Test(t, Program,
		progtest.ThatRetui("-replay", db).
			WritesStdout("frame 1\n\033[Kframe 2\n"),
		progtest.ThatRetui("-replay", db, "-replay-delay", "1ms").
			WritesStdout("frame 1\n\033[Kframe 2\n"),
		progtest.ThatRetui("-replay", db, "foo").
			ExitsWith(2).
			WritesStderrContaining("arguments are not supported"),
		progtest.ThatRetui("-replay", filepath.Join(dir, "missing.db")).
			ExitsWith(2).
			WritesStderrContaining("cannot open recording"),
		progtest.ThatRetui().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}
