// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.retui.sh/pkg/store/storedefs"
)

var frames = []string{"\033[?25lfoo\033[K\n\033[?25h", "bar", "lorem"}

// TestFrames tests the frame functionality of a Store.
func TestFrames(t *testing.T, st storedefs.Store) {
	startSeq, err := st.NextFrameSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("st.NextFrameSeq() => (%v, %v), want (1, nil)", startSeq, err)
	}

	for i, frame := range frames {
		wantSeq := startSeq + i
		seq, err := st.AddFrame([]byte(frame))
		if seq != wantSeq || err != nil {
			t.Errorf("st.AddFrame(%q) => (%v, %v), want (%v, nil)", frame, seq, err, wantSeq)
		}
	}

	endSeq, err := st.NextFrameSeq()
	wantedEndSeq := startSeq + len(frames)
	if endSeq != wantedEndSeq || err != nil {
		t.Errorf("st.NextFrameSeq() => (%v, %v), want (%v, nil)", endSeq, err, wantedEndSeq)
	}

	for i, wantFrame := range frames {
		seq := i + startSeq
		frame, err := st.Frame(seq)
		if string(frame) != wantFrame || err != nil {
			t.Errorf("st.Frame(%v) => (%q, %v), want (%q, nil)", seq, frame, err, wantFrame)
		}
	}
	if _, err := st.Frame(endSeq); !errors.Is(err, storedefs.ErrNoMatchingFrame) {
		t.Errorf("st.Frame(%v) returns error %v, want ErrNoMatchingFrame", endSeq, err)
	}

	got, err := st.FramesWithSeq(startSeq+1, endSeq)
	want := []storedefs.Frame{
		{Data: []byte(frames[1]), Seq: startSeq + 1},
		{Data: []byte(frames[2]), Seq: startSeq + 2},
	}
	if err != nil {
		t.Errorf("st.FramesWithSeq returns error %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("st.FramesWithSeq (-want +got):\n%s", diff)
	}

	errStop := errors.New("stop")
	n := 0
	err = st.IterateFrames(startSeq, endSeq, func(storedefs.Frame) error {
		n++
		return errStop
	})
	if n != 1 || err != errStop {
		t.Errorf("st.IterateFrames called callback %d times and returned %v, want 1 and %v", n, err, errStop)
	}
}

// TestMeta tests the metadata functionality of a Store.
func TestMeta(t *testing.T, st storedefs.Store) {
	const name = "width"
	const value = "80"

	if _, err := st.Meta(name); err != storedefs.ErrNoMeta {
		t.Error("want ErrNoMeta, got", err)
	}
	if err := st.SetMeta(name, value); err != nil {
		t.Error("want no error, got", err)
	}
	if v, err := st.Meta(name); v != value || err != nil {
		t.Errorf("st.Meta(%q) => (%q, %v), want (%q, nil)", name, v, err, value)
	}
	if err := st.DelMeta(name); err != nil {
		t.Error("want no error, got", err)
	}
	if _, err := st.Meta(name); err != storedefs.ErrNoMeta {
		t.Error("want ErrNoMeta, got", err)
	}
}
