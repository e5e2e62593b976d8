package errutil

import (
	"errors"
	"testing"

	"src.retui.sh/pkg/tt"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	tt.Test(t, tt.Fn("Multi", Multi), tt.Table{
		tt.Args().Rets(nil),
		tt.Args(err1).Rets(err1),
		tt.Args(err1, err2).Rets(multiError{err1, err2}),
		tt.Args(Multi(err1, err2), err3).Rets(multiError{err1, err2, err3}),
	})
}

func TestMulti_SkipsNil(t *testing.T) {
	if err := Multi(nil, nil); err != nil {
		t.Errorf("Multi(nil, nil) -> %v, want nil", err)
	}
	if err := Multi(nil, err1); err != err1 {
		t.Errorf("Multi(nil, err1) -> %v, want err1", err)
	}
}

func TestMulti_Error(t *testing.T) {
	err := Multi(err1, err2)
	if got, want := err.Error(), "multiple errors: error 1; error 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMulti_Unwrap(t *testing.T) {
	err := Multi(err1, err2)
	if !errors.Is(err, err1) || !errors.Is(err, err2) {
		t.Errorf("errors.Is does not see the combined errors")
	}
	if errors.Is(err, err3) {
		t.Errorf("errors.Is(err, err3) -> true, want false")
	}
}
