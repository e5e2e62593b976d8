// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoMatchingFrame is the error returned when a frame query completes with
// no result.
var ErrNoMatchingFrame = errors.New("no matching frame")

// ErrNoMeta is returned by Store.Meta when there is no such entry.
var ErrNoMeta = errors.New("no such metadata")

// Store is an interface satisfied by the storage of session recordings.
type Store interface {
	NextFrameSeq() (int, error)
	AddFrame(data []byte) (int, error)
	Frame(seq int) ([]byte, error)
	FramesWithSeq(from, upto int) ([]Frame, error)
	IterateFrames(from, upto int, f func(Frame) error) error

	SetMeta(name, value string) error
	Meta(name string) (string, error)
	DelMeta(name string) error
}

// Frame is one paint of a recorded session: the bytes written to the terminal
// in a single flush.
type Frame struct {
	Data []byte
	Seq  int
}
