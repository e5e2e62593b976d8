package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
	. "src.retui.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize frame table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketFrame))
		return err
	}
}

// NextFrameSeq returns the sequence number the next frame will get.
func (s *dbStore) NextFrameSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFrame))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddFrame adds a new frame to the recording, and returns its sequence number.
func (s *dbStore) AddFrame(data []byte) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFrame))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	return int(seq), err
}

// Frame returns the frame with the given sequence number.
func (s *dbStore) Frame(seq int) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFrame))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingFrame
		}
		// Values are only valid during the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// IterateFrames calls f with each frame whose sequence number is within
// [from, upto), in order. It stops at the first error returned by f.
func (s *dbStore) IterateFrames(from, upto int, f func(Frame) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFrame))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			err := f(Frame{Data: append([]byte(nil), v...), Seq: int(unmarshalSeq(k))})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// FramesWithSeq returns all frames within [from, upto).
func (s *dbStore) FramesWithSeq(from, upto int) ([]Frame, error) {
	var frames []Frame
	err := s.IterateFrames(from, upto, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	return frames, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
