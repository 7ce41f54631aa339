package orm

import (
	"encoding/binary"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

// SequenceWidth is the byte length of every sequence value.
const SequenceWidth = 8

// Sequence maintains a counter record in the store and generates a series of
// fixed width keys. Each key is greater than the last, both as an integer and
// when compared with bytes.Compare.
//
// The counter is advanced with a carry-propagating increment starting at the
// last byte. Running past the largest value is an error; the counter never
// wraps around to reuse an id.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence, persists the new state and returns it.
// Read and write happen within the same store, so a transaction that fails
// later discards the increment together with everything else.
func (s *Sequence) NextVal(db paystream.KVStore) ([]byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read sequence")
	}
	if raw == nil {
		raw = make([]byte, SequenceWidth)
	}
	next, err := Increment(raw)
	if err != nil {
		return nil, err
	}
	if err := db.Set(s.id, next); err != nil {
		return nil, errors.Wrap(err, "cannot write sequence")
	}
	return next, nil
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db paystream.KVStore) (uint64, error) {
	raw, err := s.NextVal(db)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw), nil
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state.
func (s *Sequence) Latest(db paystream.ReadOnlyKVStore) ([]byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read sequence")
	}
	if raw == nil {
		raw = make([]byte, SequenceWidth)
	}
	return raw, nil
}

// Increment returns a copy of the big-endian counter advanced by one.
// ErrOverflow is returned when every byte is already at its maximum.
func Increment(counter []byte) ([]byte, error) {
	next := make([]byte, len(counter))
	copy(next, counter)
	for i := len(next) - 1; i >= 0; i-- {
		next[i]++
		if next[i] != 0 {
			return next, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrOverflow, "%d byte counter exhausted", len(counter))
}

// DecodeSequence returns the integer value of a sequence key.
func DecodeSequence(bz []byte) uint64 {
	if len(bz) != SequenceWidth {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// EncodeSequence returns the key representing given sequence value.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, SequenceWidth)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// ValidateSequence returns an error if this is not an valid sequence value.
func ValidateSequence(b []byte) error {
	if b == nil {
		return errors.Wrap(errors.ErrEmpty, "missing")
	}
	if len(b) != SequenceWidth {
		return errors.Wrapf(errors.ErrInvalidInput, "must be %d bytes long", SequenceWidth)
	}
	return nil
}
