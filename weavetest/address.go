package weavetest

import (
	"testing"
	"time"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/orm"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) paystream.Address {
	t.Helper()

	addr, err := paystream.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// SequenceID returns an id as produced by an orm.Sequence.
func SequenceID(n uint64) []byte {
	return orm.EncodeSequence(n)
}

// BlockCtx returns a context carrying given block time and height, as the
// ABCI application sets them for every block.
func BlockCtx(ctx paystream.Context, now time.Time, height int64) paystream.Context {
	ctx = paystream.WithBlockTime(ctx, now)
	return paystream.WithHeight(ctx, height)
}
