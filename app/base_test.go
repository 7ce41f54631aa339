package app

import (
	"context"
	"strings"
	"testing"
	"time"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/store/iavl"
	"github.com/paystream/paystream/weavetest"
	"github.com/paystream/paystream/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// rawQuery returns the value stored under the key given as data.
type rawQuery struct{}

func (rawQuery) Query(ctx paystream.Context, db paystream.ReadOnlyKVStore, mod string, data []byte) ([]paystream.Model, error) {
	raw, err := db.Get(data)
	if err != nil || raw == nil {
		return nil, err
	}
	return []paystream.Model{{Key: data, Value: raw}}, nil
}

// pathDecoder turns the raw transaction into a message routed by its text.
func pathDecoder(raw []byte) (paystream.Tx, error) {
	switch s := string(raw); {
	case s == "":
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty tx")
	case strings.HasPrefix(s, "panic"):
		panic(s)
	default:
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: s}}, nil
	}
}

func newBaseApp(t *testing.T) BaseApp {
	t.Helper()
	r := NewRouter()
	r.Handle("write", &weavetest.WriteHandler{Key: []byte("written"), Value: []byte("yes")})
	r.Handle("write_fail", &weavetest.WriteHandler{Key: []byte("failed"), Value: []byte("yes"), Err: errors.ErrUnauthorized})
	handler := ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)

	qr := NewQueryRouter()
	qr.Register("/", rawQuery{})
	s := NewStoreApp("paystream-test", iavl.MockCommitStore(), qr, context.Background())
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: []byte(`{}`)})
	return NewBaseApp(s, pathDecoder, handler, false)
}

func TestBaseApp(t *testing.T) {
	b := newBaseApp(t)
	b.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Unix(1000, 0)}})

	check := b.CheckTx([]byte("write"))
	assert.Equal(t, uint32(0), check.Code, check.Log)

	deliver := b.DeliverTx([]byte("write"))
	assert.Equal(t, uint32(0), deliver.Code, deliver.Log)

	deliver = b.DeliverTx([]byte("write_fail"))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), deliver.Code)
	assert.Contains(t, deliver.Log, "cannot deliver tx")

	deliver = b.DeliverTx([]byte("missing"))
	assert.Equal(t, ErrNoSuchPath.ABCICode(), deliver.Code)

	deliver = b.DeliverTx(nil)
	assert.Equal(t, errors.ErrInvalidInput.ABCICode(), deliver.Code)

	check = b.CheckTx([]byte("panic now"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), check.Code)

	// nothing is visible before the commit
	res := b.Query(abci.RequestQuery{Path: "/", Data: []byte("written")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var empty ResultSet
	require.NoError(t, empty.Unmarshal(res.Value))
	assert.Len(t, empty.Results, 0)

	b.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := b.Commit()
	assert.NotEmpty(t, commit.Data)

	res = b.Query(abci.RequestQuery{Path: "/", Data: []byte("written")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var value rawValue
	require.NoError(t, UnmarshalOneResult(res.Value, &value))
	assert.Equal(t, "yes", string(value))

	// the failed delivery left no write behind
	res = b.Query(abci.RequestQuery{Path: "/", Data: []byte("failed")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	err := UnmarshalOneResult(res.Value, &value)
	assert.True(t, errors.ErrNotFound.Is(err))
}

// rawValue keeps the bytes it was unmarshaled from.
type rawValue []byte

func (v rawValue) Marshal() ([]byte, error) {
	return v, nil
}

func (v *rawValue) Unmarshal(raw []byte) error {
	*v = append((*v)[:0], raw...)
	return nil
}
