package client

import (
	"testing"
	"time"

	paystream "github.com/paystream/paystream"
	psd "github.com/paystream/paystream/cmd/paystreamd/app"
	"github.com/paystream/paystream/commands/server"
	"github.com/paystream/paystream/crypto"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/weavetest/assert"
	"github.com/paystream/paystream/x/paychan"
	"github.com/paystream/paystream/x/sigs"
	"github.com/paystream/paystream/x/stream"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const queryChainID = "query-chain"

func signedTx(t testing.TB, q Querier, msg paystream.Msg, key *crypto.PrivateKey) []byte {
	t.Helper()
	seq, err := NextSequence(q, key.PublicKey())
	assert.Nil(t, err)
	tx := &psd.Tx{Msg: msg}
	sig, err := sigs.SignTx(key, tx, queryChainID, seq)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	assert.Nil(t, err)
	return raw
}

func TestTypedQueries(t *testing.T) {
	node, err := psd.GenerateApp(server.AppOptions{
		Logger:           log.NewNopLogger(),
		EventBusCapacity: 4,
	})
	assert.Nil(t, err)
	defer node.(psd.Node).Close()

	appState, err := psd.GenInitOptions(nil)
	assert.Nil(t, err)
	node.InitChain(abci.RequestInitChain{ChainId: queryChainID, AppStateBytes: appState})

	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	start := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)

	seq, err := NextSequence(node, alice.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), seq)

	// The deliver state is only visible after commit, every transaction is
	// signed against committed sequences.
	deliverBlock := func(height int64, offset time.Duration, raw []byte) []byte {
		node.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
			Height: height, ChainID: queryChainID, Time: start.Add(offset),
		}})
		res := node.DeliverTx(raw)
		assert.Equal(t, uint32(0), res.Code)
		node.EndBlock(abci.RequestEndBlock{})
		node.Commit()
		return res.Data
	}

	channelID := paychan.ChannelID(deliverBlock(1, 0, signedTx(t, node, &paychan.OpenMsg{
		Sender:       alice.PublicKey().Address(),
		Counterparty: bob.PublicKey().Address(),
		Deposit:      50,
	}, alice)))
	streamID := stream.StreamID(deliverBlock(2, time.Second, signedTx(t, node, &stream.CreateMsg{
		Sender:      alice.PublicKey().Address(),
		Recipient:   bob.PublicKey().Address(),
		TotalAmount: 500,
		Duration:    50,
	}, alice)))
	deliverBlock(3, 11*time.Second, signedTx(t, node, &stream.WithdrawMsg{
		StreamID: streamID,
		Amount:   40,
	}, bob))

	seq, err = NextSequence(node, alice.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(2), seq)

	ch, err := GetChannel(node, channelID)
	assert.Nil(t, err)
	assert.Equal(t, int64(50), ch.Deposit)
	assert.Equal(t, int64(50), ch.BalanceA)
	assert.Equal(t, false, ch.IsClosed)

	s, err := GetStream(node, streamID)
	assert.Nil(t, err)
	assert.Equal(t, int64(40), s.Withdrawn)

	// 10 seconds of 50 elapsed
	b, err := GetStreamBalance(node, streamID)
	assert.Nil(t, err)
	assert.Equal(t, int64(60), b.Available)
	assert.Equal(t, int64(500), b.Total)

	_, err = GetChannel(node, paychan.ChannelID{0, 0, 0, 0, 0, 0, 0, 9})
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = GetStreamBalance(node, stream.StreamID{0, 0, 0, 0, 0, 0, 0, 9})
	assert.IsErr(t, errors.ErrNotFound, err)
}
