package sigs

import (
	"bytes"
	"testing"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/crypto"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/store"
	"github.com/paystream/paystream/weavetest"
	"github.com/paystream/paystream/weavetest/assert"
)

type signedTx struct {
	weavetest.Tx
	signBytes []byte
	sigs      []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func (tx *signedTx) GetSignBytes() ([]byte, error)  { return tx.signBytes, nil }
func (tx *signedTx) GetSignatures() []*StdSignature { return tx.sigs }

func newSignedTx(payload string, signers ...*StdSignature) *signedTx {
	return &signedTx{
		Tx:        weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/path"}},
		signBytes: []byte(payload),
		sigs:      signers,
	}
}

func sign(t testing.TB, key crypto.Signer, tx *signedTx, chainID string, seq int64) *StdSignature {
	t.Helper()
	sig, err := SignTx(key, tx, chainID, seq)
	assert.Nil(t, err)
	return sig
}

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("tx"), "test-chain", 0)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("tx"), "test-chain", 1)
	assert.Nil(t, err)
	c, err := BuildSignBytes([]byte("tx"), "other-chain", 0)
	assert.Nil(t, err)
	again, err := BuildSignBytes([]byte("tx"), "test-chain", 0)
	assert.Nil(t, err)

	assert.Equal(t, 64, len(a))
	assert.Equal(t, a, again)
	if bytes.Equal(a, b) || bytes.Equal(a, c) {
		t.Fatal("sign bytes must depend on sequence and chain")
	}

	_, err = BuildSignBytes([]byte("tx"), "test-chain", -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = BuildSignBytes([]byte("tx"), "bad", 0)
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()
	alice := weavetest.NewKey()
	bob := weavetest.NewKey()

	tx := newSignedTx("first")
	tx.sigs = []*StdSignature{sign(t, alice, tx, chainID, 0)}
	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, []paystream.Condition{alice.PublicKey().Condition()}, signers)

	// Replaying the same signature fails, the sequence was used.
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	seq, err := NextSequence(db, alice.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// Two signers, each with their own sequence.
	tx2 := newSignedTx("second")
	tx2.sigs = []*StdSignature{
		sign(t, alice, tx2, chainID, 1),
		sign(t, bob, tx2, chainID, 0),
	}
	signers, err = VerifyTxSignatures(db, tx2, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(signers))

	// Signature made for another payload.
	tx3 := newSignedTx("third")
	tx3.sigs = []*StdSignature{sign(t, bob, newSignedTx("other"), chainID, 1)}
	_, err = VerifyTxSignatures(db, tx3, chainID)
	assert.IsErr(t, ErrInvalidSignature, err)

	// Signature made for another chain.
	tx4 := newSignedTx("fourth")
	tx4.sigs = []*StdSignature{sign(t, bob, tx4, "other-chain", 1)}
	_, err = VerifyTxSignatures(db, tx4, chainID)
	assert.IsErr(t, ErrInvalidSignature, err)

	seq, err = NextSequence(db, bob.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := &UserData{Pubkey: weavetest.NewKey().PublicKey(), Sequence: 4}
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(3))
	assert.Nil(t, u.CheckAndIncrementSequence(4))
	assert.Equal(t, int64(5), u.Sequence)

	u.Sequence = maxSequenceValue
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(maxSequenceValue))
}

func TestStdSignatureValidate(t *testing.T) {
	key := weavetest.NewKey()
	valid := &StdSignature{Pubkey: key.PublicKey(), Signature: &crypto.Signature{Ed25519: []byte("x")}}
	assert.Nil(t, valid.Validate())

	assert.IsErr(t, ErrInvalidSequence, (&StdSignature{Sequence: -1}).Validate())
	assert.IsErr(t, errors.ErrUnauthorized, (&StdSignature{}).Validate())
	assert.IsErr(t, errors.ErrUnauthorized, (&StdSignature{Pubkey: key.PublicKey()}).Validate())
}
