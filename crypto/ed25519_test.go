package crypto

import (
	"bytes"
	"testing"

	"github.com/paystream/paystream/weavetest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig.Ed25519, sig2.Ed25519) {
		t.Fatal("different messages produce the same signature")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, &Signature{}) {
		t.Fatal("verified an empty signature of a message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, pub.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("two different keys produce the same condition")
	}
	assert.Nil(t, pub.Address().Validate())
	if pub.Address().Equals(pub2.Address()) {
		t.Fatal("two different keys produce the same address")
	}

	var empty PublicKey
	if empty.Condition() != nil {
		t.Fatal("empty key must not produce a condition")
	}
}

func TestEd25519PrivateKeySign(t *testing.T) {
	pk := PrivKeyEd25519FromSeed(make([]byte, 32))
	sig, err := pk.Sign([]byte("foo bar"))
	assert.Nil(t, err)
	if !pk.PublicKey().Verify([]byte("foo bar"), sig) {
		t.Fatal("cannot verify deterministic signature")
	}
	again, err := pk.Sign([]byte("foo bar"))
	assert.Nil(t, err)
	assert.Equal(t, sig.Ed25519, again.Ed25519)
}

func TestEmptyPrivateKeySign(t *testing.T) {
	emptyKey := &PrivateKey{}
	if sig, err := emptyKey.Sign([]byte("foo bar")); err == nil {
		t.Fatalf("want an error, got %v", sig)
	}
}

func TestVerifyEd25519MalformedInput(t *testing.T) {
	priv := GenPrivKeyEd25519()
	sig, err := priv.Sign([]byte("x"))
	assert.Nil(t, err)
	pub := priv.PublicKey().Ed25519

	if !VerifyEd25519(pub, []byte("x"), sig.Ed25519) {
		t.Fatal("valid signature rejected")
	}
	if VerifyEd25519(pub[:10], []byte("x"), sig.Ed25519) {
		t.Fatal("short key accepted")
	}
	if VerifyEd25519(pub, []byte("x"), sig.Ed25519[:10]) {
		t.Fatal("short signature accepted")
	}
}

func TestPublicKeyStrkey(t *testing.T) {
	pub := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{7}, 32)).PublicKey()
	s := pub.String()
	if s[0] != 'G' {
		t.Fatalf("unexpected strkey form: %q", s)
	}
	got, err := ParsePublicKey(s)
	assert.Nil(t, err)
	assert.Equal(t, pub.Ed25519, got.Ed25519)

	if _, err := ParsePublicKey("G" + s[2:]); err == nil {
		t.Fatal("broken checksum accepted")
	}
}

func TestPrivateKeySeed(t *testing.T) {
	priv := GenPrivKeyEd25519()
	seed, err := priv.Seed()
	assert.Nil(t, err)
	restored, err := ParseSeed(seed)
	assert.Nil(t, err)
	assert.Equal(t, priv.Ed25519, restored.Ed25519)
}
