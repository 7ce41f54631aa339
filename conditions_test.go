package paystream

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/paystream/paystream/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	c := NewCondition("sigs", "ed25519", []byte{0xde, 0xad})
	ext, typ, data, err := c.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte{0xde, 0xad}, data)
	assert.Equal(t, "sigs/ed25519/DEAD", c.String())
	assert.NoError(t, c.Validate())

	bad := Condition("no/data")
	assert.True(t, errors.ErrInvalidInput.Is(bad.Validate()))
	_, _, _, err = bad.Parse()
	assert.True(t, errors.ErrInvalidInput.Is(err))
	assert.Equal(t, fmt.Sprintf("Invalid Condition: %X", []byte(bad)), bad.String())

	// data may contain a newline
	assert.NoError(t, NewCondition("sigs", "ed25519", []byte("a\nb")).Validate())
}

func TestConditionJSON(t *testing.T) {
	c := NewCondition("sigs", "ed25519", []byte("key"))
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var got Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, c, got)

	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.Nil(t, got)
	assert.Error(t, json.Unmarshal([]byte(`"sigs/zz"`), &got))
}

func TestAddress(t *testing.T) {
	c := NewCondition("sigs", "ed25519", []byte("key"))
	addr := c.Address()
	assert.Len(t, addr, AddressLength)
	assert.NoError(t, addr.Validate())
	assert.True(t, addr.Equals(NewCondition("sigs", "ed25519", []byte("key")).Address()))
	assert.False(t, addr.Equals(NewCondition("sigs", "ed25519", []byte("other")).Address()))
	assert.Nil(t, NewAddress(nil))
	assert.Equal(t, "(nil)", Address(nil).String())
	assert.True(t, errors.ErrInvalidInput.Is(Address("short").Validate()))
}

func TestParseAddress(t *testing.T) {
	c := NewCondition("sigs", "ed25519", []byte("conditiondata"))
	addr := c.Address()

	cases := map[string]struct {
		enc      string
		wantErr  *errors.Error
		wantAddr Address
	}{
		"default hex": {
			enc:      addr.String(),
			wantAddr: addr,
		},
		"explicit hex": {
			enc:      "hex:" + addr.String(),
			wantAddr: addr,
		},
		"bech32": {
			enc:      "bech32:" + addr.Bech32(),
			wantAddr: addr,
		},
		"condition": {
			enc:      "cond:sigs/ed25519/636f6e646974696f6e64617461",
			wantAddr: addr,
		},
		"invalid condition format": {
			enc:     "cond:sigs/636f6e646974696f6e64617461",
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			enc:     "cond:sigs/ed25519/zzzzz",
			wantErr: errors.ErrInvalidInput,
		},
		"unknown format": {
			enc:     "foobar:xxx",
			wantErr: errors.ErrInvalidType,
		},
		"invalid hex": {
			enc:     "xyz",
			wantErr: errors.ErrInput,
		},
		"wrong length": {
			enc:     "hex:6865782d61646472",
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			assert.Equal(t, tc.wantAddr, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := NewCondition("sigs", "ed25519", []byte("key")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.Nil(t, got)
	assert.Error(t, json.Unmarshal([]byte(`"foobar:xxx"`), &got))
}
