package paystream

import (
	"fmt"
	"strings"
	"testing"

	"github.com/paystream/paystream/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err  error
		msg  string
		code uint32
	}{
		"internal error is redacted": {
			err:  fmt.Errorf("base"),
			msg:  "internal error",
			code: 1,
		},
		"registered error": {
			err:  errors.ErrUnauthorized,
			msg:  errors.ErrUnauthorized.Error(),
			code: errors.ErrUnauthorized.ABCICode(),
		},
		"wrapped registered error": {
			err:  errors.Wrap(errors.ErrNotFound, "stream 7"),
			msg:  "stream 7: not found",
			code: errors.ErrNotFound.ABCICode(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := DeliverTxError(tc.err, false)
			assert.True(t, dres.IsErr())
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx: "))
			assert.Contains(t, dres.Log, tc.msg)
			assert.Equal(t, tc.code, dres.Code)

			cres := CheckTxError(tc.err, false)
			assert.True(t, cres.IsErr())
			assert.True(t, strings.HasPrefix(cres.Log, "cannot check tx: "))
			assert.Contains(t, cres.Log, tc.msg)
			assert.Equal(t, tc.code, cres.Code)
		})
	}

	// debug mode exposes internal errors
	dres := DeliverTxError(fmt.Errorf("base"), true)
	assert.Contains(t, dres.Log, "base")
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := DeliverResult{Data: d, Log: msg}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Empty(t, ad.Tags)

	c, gas := "aok", int64(12345)
	cres := NewCheck(gas, c)
	ac := cres.ToABCI()
	assert.Equal(t, c, ac.Log)
	assert.Equal(t, gas, ac.GasWanted)
	assert.Empty(t, ac.Data)

	ok := DeliverOrError(&dres, nil, false)
	assert.Equal(t, uint32(0), ok.Code)
	failed := CheckOrError(cres, errors.ErrEmpty, false)
	assert.Equal(t, errors.ErrEmpty.ABCICode(), failed.Code)
}

func TestAddEvent(t *testing.T) {
	var res DeliverResult
	res.AddEvent("stream/created", []byte{0, 1}, "payload")
	res.AddEvent("stream/paused", []byte{0, 2}, 42)

	assert.Equal(t, []Event{
		{Topic: "stream/created", Payload: "payload"},
		{Topic: "stream/paused", Payload: 42},
	}, res.Events)

	tags := res.ToABCI().Tags
	assert.Len(t, tags, 2)
	assert.Equal(t, []byte("stream/paused"), tags[1].Key)
	assert.Equal(t, []byte{0, 2}, tags[1].Value)
}

func TestParseDeliverOrError(t *testing.T) {
	res := DeliverResult{Data: []byte("id"), Log: "ok", GasUsed: 7}
	res.AddEvent("stream/created", []byte("id"), "payload")

	got, err := ParseDeliverOrError(DeliverOrError(&res, nil, false))
	assert.NoError(t, err)
	assert.Equal(t, res.Data, got.Data)
	assert.Equal(t, res.Tags, got.Tags)
	assert.Equal(t, int64(7), got.GasUsed)
	assert.Empty(t, got.Events)

	failed := DeliverOrError(nil, errors.Wrap(errors.ErrUnauthorized, "sender signature required"), false)
	got, err = ParseDeliverOrError(failed)
	assert.Nil(t, got)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Contains(t, err.Error(), "sender signature required")
}
