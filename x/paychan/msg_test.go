package paychan

import (
	"strings"
	"testing"

	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/weavetest"
	"github.com/paystream/paystream/weavetest/assert"
)

func TestOpenMsgValidate(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg   OpenMsg
		field string
		want  *errors.Error
	}{
		"valid": {
			msg: OpenMsg{Sender: a, Counterparty: b, Deposit: 1, Memo: "coffee"},
		},
		"zero deposit": {
			msg:   OpenMsg{Sender: a, Counterparty: b},
			field: "Deposit",
			want:  ErrInvalidDeposit,
		},
		"negative deposit": {
			msg:   OpenMsg{Sender: a, Counterparty: b, Deposit: -1},
			field: "Deposit",
			want:  ErrInvalidDeposit,
		},
		"missing counterparty": {
			msg:   OpenMsg{Sender: a, Deposit: 1},
			field: "Counterparty",
			want:  errors.ErrInvalidInput,
		},
		"same parties": {
			msg:   OpenMsg{Sender: a, Counterparty: a, Deposit: 1},
			field: "Counterparty",
			want:  errors.ErrInvalidInput,
		},
		"memo too long": {
			msg:   OpenMsg{Sender: a, Counterparty: b, Deposit: 1, Memo: strings.Repeat("m", maxMemoSize+1)},
			field: "Memo",
			want:  errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.want == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.field, tc.want)
		})
	}
}

func TestSignPaymentMsgValidate(t *testing.T) {
	key := weavetest.NewKey()
	sig, err := key.Sign(PaymentMessage(1))
	assert.Nil(t, err)
	id := ChannelID(weavetest.SequenceID(1))

	// The amount is checked against the channel, not here.
	assert.Nil(t, (&SignPaymentMsg{ChannelID: id, Signer: key.PublicKey(), Signature: sig}).Validate())

	err = (&SignPaymentMsg{ChannelID: id}).Validate()
	assert.FieldError(t, err, "Signer", errors.ErrEmpty)
	assert.FieldError(t, err, "Signature", errors.ErrEmpty)
	assert.FieldError(t, err, "ChannelID", nil)
}

func TestCloseMsgValidate(t *testing.T) {
	id := ChannelID(weavetest.SequenceID(1))

	// The split is checked against the channel deposit, not here.
	assert.Nil(t, (&CloseMsg{ChannelID: id, FinalA: -5, FinalB: 7}).Validate())
	assert.FieldError(t, (&CloseMsg{}).Validate(), "ChannelID", errors.ErrEmpty)
	assert.FieldError(t, (&CloseMsg{ChannelID: id, Memo: strings.Repeat("m", maxMemoSize+1)}).Validate(), "Memo", errors.ErrInvalidInput)
}
