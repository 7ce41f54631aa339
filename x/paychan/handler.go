package paychan

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/x"
)

const (
	openChannelCost  int64 = 300
	signPaymentCost  int64 = 5
	closeChannelCost int64 = 100
)

// Event topics published after a channel operation was delivered.
const (
	TopicOpened        = "paychan/opened"
	TopicPaymentSigned = "paychan/payment_signed"
	TopicClosed        = "paychan/closed"
)

// ChannelEvent is the payload of channel lifecycle events.
type ChannelEvent struct {
	ChannelID ChannelID
	Channel   Channel
}

// RegisterRoutes registers handlers for payment channel message processing.
func RegisterRoutes(r paystream.Registry, auth x.Authenticator, ctrl Controller) {
	bucket := NewBucket()
	r.Handle(pathOpenMsg, &openHandler{auth: auth, bucket: bucket})
	r.Handle(pathSignPaymentMsg, &signPaymentHandler{ctrl: ctrl})
	r.Handle(pathCloseMsg, &closeHandler{auth: auth, bucket: bucket})
}

// RegisterQuery registers the raw channel records under "/paychans".
func RegisterQuery(qr paystream.QueryRouter) {
	NewBucket().Register("/paychans", qr)
}

type openHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ paystream.Handler = (*openHandler)(nil)

func (h *openHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: openChannelCost}, nil
}

func (h *openHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ch := &Channel{
		PartyA:   msg.Sender,
		PartyB:   msg.Counterparty,
		Deposit:  msg.Deposit,
		BalanceA: msg.Deposit,
		Memo:     msg.Memo,
	}
	id, err := h.bucket.Create(db, ch)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store channel")
	}
	paystream.GetLogger(ctx).Debug("channel opened", "id", id, "deposit", ch.Deposit)

	res := &paystream.DeliverResult{Data: id}
	res.AddEvent(TopicOpened, id, ChannelEvent{ChannelID: id, Channel: *ch})
	return res, nil
}

func (h *openHandler) validate(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*OpenMsg, error) {
	var msg OpenMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	if msg.Deposit < conf.MinDeposit {
		return nil, errors.Wrapf(ErrInvalidDeposit, "deposit %d below minimum %d", msg.Deposit, conf.MinDeposit)
	}
	if !h.auth.HasAddress(ctx, msg.Sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature required")
	}
	return &msg, nil
}

type signPaymentHandler struct {
	ctrl Controller
}

var _ paystream.Handler = (*signPaymentHandler)(nil)

func (h *signPaymentHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, err := h.verify(db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: signPaymentCost}, nil
}

func (h *signPaymentHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	v, err := h.verify(db, tx)
	if err != nil {
		return nil, err
	}
	raw, err := v.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize voucher")
	}
	res := &paystream.DeliverResult{Data: raw}
	res.AddEvent(TopicPaymentSigned, v.ChannelID, *v)
	return res, nil
}

func (h *signPaymentHandler) verify(db paystream.KVStore, tx paystream.Tx) (*Voucher, error) {
	var msg SignPaymentMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return h.ctrl.SignPayment(db, msg.ChannelID, msg.IncrementAmount, msg.Signer, msg.Signature)
}

type closeHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ paystream.Handler = (*closeHandler)(nil)

func (h *closeHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: closeChannelCost}, nil
}

func (h *closeHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, ch, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ch.BalanceA = msg.FinalA
	ch.BalanceB = msg.FinalB
	ch.IsClosed = true
	if msg.Memo != "" {
		ch.Memo = msg.Memo
	}
	if err := h.bucket.Save(db, msg.ChannelID, ch); err != nil {
		return nil, errors.Wrap(err, "cannot save channel")
	}
	paystream.GetLogger(ctx).Debug("channel closed", "id", msg.ChannelID, "a", ch.BalanceA, "b", ch.BalanceB)

	res := &paystream.DeliverResult{}
	res.AddEvent(TopicClosed, msg.ChannelID, ChannelEvent{ChannelID: msg.ChannelID, Channel: *ch})
	return res, nil
}

// validate runs every check of a close before any write happens. Both
// parties are checked as a single authorization requirement.
func (h *closeHandler) validate(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*CloseMsg, *Channel, error) {
	var msg CloseMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ch, err := h.bucket.GetChannel(db, msg.ChannelID)
	if err != nil {
		return nil, nil, err
	}
	parties := []paystream.Address{ch.PartyA, ch.PartyB}
	if !x.HasAllAddresses(ctx, h.auth, parties) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "both parties must sign")
	}
	if ch.IsClosed {
		return nil, nil, errors.Wrapf(ErrChannelAlreadyClosed, "id %s", msg.ChannelID)
	}
	if msg.FinalA < 0 || msg.FinalB < 0 {
		return nil, nil, errors.Wrap(ErrInvalidFinalState, "negative balance")
	}
	if msg.FinalA+msg.FinalB != ch.Deposit {
		return nil, nil, errors.Wrapf(ErrInvalidFinalState, "%d + %d does not match deposit %d", msg.FinalA, msg.FinalB, ch.Deposit)
	}
	return &msg, ch, nil
}
