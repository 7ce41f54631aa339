package stream

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/x"
)

const (
	createStreamCost   int64 = 300
	withdrawStreamCost int64 = 50
	updateStreamCost   int64 = 20
)

// Event topics published after a stream operation was delivered.
const (
	TopicCreated   = "stream/created"
	TopicWithdrawn = "stream/withdrawn"
	TopicPaused    = "stream/paused"
	TopicResumed   = "stream/resumed"
	TopicCancelled = "stream/cancelled"
)

// StreamEvent is the payload of stream lifecycle events.
type StreamEvent struct {
	StreamID StreamID
	Stream   Stream
}

// WithdrawEvent is the payload of TopicWithdrawn.
type WithdrawEvent struct {
	StreamID  StreamID
	Recipient paystream.Address
	Amount    int64
	Withdrawn int64
}

// RegisterRoutes registers handlers for stream message processing.
func RegisterRoutes(r paystream.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathCreateMsg, &createHandler{auth: auth, bucket: bucket})
	r.Handle(pathWithdrawMsg, &withdrawHandler{auth: auth, bucket: bucket})
	r.Handle(pathPauseMsg, &pauseHandler{auth: auth, bucket: bucket})
	r.Handle(pathResumeMsg, &resumeHandler{auth: auth, bucket: bucket})
	r.Handle(pathCancelMsg, &cancelHandler{auth: auth, bucket: bucket})
}

// RegisterQuery registers the raw stream records under "/streams" and the
// computed balance under "/streams/balance".
func RegisterQuery(qr paystream.QueryRouter) {
	bucket := NewBucket()
	bucket.Register("/streams", qr)
	qr.Register("/streams/balance", NewBalanceQuery(NewController(bucket)))
}

type createHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ paystream.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: createStreamCost}, nil
}

func (h *createHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := paystream.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	height, _ := paystream.GetHeight(ctx)
	if msg.Schedule.Unit == Blocks {
		if height, err = Now(ctx, Blocks); err != nil {
			return nil, err
		}
	}

	s := &Stream{
		Sender:      msg.Sender,
		Recipient:   msg.Recipient,
		Controller:  msg.Controller,
		TotalAmount: msg.TotalAmount,
		Duration:    msg.Duration,
		Schedule:    msg.Schedule,
		StartTime:   now,
		StartHeight: height,
		IsActive:    true,
		Memo:        msg.Memo,
	}
	id, err := h.bucket.Create(db, s)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store stream")
	}
	paystream.GetLogger(ctx).Debug("stream created", "id", id, "total", s.TotalAmount, "duration", s.Duration)

	res := &paystream.DeliverResult{Data: id}
	res.AddEvent(TopicCreated, id, StreamEvent{StreamID: id, Stream: *s})
	return res, nil
}

func (h *createHandler) validate(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	if conf.MaxDuration > 0 && msg.Duration > conf.MaxDuration {
		return nil, errors.Wrapf(ErrInvalidParameters, "duration %d exceeds %d", msg.Duration, conf.MaxDuration)
	}
	if !h.auth.HasAddress(ctx, msg.Sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature required")
	}
	return &msg, nil
}

type withdrawHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ paystream.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: withdrawStreamCost}, nil
}

func (h *withdrawHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s.Withdrawn += msg.Amount
	if err := h.bucket.Save(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot save stream")
	}
	paystream.GetLogger(ctx).Debug("stream withdrawn", "id", msg.StreamID, "amount", msg.Amount)

	res := &paystream.DeliverResult{}
	res.AddEvent(TopicWithdrawn, msg.StreamID, WithdrawEvent{
		StreamID:  msg.StreamID,
		Recipient: s.Recipient,
		Amount:    msg.Amount,
		Withdrawn: s.Withdrawn,
	})
	return res, nil
}

// validate runs every check of a withdraw before any write happens.
func (h *withdrawHandler) validate(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*WithdrawMsg, *Stream, error) {
	var msg WithdrawMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	s, err := h.bucket.GetStream(db, msg.StreamID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, s.Recipient) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "recipient signature required")
	}
	if !s.IsActive {
		return nil, nil, errors.Wrapf(ErrStreamNotActive, "id %s", msg.StreamID)
	}
	now, err := Now(ctx, s.Schedule.Unit)
	if err != nil {
		return nil, nil, err
	}
	if available := s.Available(now); msg.Amount > available {
		return nil, nil, errors.Wrapf(ErrInsufficientFunds, "requested %d, available %d", msg.Amount, available)
	}
	return &msg, s, nil
}

// loadOwned returns the stream referenced by a pause, resume or cancel message
// once the sender or the controller authorized the change.
func loadOwned(ctx paystream.Context, db paystream.KVStore, auth x.Authenticator, bucket Bucket, id StreamID) (*Stream, error) {
	s, err := bucket.GetStream(db, id)
	if err != nil {
		return nil, err
	}
	if auth.HasAddress(ctx, s.Sender) {
		return s, nil
	}
	if s.Controller != nil && auth.HasAddress(ctx, s.Controller) {
		return s, nil
	}
	return nil, errors.Wrap(errors.ErrUnauthorized, "sender or controller signature required")
}

type pauseHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ paystream.Handler = (*pauseHandler)(nil)

func (h *pauseHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: updateStreamCost}, nil
}

func (h *pauseHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := Now(ctx, s.Schedule.Unit)
	if err != nil {
		return nil, err
	}
	s.IsActive = false
	s.PausedAt = now
	if err := h.bucket.Save(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot save stream")
	}
	paystream.GetLogger(ctx).Debug("stream paused", "id", msg.StreamID)

	res := &paystream.DeliverResult{}
	res.AddEvent(TopicPaused, msg.StreamID, StreamEvent{StreamID: msg.StreamID, Stream: *s})
	return res, nil
}

func (h *pauseHandler) validate(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*PauseMsg, *Stream, error) {
	var msg PauseMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	s, err := loadOwned(ctx, db, h.auth, h.bucket, msg.StreamID)
	if err != nil {
		return nil, nil, err
	}
	if s.Cancelled {
		return nil, nil, errors.Wrapf(ErrStreamCancelled, "id %s", msg.StreamID)
	}
	if !s.IsActive {
		return nil, nil, errors.Wrapf(ErrStreamAlreadyPaused, "id %s", msg.StreamID)
	}
	return &msg, s, nil
}

type resumeHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ paystream.Handler = (*resumeHandler)(nil)

func (h *resumeHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: updateStreamCost}, nil
}

func (h *resumeHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := Now(ctx, s.Schedule.Unit)
	if err != nil {
		return nil, err
	}
	if span := now - s.PausedAt; span > 0 {
		s.PausedFor += span
	}
	s.PausedAt = 0
	s.IsActive = true
	if err := h.bucket.Save(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot save stream")
	}
	paystream.GetLogger(ctx).Debug("stream resumed", "id", msg.StreamID, "paused_for", s.PausedFor)

	res := &paystream.DeliverResult{}
	res.AddEvent(TopicResumed, msg.StreamID, StreamEvent{StreamID: msg.StreamID, Stream: *s})
	return res, nil
}

func (h *resumeHandler) validate(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*ResumeMsg, *Stream, error) {
	var msg ResumeMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	s, err := loadOwned(ctx, db, h.auth, h.bucket, msg.StreamID)
	if err != nil {
		return nil, nil, err
	}
	if s.Cancelled {
		return nil, nil, errors.Wrapf(ErrStreamCancelled, "id %s", msg.StreamID)
	}
	if s.IsActive {
		return nil, nil, errors.Wrapf(ErrStreamNotPaused, "id %s", msg.StreamID)
	}
	return &msg, s, nil
}

type cancelHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ paystream.Handler = (*cancelHandler)(nil)

func (h *cancelHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paystream.CheckResult{GasAllocated: updateStreamCost}, nil
}

func (h *cancelHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s.IsActive = false
	s.Cancelled = true
	if err := h.bucket.Save(db, msg.StreamID, s); err != nil {
		return nil, errors.Wrap(err, "cannot save stream")
	}
	paystream.GetLogger(ctx).Debug("stream cancelled", "id", msg.StreamID, "withdrawn", s.Withdrawn)

	res := &paystream.DeliverResult{}
	res.AddEvent(TopicCancelled, msg.StreamID, StreamEvent{StreamID: msg.StreamID, Stream: *s})
	return res, nil
}

func (h *cancelHandler) validate(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*CancelMsg, *Stream, error) {
	var msg CancelMsg
	if err := paystream.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	s, err := loadOwned(ctx, db, h.auth, h.bucket, msg.StreamID)
	if err != nil {
		return nil, nil, err
	}
	if s.Cancelled {
		return nil, nil, errors.Wrapf(ErrStreamCancelled, "id %s", msg.StreamID)
	}
	return &msg, s, nil
}
