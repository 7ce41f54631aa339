package weavetest

import paystream "github.com/paystream/paystream"

// Handler is a mock implementation of the paystream.Handler interface that
// counts calls and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult paystream.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult paystream.DeliverResult
	DeliverErr    error
}

var _ paystream.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes a key value pair to the store and then returns Err.
// Use it to test that failed operations leave no writes behind.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ paystream.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &paystream.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx paystream.Context, db paystream.KVStore, tx paystream.Tx) (*paystream.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &paystream.DeliverResult{}, nil
}
