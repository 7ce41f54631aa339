package stream

import (
	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
)

// Balance is the state of a stream at a single point in time.
type Balance struct {
	StreamID  StreamID
	Withdrawn int64
	Available int64
	Total     int64
}

func (b *Balance) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(b)
}

func (b *Balance) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, b)
}

// Controller gives other extensions read access to streams.
type Controller interface {
	// Balance returns the balance of a stream at the block of the context.
	Balance(ctx paystream.Context, db paystream.ReadOnlyKVStore, id StreamID) (*Balance, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller reading from given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(ctx paystream.Context, db paystream.ReadOnlyKVStore, id StreamID) (*Balance, error) {
	s, err := c.bucket.GetStream(db, id)
	if err != nil {
		return nil, err
	}
	now, err := Now(ctx, s.Schedule.Unit)
	if err != nil {
		return nil, err
	}
	return &Balance{
		StreamID:  id,
		Withdrawn: s.Withdrawn,
		Available: s.Available(now),
		Total:     s.TotalAmount,
	}, nil
}

// Now reads the clock of given unit from the context.
func Now(ctx paystream.Context, unit Unit) (int64, error) {
	switch unit {
	case Seconds:
		now, err := paystream.BlockUnixTime(ctx)
		if err != nil {
			return 0, err
		}
		return int64(now), nil
	case Blocks:
		height, ok := paystream.GetHeight(ctx)
		if !ok {
			return 0, errors.Wrap(errors.ErrHuman, "block height not present in the context")
		}
		return height, nil
	default:
		return 0, errors.Wrapf(ErrInvalidParameters, "unknown unit %d", unit)
	}
}
