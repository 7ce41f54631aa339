package stream

import (
	"math/bits"
	"strconv"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/orm"
)

const (
	// BucketName is the key prefix of all streams.
	BucketName = "stream"

	maxMemoSize = 128
)

// Unit is the clock a stream schedule is measured with.
type Unit int32

const (
	// Seconds measures a stream with the block time.
	Seconds Unit = 0
	// Blocks measures a stream with the block height.
	Blocks Unit = 1
)

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Blocks:
		return "blocks"
	default:
		return "unknown"
	}
}

// Schedule declares how a stream releases its funds. Funds are released
// every Interval units. An Interval of one (or zero) releases continuously.
type Schedule struct {
	Unit     Unit
	Interval int64
}

// Validate returns an error if the schedule cannot be used.
func (s Schedule) Validate() error {
	var errs error
	if s.Unit != Seconds && s.Unit != Blocks {
		errs = errors.Append(errs, errors.Field("Unit", ErrInvalidParameters, "unknown unit %d", s.Unit))
	}
	if s.Interval < 0 {
		errs = errors.Append(errs, errors.Field("Interval", ErrInvalidParameters, "negative"))
	}
	return errs
}

func (s Schedule) interval() int64 {
	if s.Interval < 1 {
		return 1
	}
	return s.Interval
}

// StreamID is the key of a stream in the bucket.
type StreamID []byte

// String returns the numeric form of the id.
func (id StreamID) String() string {
	if orm.ValidateSequence(id) != nil {
		return "(invalid)"
	}
	return strconv.FormatUint(orm.DecodeSequence(id), 10)
}

// Validate returns an error if the id was not issued by a bucket sequence.
func (id StreamID) Validate() error {
	return orm.ValidateSequence(id)
}

// Stream releases TotalAmount from Sender to Recipient over Duration units
// of the schedule clock.
type Stream struct {
	Sender    paystream.Address
	Recipient paystream.Address
	// Controller may pause, resume and cancel the stream next to the
	// sender. Optional.
	Controller  paystream.Address
	TotalAmount int64
	Duration    int64
	Schedule    Schedule
	StartTime   paystream.UnixTime
	StartHeight int64
	Withdrawn   int64
	IsActive    bool
	Cancelled   bool
	// PausedAt is the clock reading of the last pause.
	PausedAt int64
	// PausedFor is the number of units the stream spent paused.
	PausedFor int64
	Memo      string
}

var _ orm.Model = (*Stream)(nil)

func (s *Stream) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(s)
}

func (s *Stream) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, s)
}

// Validate ensures the stream is valid.
func (s *Stream) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", s.Sender.Validate())
	errs = errors.AppendField(errs, "Recipient", s.Recipient.Validate())
	if s.Controller != nil {
		errs = errors.AppendField(errs, "Controller", s.Controller.Validate())
	}
	if s.TotalAmount <= 0 {
		errs = errors.Append(errs, errors.Field("TotalAmount", errors.ErrInvalidModel, "must be positive"))
	}
	if s.Duration <= 0 {
		errs = errors.Append(errs, errors.Field("Duration", errors.ErrInvalidModel, "must be positive"))
	}
	errs = errors.AppendField(errs, "Schedule", s.Schedule.Validate())
	errs = errors.AppendField(errs, "StartTime", s.StartTime.Validate())
	if s.StartHeight < 0 {
		errs = errors.Append(errs, errors.Field("StartHeight", errors.ErrInvalidModel, "negative"))
	}
	if s.Withdrawn < 0 || s.Withdrawn > s.TotalAmount {
		errs = errors.Append(errs, errors.Field("Withdrawn", errors.ErrInvalidModel, "out of range"))
	}
	if s.PausedFor < 0 {
		errs = errors.Append(errs, errors.Field("PausedFor", errors.ErrInvalidModel, "negative"))
	}
	if s.Cancelled && s.IsActive {
		errs = errors.Append(errs, errors.Field("IsActive", errors.ErrInvalidModel, "cancelled stream cannot be active"))
	}
	if len(s.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInvalidModel, "too long"))
	}
	return errs
}

// IsPaused returns true if the stream was paused and can be resumed.
func (s *Stream) IsPaused() bool {
	return !s.IsActive && !s.Cancelled
}

// start returns the clock reading at which the stream was created.
func (s *Stream) start() int64 {
	if s.Schedule.Unit == Blocks {
		return s.StartHeight
	}
	return int64(s.StartTime)
}

// Vested returns the amount released up to now, ignoring withdrawals and the
// active flag. now is read with the clock of the stream schedule.
func (s *Stream) Vested(now int64) int64 {
	elapsed := now - s.start() - s.PausedFor
	if elapsed <= 0 {
		return 0
	}
	// The full amount is released once the duration passed, even when the
	// interval does not divide it.
	if elapsed >= s.Duration {
		return s.TotalAmount
	}
	elapsed -= elapsed % s.Schedule.interval()
	// elapsed < Duration, so the quotient is below TotalAmount and the
	// division cannot overflow.
	hi, lo := bits.Mul64(uint64(s.TotalAmount), uint64(elapsed))
	q, _ := bits.Div64(hi, lo, uint64(s.Duration))
	return int64(q)
}

// Available returns the amount the recipient can withdraw at now. It is zero
// while the stream is not active.
func (s *Stream) Available(now int64) int64 {
	if !s.IsActive {
		return 0
	}
	vested := s.Vested(now)
	if vested <= s.Withdrawn {
		return 0
	}
	return vested - s.Withdrawn
}

// Bucket stores streams by their StreamID.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for storing Stream state.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Stream{}),
	}
}

// Create stores a new stream under the next free id.
func (b Bucket) Create(db paystream.KVStore, s *Stream) (StreamID, error) {
	key, err := b.ModelBucket.Put(db, nil, s)
	if err != nil {
		return nil, err
	}
	return StreamID(key), nil
}

// Save updates the state of an existing stream.
func (b Bucket) Save(db paystream.KVStore, id StreamID, s *Stream) error {
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "stream id")
	}
	_, err := b.ModelBucket.Put(db, id, s)
	return err
}

// GetStream returns the stream with given id or ErrStreamNotFound.
func (b Bucket) GetStream(db paystream.ReadOnlyKVStore, id StreamID) (*Stream, error) {
	var s Stream
	switch err := b.ModelBucket.One(db, id, &s); {
	case err == nil:
		return &s, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrStreamNotFound, "id %s", id)
	default:
		return nil, err
	}
}
