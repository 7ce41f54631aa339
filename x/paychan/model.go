package paychan

import (
	"strconv"

	paystream "github.com/paystream/paystream"
	"github.com/paystream/paystream/errors"
	"github.com/paystream/paystream/orm"
)

const (
	// BucketName is the key prefix of all channels.
	BucketName = "paychan"

	maxMemoSize = 128
)

// ChannelID is the key of a channel in the bucket. It is an 8 byte big
// endian counter.
type ChannelID []byte

// String returns the numeric form of the id.
func (id ChannelID) String() string {
	if orm.ValidateSequence(id) != nil {
		return "(invalid)"
	}
	return strconv.FormatUint(orm.DecodeSequence(id), 10)
}

// Validate returns an error if the id was not issued by a bucket sequence.
func (id ChannelID) Validate() error {
	return orm.ValidateSequence(id)
}

// Channel holds a deposit of PartyA that is split between both parties when
// the channel is closed.
type Channel struct {
	PartyA   paystream.Address
	PartyB   paystream.Address
	Deposit  int64
	BalanceA int64
	BalanceB int64
	IsClosed bool
	Memo     string
}

var _ orm.Model = (*Channel)(nil)

func (c *Channel) Marshal() ([]byte, error) {
	return paystream.MarshalBinary(c)
}

func (c *Channel) Unmarshal(raw []byte) error {
	return paystream.UnmarshalBinary(raw, c)
}

// Validate ensures the channel is valid.
func (c *Channel) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "PartyA", c.PartyA.Validate())
	errs = errors.AppendField(errs, "PartyB", c.PartyB.Validate())
	if c.Deposit <= 0 {
		errs = errors.Append(errs, errors.Field("Deposit", errors.ErrInvalidModel, "must be positive"))
	}
	if c.BalanceA < 0 || c.BalanceB < 0 {
		errs = errors.Append(errs, errors.Field("BalanceA", errors.ErrInvalidModel, "negative balance"))
	}
	if c.BalanceA+c.BalanceB != c.Deposit {
		errs = errors.Append(errs, errors.Field("BalanceA", errors.ErrInvalidModel, "balances do not sum up to the deposit"))
	}
	if len(c.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInvalidModel, "too long"))
	}
	return errs
}

// Bucket stores channels by their ChannelID.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for storing Channel state.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Channel{}),
	}
}

// Create stores a new channel under the next id. The id sequence never wraps
// around, ErrOverflow is returned once it is exhausted.
func (b Bucket) Create(db paystream.KVStore, c *Channel) (ChannelID, error) {
	key, err := b.ModelBucket.Put(db, nil, c)
	if err != nil {
		return nil, err
	}
	return ChannelID(key), nil
}

// Save updates the state of an existing channel.
func (b Bucket) Save(db paystream.KVStore, id ChannelID, c *Channel) error {
	if err := id.Validate(); err != nil {
		return errors.Wrap(err, "channel id")
	}
	_, err := b.ModelBucket.Put(db, id, c)
	return err
}

// GetChannel returns the channel with given id or ErrChannelNotFound.
func (b Bucket) GetChannel(db paystream.ReadOnlyKVStore, id ChannelID) (*Channel, error) {
	var c Channel
	switch err := b.ModelBucket.One(db, id, &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrChannelNotFound, "id %s", id)
	default:
		return nil, err
	}
}
