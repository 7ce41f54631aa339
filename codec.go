package paystream

import (
	"reflect"

	"github.com/paystream/paystream/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes all models, messages and transactions. Message types are
// registered by their extensions so that a transaction can carry any of them
// behind the Msg interface.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*Msg)(nil), nil)
}

// RegisterMsg makes a message type available for transaction encoding under
// the given name. Call it from an init function of the extension declaring
// the message.
func RegisterMsg(msg Msg, name string) {
	cdc.RegisterConcrete(msg, name, nil)
}

// MarshalBinary serializes given value using the shared codec. A zero value
// is encoded as an empty, non nil slice so that it can be told apart from a
// missing store entry.
func MarshalBinary(o interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if raw == nil {
		raw = []byte{}
	}
	return raw, nil
}

// UnmarshalBinary deserializes raw into the value pointed to by ptr.
func UnmarshalBinary(raw []byte, ptr interface{}) error {
	if len(raw) == 0 {
		v := reflect.ValueOf(ptr)
		if v.Kind() != reflect.Ptr || v.IsNil() {
			return errors.Wrapf(errors.ErrHuman, "cannot unmarshal into %T", ptr)
		}
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, ptr); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// MarshalJSON serializes given value into JSON, including the type names of
// registered messages.
func MarshalJSON(o interface{}) ([]byte, error) {
	raw, err := cdc.MarshalJSON(o)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
