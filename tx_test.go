package paystream

import (
	"testing"

	"github.com/paystream/paystream/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoMsg struct {
	Num  int
	Text string
	Err  error
}

func (demoMsg) Path() string               { return "demo/path" }
func (m demoMsg) Validate() error          { return m.Err }
func (demoMsg) Marshal() ([]byte, error)   { return []byte("foo"), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

type otherMsg struct{ demoMsg }

func (otherMsg) Path() string { return "other/path" }

type demoTx struct {
	msg Msg
	err error
}

func (tx demoTx) GetMsg() (Msg, error)  { return tx.msg, tx.err }
func (demoTx) Marshal() ([]byte, error) { return nil, nil }
func (*demoTx) Unmarshal([]byte) error  { return nil }

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/path", GetPath(&demoTx{msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&demoTx{}))
	assert.Equal(t, "(missing)", GetPath(&demoTx{msg: &demoMsg{}, err: errors.ErrInput}))
}

func TestLoadMsg(t *testing.T) {
	msg := &demoMsg{Num: 17, Text: "hello world"}

	var got demoMsg
	require.NoError(t, LoadMsg(&demoTx{msg: msg}, &got))
	assert.Equal(t, *msg, got)

	cases := map[string]struct {
		tx   Tx
		dest interface{}
		want *errors.Error
	}{
		"no message": {
			tx:   &demoTx{},
			dest: &demoMsg{},
			want: errors.ErrInvalidMsg,
		},
		"message error": {
			tx:   &demoTx{err: errors.ErrInput},
			dest: &demoMsg{},
			want: errors.ErrInput,
		},
		"not a pointer": {
			tx:   &demoTx{msg: msg},
			dest: demoMsg{},
			want: errors.ErrHuman,
		},
		"different type": {
			tx:   &demoTx{msg: msg},
			dest: &otherMsg{},
			want: errors.ErrInvalidType,
		},
		"invalid message": {
			tx:   &demoTx{msg: &demoMsg{Err: errors.ErrEmpty}},
			dest: &demoMsg{},
			want: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			assert.True(t, tc.want.Is(err), "got %+v", err)
		})
	}
}
