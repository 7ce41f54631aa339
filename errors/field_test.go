package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	var err error
	err = AppendField(err, "Amount", ErrInvalidAmount)
	err = AppendField(err, "Recipient", nil)
	err = AppendField(err, "Sender", Wrap(ErrEmpty, "required"))

	if got := FieldErrors(err, "Amount"); len(got) != 1 || !ErrInvalidAmount.Is(got[0]) {
		t.Fatalf("unexpected Amount errors: %v", got)
	}
	if got := FieldErrors(err, "Recipient"); len(got) != 0 {
		t.Fatalf("unexpected Recipient errors: %v", got)
	}
	if got := FieldErrors(err, "Sender"); len(got) != 1 || !ErrEmpty.Is(got[0]) {
		t.Fatalf("unexpected Sender errors: %v", got)
	}
}

func TestAppend(t *testing.T) {
	if Append(nil, nil) != nil {
		t.Fatal("all nil must give nil")
	}
	if err := Append(nil, ErrEmpty); err != ErrEmpty {
		t.Fatalf("single error must be returned as is: %v", err)
	}
	err := Append(Append(ErrEmpty, ErrNotFound), ErrInvalidState)
	if got := len(err.(unpacker).Unpack()); got != 3 {
		t.Fatalf("want flat list of 3, got %d", got)
	}
}
