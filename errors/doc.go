/*
Package errors implements the error kinds used across paystream.

Root errors are declared with Register(code, description). Each one carries a
unique ABCI code so that a client can distinguish failures without parsing
messages. Extensions register their own codes in a reserved range and declare
the taxonomy kind they belong to with Of:

	ErrStreamNotFound = errors.Register(1030, "stream not found").Of(errors.ErrNotFound)

With that declaration both ErrStreamNotFound.Is(err) and
errors.ErrNotFound.Is(err) hold for a wrapped ErrStreamNotFound.

Always create runtime errors with Wrap, Wrapf, New or Newf so that a
stacktrace is attached at the creation point. Format with %+v to print it.

Message validation collects field errors with Field and AppendField, and
combines independent failures with Append.
*/
package errors
