/*
Package paystream defines the common interfaces that tie the engine together,
as well as implementations of some of the simpler components where an
interface would be too much overhead.

Every operation is a Msg delivered inside a Tx to a Handler. Handlers get a
Context carrying block data (height, time, chain id, logger) and a KVStore to
read from and write to. Decorators wrap handlers to add authentication,
logging, savepoints and event publishing.

Payment streams live in x/stream and payment channels in x/paychan. The app
package wires them into an ABCI application and cmd/paystreamd runs it.
*/
package paystream
