/*
Package app turns handlers and decorators into an ABCI application.

StoreApp owns the committed state, answers queries and keeps the block
context. BaseApp adds transaction decoding and dispatches CheckTx and
DeliverTx to a handler, usually a Router wrapped with ChainDecorators.
*/
package app
