/*
Package client talks to a paystream node over the tendermint RPC.

Client submits transactions, waits for them to be committed and follows new
blocks. The typed query helpers read streams, balances, channels and signer
sequences from anything answering ABCI queries, a remote Client as well as an
in process application.
*/
package client
