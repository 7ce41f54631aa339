package client

import (
	nm "github.com/tendermint/tendermint/node"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
)

// NewLocalConnection talks to a paystreamd node running in the same process.
// Tests use it together with rpc/test.
func NewLocalConnection(node *nm.Node) rpcclient.Client {
	return rpcclient.NewLocal(node)
}

// NewHTTPConnection talks to a remote paystreamd node. remote is the RPC
// address, for example "tcp://localhost:26657". Subscriptions use the node
// websocket endpoint.
func NewHTTPConnection(remote string) rpcclient.Client {
	const wsEndpoint = "/websocket"
	return rpcclient.NewHTTP(remote, wsEndpoint)
}
