/*
Package server implements the init and start commands of a node.

init adds the application state to a genesis file created by tendermint
init. start loads the node configuration, builds the application and serves
it over the ABCI socket protocol, with an optional Prometheus endpoint.
*/
package server
