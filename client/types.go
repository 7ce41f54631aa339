package client

import (
	"fmt"

	paystream "github.com/paystream/paystream"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	tmtypes "github.com/tendermint/tendermint/types"
)

// TransactionID is the tendermint hash of an encoded paystreamd transaction.
type TransactionID = cmn.HexBytes

// RequestQuery and ResponseQuery are the ABCI query types. Aliasing them lets
// an in-process application serve the same typed queries as a remote node.
type (
	RequestQuery  = abci.RequestQuery
	ResponseQuery = abci.ResponseQuery
)

// TxQuery is a tendermint event query, for example "tx.height>10".
type TxQuery = string

// Header is the tendermint block header. Its Time drives stream accrual.
type Header = tmtypes.Header

// CommitResult describes a transaction once it was included in a block.
// Result holds the stream or channel id and events on success. Err holds
// the decoded application error otherwise.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *paystream.DeliverResult
	Err    error
}

// Status reports the last block height of the node and whether it is still
// syncing.
type Status struct {
	Height     int64
	CatchingUp bool
}

type resultOrError struct {
	result *CommitResult
	err    error
}

// Option configures a subscription.
type Option interface {
	isOption()
}

// OptionCapacity sets the buffer size of the subscription channel on the
// node side.
type OptionCapacity struct {
	Capacity int
}

func (OptionCapacity) isOption() {}

// QueryTxByID matches the single transaction with the given hash.
func QueryTxByID(id TransactionID) TxQuery {
	return fmt.Sprintf("%s='%X'", tmtypes.TxHashKey, id)
}

// QueryForHeader matches every new block header.
func QueryForHeader() string {
	return queryForEvent(tmtypes.EventNewBlockHeader)
}

func queryForEvent(eventType string) string {
	return fmt.Sprintf("%s='%s'", tmtypes.EventTypeKey, eventType)
}
