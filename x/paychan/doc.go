/*
Package paychan implements bilateral payment channels.

A channel is opened by party A with a deposit and names party B as the
counterparty. While the channel is open both parties exchange vouchers off the
chain. A voucher is an increment amount signed with an ed25519 key; the chain
only checks that it is well formed and signed, it never stores it.

The channel is closed once both parties sign the same final split of the
deposit. The split must account for the whole deposit.
*/
package paychan
