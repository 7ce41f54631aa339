/*
Package stream implements time based payment streams.

A stream releases a fixed total amount from a sender to a recipient over a
duration. The released part is derived from the block clock whenever it is
needed, so nothing happens between blocks. The recipient may withdraw any part
of what was released so far. The sender, or an optional controller, may pause
and resume the release or cancel the stream for good.

The clock is either the block time in seconds or the block height, as chosen
by the stream Schedule. A schedule interval greater than one releases funds in
steps instead of continuously.
*/
package stream
