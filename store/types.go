package store

import paystream "github.com/paystream/paystream"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = paystream.ReadOnlyKVStore
type KVStore = paystream.KVStore
type CacheableKVStore = paystream.CacheableKVStore
type KVCacheWrap = paystream.KVCacheWrap
type CommitKVStore = paystream.CommitKVStore
type CommitID = paystream.CommitID
