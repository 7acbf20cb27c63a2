// Package registry maps opaque handles to independently-owned simulation
// instances.
//
// Each handle is a monotonically allocated token that is never reused, so a
// stale handle can never alias a later instance. The registry exclusively
// owns the instances it creates: create inserts, destroy removes, and every
// per-instance operation starts with a lookup here. The handle-to-instance
// map is internally synchronized because instances may be created and
// destroyed concurrently; the instances themselves are not locked and rely
// on the caller serializing per-handle operations.
package registry
