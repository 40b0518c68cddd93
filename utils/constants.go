// File: utils/constants.go
package utils

// AuthCachePrefix is the prefix used for Redis keys holding issued token hashes.
const AuthCachePrefix = "auth:"

// RoomLockPrefix is the prefix used for distributed per-room booking locks.
const RoomLockPrefix = "lock:room:"
