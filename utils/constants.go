// File: utils/constants.go
package utils

// HistoryCachePrefix is the prefix used for conversation history cache keys.
const HistoryCachePrefix = "chat:history:"

// PendingCachePrefix is the prefix used for pending-action cache keys.
const PendingCachePrefix = "booking:pending:"
