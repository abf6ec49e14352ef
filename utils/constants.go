// File: utils/constants.go
package utils

import "time"

// ProviderLockPrefix is the prefix used for Redis provider schedule lock keys.
const ProviderLockPrefix = "lock:provider:"

// RequestIDHeader carries the request id in and out of the API.
const RequestIDHeader = "X-Request-ID"

// PingTimeout bounds each dependency ping made by the health monitor.
const PingTimeout = 2 * time.Second
