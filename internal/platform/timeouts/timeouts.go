// Package timeouts holds the durations shared by the console servers.
package timeouts

import "time"

// ReadHeader limits how long the web console waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server drains in-flight requests.
const Shutdown = 5 * time.Second

// TelemetryShutdown limits how long pending spans are flushed on exit.
const TelemetryShutdown = 5 * time.Second
