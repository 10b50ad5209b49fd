package printnightmare

import "time"

// Config holds the operator inputs for a session
type Config struct {
	// DLLPath is loaded by the spooler: a UNC path or a local path on the target
	DLLPath string

	// ReconnectDelay is waited before rebinding after the pipe breaks
	ReconnectDelay time.Duration

	// Force runs the exploit whatever the check concluded
	Force bool
}

// DefaultReconnectDelay gives a crashed spooler time to restart
const DefaultReconnectDelay = 10 * time.Second

// DefaultConfig returns a config with the default reconnect delay
func DefaultConfig() Config {
	return Config{ReconnectDelay: DefaultReconnectDelay}
}
