package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout and retry values.
// These values can be customized via environment variables.
type Timeouts struct {
	Operation     time.Duration // Overall cap on waiting for one cloud operation
	OperationPoll time.Duration // Interval between operation status polls

	SubnetCreateAttempts int           // Attempts for transient subnet-create failures
	SubnetCreateDelay    time.Duration // Fixed delay between subnet-create attempts

	PeeringAttempts int           // Attempts for transient peering mutations
	PeeringDelay    time.Duration // Fixed delay between peering attempts

	SubnetDeleteAttempts        int           // Attempts for the subnet delete call itself
	SubnetDeleteDelay           time.Duration // Fixed delay between subnet-delete attempts
	SubnetDeleteConfirmAttempts int           // Polls confirming a deleted subnet is gone
	SubnetDeleteConfirmInterval time.Duration // Interval between delete-confirm polls
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - GENOMIX_TIMEOUT_OPERATION (default: 10m)
//   - GENOMIX_OPERATION_POLL_INTERVAL (default: 1s)
//   - GENOMIX_SUBNET_CREATE_ATTEMPTS (default: 3)
//   - GENOMIX_SUBNET_CREATE_DELAY (default: 30s)
//   - GENOMIX_PEERING_ATTEMPTS (default: 3)
//   - GENOMIX_PEERING_DELAY (default: 10s)
//   - GENOMIX_SUBNET_DELETE_ATTEMPTS (default: 5)
//   - GENOMIX_SUBNET_DELETE_DELAY (default: 30s)
//   - GENOMIX_SUBNET_DELETE_CONFIRM_ATTEMPTS (default: 30)
//   - GENOMIX_SUBNET_DELETE_CONFIRM_INTERVAL (default: 2s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Operation:     parseDuration("GENOMIX_TIMEOUT_OPERATION", 10*time.Minute),
		OperationPoll: parseDuration("GENOMIX_OPERATION_POLL_INTERVAL", 1*time.Second),

		SubnetCreateAttempts: parseInt("GENOMIX_SUBNET_CREATE_ATTEMPTS", 3),
		SubnetCreateDelay:    parseDuration("GENOMIX_SUBNET_CREATE_DELAY", 30*time.Second),

		PeeringAttempts: parseInt("GENOMIX_PEERING_ATTEMPTS", 3),
		PeeringDelay:    parseDuration("GENOMIX_PEERING_DELAY", 10*time.Second),

		SubnetDeleteAttempts:        parseInt("GENOMIX_SUBNET_DELETE_ATTEMPTS", 5),
		SubnetDeleteDelay:           parseDuration("GENOMIX_SUBNET_DELETE_DELAY", 30*time.Second),
		SubnetDeleteConfirmAttempts: parseInt("GENOMIX_SUBNET_DELETE_CONFIRM_ATTEMPTS", 30),
		SubnetDeleteConfirmInterval: parseDuration("GENOMIX_SUBNET_DELETE_CONFIRM_INTERVAL", 2*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
