package gtr

import (
	"fmt"

	"floe/internal/domain/grant"
)

// statusTable maps the closed set of registry status strings onto the
// local grant status enumeration. Anything outside the set is a hard
// failure rather than a default bucket.
var statusTable = map[string]grant.Status{
	"Active":     grant.StatusActive,
	"Closed":     grant.StatusClosed,
	"Completed":  grant.StatusCompleted,
	"Terminated": grant.StatusTerminated,
	"Pending":    grant.StatusPending,
	"Unknown":    grant.StatusUnknown,
}

// MapStatus translates a registry status string to the local enumeration.
func MapStatus(external string) (grant.Status, error) {
	status, ok := statusTable[external]
	if !ok {
		return "", fmt.Errorf("unrecognized registry status %q", external)
	}
	return status, nil
}

// currencyTable maps registry currency codes onto local codes.
// Extending it is a configuration change, not a design change.
var currencyTable = map[string]string{
	"GBP": "GBP",
}

// MapCurrency translates a registry currency code to the local code.
func MapCurrency(code string) (string, error) {
	currency, ok := currencyTable[code]
	if !ok {
		return "", fmt.Errorf("unrecognized registry currency %q", code)
	}
	return currency, nil
}
