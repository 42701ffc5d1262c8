// Package access decides which features a user can see, based on their
// purchase entitlement and preferences.
package access

import (
	"fmt"

	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// Entitlement is the purchase status reported by the store.
type Entitlement string

const (
	EntitlementFree    Entitlement = "free"
	EntitlementPremium Entitlement = "premium"
	EntitlementUnknown Entitlement = "unknown"
)

// ParseEntitlement validates a status string.
func ParseEntitlement(s string) (Entitlement, error) {
	switch e := Entitlement(s); e {
	case EntitlementFree, EntitlementPremium, EntitlementUnknown:
		return e, nil
	}
	return "", fmt.Errorf("entitlement %q: %w", s, internalerr.ErrInvalidInput)
}

// Stable reports whether e is a definite status.
func (e Entitlement) Stable() bool {
	return e == EntitlementFree || e == EntitlementPremium
}

// EntitlementState is the persisted entitlement with the last definite
// status, used while the store cannot be reached.
type EntitlementState struct {
	Status          Entitlement `json:"status"`
	LastKnownStatus Entitlement `json:"lastKnownStatus"`
	LastCheckedAt   *string     `json:"lastCheckedAt"`
}

// DefaultEntitlementState is a never-checked free user.
func DefaultEntitlementState() EntitlementState {
	return EntitlementState{
		Status:          EntitlementFree,
		LastKnownStatus: EntitlementFree,
	}
}

// Effective returns Status, or LastKnownStatus when Status is unknown.
func (s EntitlementState) Effective() Entitlement {
	if s.Status == EntitlementUnknown {
		return s.LastKnownStatus
	}
	return s.Status
}

// Next returns the state after a check that reported status at checkedAt.
// An unknown result keeps the previous last-known status.
func (s EntitlementState) Next(status Entitlement, checkedAt string) EntitlementState {
	next := EntitlementState{
		Status:          status,
		LastKnownStatus: status,
		LastCheckedAt:   &checkedAt,
	}
	if status == EntitlementUnknown {
		next.LastKnownStatus = s.LastKnownStatus
	}
	return next
}
