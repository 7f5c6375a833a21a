package storefront

import (
	"context"
	"errors"
)

// ErrNotFound means the key has never been written. Callers treat it as
// "use defaults", never as a failure.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot keys, scoped per session as "<session>:<key>".
const (
	KeyGuestCount    = "biteAffair_guestCount"
	KeyBookingConfig = "biteAffairs_bookingConfig"
	KeyCart          = "biteAffair_cart"
	KeyWizard        = "biteAffair_bookingWizard"
)

// Repository is the key-value snapshot contract.
// Store depends ONLY on this interface.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

func sessionKey(sessionID, key string) string {
	return sessionID + ":" + key
}

func orderKey(orderID string) string {
	return "order:" + orderID
}
