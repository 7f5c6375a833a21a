package reconcile

import (
	"time"

	"biteaffair/internal/cart"
	"biteaffair/internal/guests"
	"biteaffair/internal/menu"
	"biteaffair/internal/metrics"
	"biteaffair/internal/pricing"
)

// BucketFor returns the guest bucket a line tracks. Add-ons, breads,
// desserts and fixed packages are exempt and report false.
func BucketFor(line cart.Line) (guests.Bucket, bool) {
	if line.Addon || line.FixedPackage() || line.Category.Neutral() {
		return "", false
	}

	switch {
	case line.Mode == menu.ModeJain || line.Diet == menu.DietJain:
		return guests.Jain, true
	case line.Diet == menu.DietNonVeg:
		return guests.NonVeg, true
	default:
		return guests.Veg, true
	}
}

// Result of one reconciliation call.
type Result struct {
	Updated  int           `json:"updated"`
	Deferred time.Duration `json:"-"`
}

// Reconciler keeps cart line quantities equal to their bucket's guest count.
type Reconciler struct {
	lock *EditLock
}

func New(lock *EditLock) *Reconciler {
	return &Reconciler{lock: lock}
}

func (r *Reconciler) Lock() *EditLock {
	return r.lock
}

// Run reconciles every tracked line unless a manual edit is still inside the
// lock window, in which case nothing changes and the remaining time is
// reported so the caller can run again later.
func (r *Reconciler) Run(ledger *cart.Ledger, g guests.Count) Result {
	if left := r.lock.Remaining(); left > 0 {
		metrics.ReconcileDeferrals.Inc()
		return Result{Deferred: left}
	}
	return Result{Updated: syncLines(ledger, g, nil)}
}

// Patch immediately reconciles the lines of one bucket and starts the edit
// window. It backs the guest-count stepper and the cart-line stepper.
func (r *Reconciler) Patch(ledger *cart.Ledger, g guests.Count, bucket guests.Bucket) int {
	r.lock.Touch()
	return syncLines(ledger, g, &bucket)
}

// syncLines rewrites lines whose quantity differs from their target. Lines that
// already match are not touched, which makes repeated passes no-ops.
func syncLines(ledger *cart.Ledger, g guests.Count, only *guests.Bucket) int {
	updated := 0

	for _, line := range ledger.Lines() {
		bucket, tracked := BucketFor(line)
		if !tracked || (only != nil && bucket != *only) {
			continue
		}

		target := g.Get(bucket)
		if target <= 0 || line.Quantity == target {
			continue
		}

		if _, err := ledger.UpdateQuantity(line.ID, target, patchFor(line, target)); err == nil {
			updated++
		}
	}

	if updated > 0 {
		metrics.ReconcileUpdates.Add(float64(updated))
	}
	return updated
}

// patchFor recomputes the portion text for target guests. Lines without a
// portion spec keep their text; a malformed spec falls back to the original.
func patchFor(line cart.Line, target int) *cart.Patch {
	if line.PortionSpec == "" {
		return nil
	}
	portion := pricing.ScalePortion(line.PortionSpec, line.BaseServes, target)
	return &cart.Patch{Portion: &portion}
}
