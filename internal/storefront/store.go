package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"biteaffair/internal/booking"
	"biteaffair/internal/guests"
	"biteaffair/internal/menu"
	"biteaffair/internal/reconcile"

	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingSession = errors.New("missing session")
	ErrPackageDish    = errors.New("veg package dishes are added as a package")
	ErrNotAPackage    = errors.New("item is not a fixed package")
	ErrWrongMode      = errors.New("item must be added through its own endpoint")
)

// Store owns every live session and is the only writer of storefront state.
type Store struct {
	repo       Repository
	catalog    *menu.Service
	editWindow time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(repo Repository, catalog *menu.Service, editWindow time.Duration) *Store {
	if editWindow <= 0 {
		editWindow = reconcile.DefaultEditWindow
	}
	return &Store{
		repo:       repo,
		catalog:    catalog,
		editWindow: editWindow,
		sessions:   make(map[string]*Session),
	}
}

// session returns the live session, loading its snapshots on first use.
func (s *Store) session(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrMissingSession
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	loaded, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	s.sessions[id] = loaded
	return loaded, nil
}

// with runs fn under the session lock.
func (s *Store) with(ctx context.Context, id string, fn func(sess *Session) error) error {
	sess, err := s.session(ctx, id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now()
	return fn(sess)
}

// Sweep drops sessions idle for longer than maxIdle from memory. Their
// snapshots stay in the repository and are reloaded on the next request.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		if idle && sess.timer != nil {
			sess.timer.Stop()
		}
		sess.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// --------------------------------------------------
// Deferred reconciliation
// --------------------------------------------------

// schedule re-runs reconciliation once the edit window has passed. The
// timer is only a convenience; Run re-checks the lock itself.
func (s *Store) schedule(sess *Session, after time.Duration) {
	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.timer = time.AfterFunc(after, func() {
		s.runDeferred(sess)
	})
}

func (s *Store) runDeferred(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	res := sess.reconciler.Run(sess.cart, sess.guests)
	if res.Deferred > 0 {
		s.schedule(sess, res.Deferred)
		return
	}
	if res.Updated > 0 {
		s.persist(context.Background(), sess, KeyCart)
		log.WithFields(log.Fields{"session": sess.ID, "updated": res.Updated}).Debug("deferred reconciliation applied")
	}
}

// reconcileNow runs a full pass, scheduling a retry when a manual edit holds it off.
func (s *Store) reconcileNow(sess *Session) reconcile.Result {
	res := sess.reconciler.Run(sess.cart, sess.guests)
	if res.Deferred > 0 {
		s.schedule(sess, res.Deferred)
	}
	return res
}

// --------------------------------------------------
// Guest counts
// --------------------------------------------------

func (s *Store) Guests(ctx context.Context, sessionID string) (guests.Count, error) {
	var g guests.Count
	err := s.with(ctx, sessionID, func(sess *Session) error {
		g = sess.guests
		return nil
	})
	return g, err
}

// GuestUpdate is the result of a guest stepper click.
type GuestUpdate struct {
	Guests  guests.Count `json:"guest_count"`
	Updated int          `json:"updated"`
}

// SetGuests is the guest-count stepper. The bucket's lines are patched in the
// same call and the edit lock holds off the full pass for the window.
func (s *Store) SetGuests(ctx context.Context, sessionID string, bucket guests.Bucket, value int) (GuestUpdate, error) {
	var out GuestUpdate
	err := s.with(ctx, sessionID, func(sess *Session) error {
		sess.guests = sess.guests.With(bucket, value)
		out.Updated = sess.reconciler.Patch(sess.cart, sess.guests, bucket)
		out.Guests = sess.guests

		s.schedule(sess, s.editWindow)
		s.persist(ctx, sess, KeyGuestCount, KeyCart)
		return nil
	})
	return out, err
}

// Reconcile runs a full pass on request.
func (s *Store) Reconcile(ctx context.Context, sessionID string) (reconcile.Result, error) {
	var res reconcile.Result
	err := s.with(ctx, sessionID, func(sess *Session) error {
		res = s.reconcileNow(sess)
		if res.Updated > 0 {
			s.persist(ctx, sess, KeyCart)
		}
		return nil
	})
	return res, err
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// BookingState is the wizard plus the stored booking.
type BookingState struct {
	Step      booking.Step    `json:"step"`
	StepTitle string          `json:"step_title"`
	Data      booking.Data    `json:"data"`
	Completed bool            `json:"completed"`
	Config    *booking.Config `json:"config"`
}

func stateOf(sess *Session) BookingState {
	return BookingState{
		Step:      sess.wizard.Step,
		StepTitle: sess.wizard.StepTitle(),
		Data:      sess.wizard.Data,
		Completed: sess.wizard.Completed,
		Config:    sess.booking,
	}
}

func (s *Store) Booking(ctx context.Context, sessionID string) (BookingState, error) {
	var out BookingState
	err := s.with(ctx, sessionID, func(sess *Session) error {
		out = stateOf(sess)
		return nil
	})
	return out, err
}

// UpdateWizard applies one wizard action and persists the wizard.
func (s *Store) UpdateWizard(ctx context.Context, sessionID string, action func(w *booking.Wizard) error) (BookingState, error) {
	var out BookingState
	err := s.with(ctx, sessionID, func(sess *Session) error {
		if err := action(sess.wizard); err != nil {
			return err
		}
		s.persist(ctx, sess, KeyWizard)
		out = stateOf(sess)
		return nil
	})
	return out, err
}

// completeBooking is the wizard's completion callback. It runs under the
// session lock from inside SelectMeal.
func (s *Store) completeBooking(sess *Session) booking.CompleteFunc {
	return func(cfg booking.Config) error {
		sess.booking = &cfg
		sess.guests = cfg.Guests.Normalized()

		res := s.reconcileNow(sess)
		s.persist(context.Background(), sess, KeyBookingConfig, KeyGuestCount, KeyCart)

		log.WithFields(log.Fields{
			"session": sess.ID,
			"menu":    cfg.Menu,
			"updated": res.Updated,
		}).Info("booking applied")
		return nil
	}
}

// ResetBooking starts an explicit re-booking. Guest counts and the cart are kept.
func (s *Store) ResetBooking(ctx context.Context, sessionID string) (BookingState, error) {
	var out BookingState
	err := s.with(ctx, sessionID, func(sess *Session) error {
		sess.wizard.Reset()
		sess.booking = nil
		s.persist(ctx, sess, KeyWizard, KeyBookingConfig)
		out = stateOf(sess)
		return nil
	})
	return out, err
}

// --------------------------------------------------
// Verified phone
// --------------------------------------------------

// MarkVerified records a phone number whose OTP was accepted.
func (s *Store) MarkVerified(ctx context.Context, sessionID, phone string) error {
	return s.with(ctx, sessionID, func(sess *Session) error {
		sess.verified = phone
		return nil
	})
}
