package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"biteaffair/internal/booking"
	"biteaffair/internal/cart"
	"biteaffair/internal/guests"
	"biteaffair/internal/reconcile"

	log "github.com/sirupsen/logrus"
)

// Session is one browser tab's storefront state. Every operation holds mu,
// so a session never runs two reconciliation passes at once.
type Session struct {
	ID string

	mu         sync.Mutex
	guests     guests.Count
	cart       *cart.Ledger
	wizard     *booking.Wizard
	booking    *booking.Config
	reconciler *reconcile.Reconciler
	verified   string
	timer      *time.Timer
	lastSeen   time.Time
}

// load restores a session from its snapshots. Absent keys mean defaults.
func (s *Store) load(ctx context.Context, id string) (*Session, error) {
	sess := &Session{
		ID:         id,
		guests:     guests.Default(),
		cart:       cart.NewLedger(),
		wizard:     booking.NewWizard(nil),
		reconciler: reconcile.New(reconcile.NewEditLock(s.editWindow)),
	}

	var g guests.Count
	switch found, err := s.read(ctx, id, KeyGuestCount, &g); {
	case err != nil:
		return nil, err
	case found:
		sess.guests = g.Normalized()
	}

	var lines []cart.Line
	switch found, err := s.read(ctx, id, KeyCart, &lines); {
	case err != nil:
		return nil, err
	case found:
		sess.cart = cart.Restore(lines)
	}

	var cfg booking.Config
	switch found, err := s.read(ctx, id, KeyBookingConfig, &cfg); {
	case err != nil:
		return nil, err
	case found:
		sess.booking = &cfg
	}

	var w booking.Wizard
	switch found, err := s.read(ctx, id, KeyWizard, &w); {
	case err != nil:
		return nil, err
	case found:
		sess.wizard = &w
	}
	sess.wizard.Attach(s.completeBooking(sess))

	return sess, nil
}

// read decodes one snapshot. A corrupt snapshot is logged and treated as
// absent so that a bad write never locks a visitor out.
func (s *Store) read(ctx context.Context, sessionID, key string, out interface{}) (bool, error) {
	data, err := s.repo.Get(ctx, sessionKey(sessionID, key))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.WithFields(log.Fields{"session": sessionID, "key": key}).WithError(err).Warn("discarding corrupt snapshot")
		return false, nil
	}
	return true, nil
}

// persist writes the named snapshots. Write failures are logged; the
// in-process session stays authoritative until the next successful write.
func (s *Store) persist(ctx context.Context, sess *Session, keys ...string) {
	for _, key := range keys {
		var value interface{}
		switch key {
		case KeyGuestCount:
			value = sess.guests
		case KeyCart:
			value = sess.cart.Lines()
		case KeyBookingConfig:
			if sess.booking == nil {
				if err := s.repo.Delete(ctx, sessionKey(sess.ID, key)); err != nil {
					log.WithFields(log.Fields{"session": sess.ID, "key": key}).WithError(err).Warn("snapshot delete failed")
				}
				continue
			}
			value = sess.booking
		case KeyWizard:
			value = sess.wizard
		default:
			continue
		}

		data, err := json.Marshal(value)
		if err != nil {
			log.WithFields(log.Fields{"session": sess.ID, "key": key}).WithError(err).Error("snapshot encode failed")
			continue
		}
		if err := s.repo.Put(ctx, sessionKey(sess.ID, key), data); err != nil {
			log.WithFields(log.Fields{"session": sess.ID, "key": key}).WithError(err).Warn("snapshot write failed")
		}
	}
}
