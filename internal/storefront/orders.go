package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"biteaffair/internal/booking"
	"biteaffair/internal/cart"
	"biteaffair/internal/guests"
	"biteaffair/internal/pricing"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrPhoneNotVerified = errors.New("phone number has not been verified")
	ErrOrderNotFound    = errors.New("order not found")
)

const OrderStatusConfirmed = "confirmed"

// Customer is the contact block collected at checkout.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
}

// Order is a confirmed cart, stored under "order:<id>".
type Order struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Status    string          `json:"status"`
	Customer  Customer        `json:"customer"`
	Booking   *booking.Config `json:"booking,omitempty"`
	Guests    guests.Count    `json:"guest_count"`
	Lines     []cart.Line     `json:"lines"`
	Totals    pricing.Totals  `json:"totals"`
	CreatedAt time.Time       `json:"created_at"`
}

// PlaceOrder turns the session cart into a stored order. The phone must be
// the one verified by OTP for this session. The cart is cleared only after
// the order is written.
func (s *Store) PlaceOrder(ctx context.Context, sessionID string, customer Customer, charges pricing.Charges) (*Order, error) {
	var order *Order
	err := s.with(ctx, sessionID, func(sess *Session) error {
		if sess.cart.Len() == 0 {
			return ErrEmptyCart
		}
		if sess.verified == "" || sess.verified != customer.Phone {
			return ErrPhoneNotVerified
		}

		order = &Order{
			ID:        uuid.New().String(),
			SessionID: sess.ID,
			Status:    OrderStatusConfirmed,
			Customer:  customer,
			Booking:   sess.booking,
			Guests:    sess.guests,
			Lines:     sess.cart.Lines(),
			Totals:    pricing.ComputeTotals(sess.cart.Total(), charges),
			CreatedAt: time.Now().UTC(),
		}

		data, err := json.Marshal(order)
		if err != nil {
			return err
		}
		if err := s.repo.Put(ctx, orderKey(order.ID), data); err != nil {
			return err
		}

		sess.cart.Clear()
		sess.verified = ""
		s.persist(ctx, sess, KeyCart)
		return nil
	})
	return order, err
}

// Order loads a stored order by id.
func (s *Store) Order(ctx context.Context, orderID string) (*Order, error) {
	data, err := s.repo.Get(ctx, orderKey(orderID))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Totals prices the session cart for checkout.
func (s *Store) Totals(ctx context.Context, sessionID string, charges pricing.Charges) (pricing.Totals, error) {
	var out pricing.Totals
	err := s.with(ctx, sessionID, func(sess *Session) error {
		out = pricing.ComputeTotals(sess.cart.Total(), charges)
		return nil
	})
	return out, err
}
