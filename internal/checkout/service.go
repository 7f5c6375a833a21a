package checkout

import (
	"context"

	"biteaffair/internal/metrics"
	"biteaffair/internal/otp"
	"biteaffair/internal/pricing"
	"biteaffair/internal/storefront"
	"biteaffair/internal/whatsapp"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	store    *storefront.Store
	otp      *otp.Service
	notifier *whatsapp.Notifier
	charges  pricing.Charges
}

func NewService(
	store *storefront.Store,
	otpService *otp.Service,
	notifier *whatsapp.Notifier,
	charges pricing.Charges,
) *Service {
	return &Service{
		store:    store,
		otp:      otpService,
		notifier: notifier,
		charges:  charges,
	}
}

// Confirmation is what the success screen renders.
type Confirmation struct {
	OrderID  string          `json:"order_id"`
	Status   string          `json:"status"`
	Totals   pricing.Totals  `json:"totals"`
	WhatsApp whatsapp.Result `json:"whatsapp"`
}

func (s *Service) Totals(ctx context.Context, sessionID string) (pricing.Totals, error) {
	return s.store.Totals(ctx, sessionID, s.charges)
}

func (s *Service) SendOTP(ctx context.Context, phone string) (otp.Result, error) {
	return s.otp.Send(ctx, phone)
}

func (s *Service) ResendOTP(ctx context.Context, phone string) (otp.Result, error) {
	return s.otp.Resend(ctx, phone)
}

// VerifyOTP checks the code and, on success, marks the phone as verified
// for this session so the order can be confirmed.
func (s *Service) VerifyOTP(ctx context.Context, sessionID, phone, code string) (otp.Result, error) {
	res, err := s.otp.Verify(ctx, phone, code)
	if err != nil {
		return res, err
	}
	if err := s.store.MarkVerified(ctx, sessionID, res.Phone); err != nil {
		return otp.Result{Success: false, Message: otp.MsgSendFailed}, err
	}
	return res, nil
}

// Confirm places the order and hands the summary to WhatsApp. A failed
// handoff is reported in the confirmation but never fails the order.
func (s *Service) Confirm(ctx context.Context, sessionID string, customer storefront.Customer) (*Confirmation, error) {
	phone, err := otp.NormalizePhone(customer.Phone)
	if err != nil {
		return nil, err
	}
	customer.Phone = phone

	order, err := s.store.PlaceOrder(ctx, sessionID, customer, s.charges)
	if err != nil {
		return nil, err
	}

	metrics.OrdersTotal.Inc()
	metrics.OrderValue.Observe(float64(order.Totals.Total))

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"session":  sessionID,
		"lines":    len(order.Lines),
		"total":    order.Totals.Total,
	}).Info("order confirmed")

	return &Confirmation{
		OrderID:  order.ID,
		Status:   order.Status,
		Totals:   order.Totals,
		WhatsApp: s.notifier.Handoff(ctx, orderDetails(order)),
	}, nil
}

func orderDetails(order *storefront.Order) whatsapp.OrderDetails {
	d := whatsapp.OrderDetails{
		Phone: order.Customer.Phone,
		Total: order.Totals.Total,
	}
	if order.Booking != nil {
		d.Location = order.Booking.Location
		d.DeliveryDate = order.Booking.EventDate
		d.DeliveryTime = order.Booking.EventTime
	}
	if d.Location == "" {
		d.Location = order.Customer.Address
	}

	for _, line := range order.Lines {
		d.Items = append(d.Items, whatsapp.Item{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return d
}
