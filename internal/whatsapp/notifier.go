package whatsapp

import (
	"context"

	"biteaffair/internal/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	MsgLinkReady  = "Order details sent to WhatsApp"
	MsgAPISent    = "Order details sent via WhatsApp Business API"
	MsgSendFailed = "Failed to send via WhatsApp Business API"
)

type Config struct {
	BusinessPhone string         `yaml:"business_phone"`
	DeepLinkBase  string         `yaml:"deep_link_base"`
	Business      BusinessConfig `yaml:"business"`
}

// MessageSender pushes a text message to a phone.
type MessageSender interface {
	Send(ctx context.Context, phone, body string) error
}

// Result is reported back to the checkout page. URL is always filled so the
// customer can open the chat even when the API push failed.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

type Notifier struct {
	cfg    Config
	sender MessageSender
}

// NewNotifier wires the Business API sender only when credentials are set.
func NewNotifier(cfg Config) *Notifier {
	n := &Notifier{cfg: cfg}
	if cfg.Business.Enabled() {
		n.sender = NewBusinessSender(cfg.Business)
	}
	return n
}

// WithSender replaces the outbound sender.
func (n *Notifier) WithSender(s MessageSender) *Notifier {
	n.sender = s
	return n
}

// Handoff formats the order summary and returns the pre-filled chat link.
// It never returns an error: a failed push is logged and reported in Result.
func (n *Notifier) Handoff(ctx context.Context, d OrderDetails) Result {
	text := FormatOrderDetails(d)

	target := n.cfg.BusinessPhone
	if target == "" {
		target = d.Phone
	}
	res := Result{Success: true, Message: MsgLinkReady, URL: DeepLink(n.cfg.DeepLinkBase, target, text)}

	if n.sender == nil {
		metrics.Notifications.WithLabelValues("link").Inc()
		return res
	}

	if err := n.sender.Send(ctx, d.Phone, text); err != nil {
		log.WithFields(log.Fields{"items": len(d.Items), "total": d.Total}).WithError(err).Warn("whatsapp notification failed")
		metrics.Notifications.WithLabelValues("failed").Inc()
		res.Success = false
		res.Message = MsgSendFailed
		return res
	}

	metrics.Notifications.WithLabelValues("sent").Inc()
	res.Message = MsgAPISent
	return res
}
