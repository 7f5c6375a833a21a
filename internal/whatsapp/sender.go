package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"biteaffair/internal/resilience"

	"github.com/go-resty/resty/v2"
)

const DefaultAPIBase = "https://graph.facebook.com/v17.0"

// BusinessConfig holds the WhatsApp Business (Cloud) API credentials.
type BusinessConfig struct {
	APIBase       string `yaml:"api_base"`
	Token         string `yaml:"token"`
	PhoneNumberID string `yaml:"phone_number_id"`
}

// Enabled reports whether messages should be pushed through the API.
func (c BusinessConfig) Enabled() bool {
	return c.Token != "" && c.PhoneNumberID != ""
}

type textBody struct {
	Body string `json:"body"`
}

type messageRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type BusinessSender struct {
	client  *resty.Client
	circuit *resilience.CircuitBreaker
	cfg     BusinessConfig
}

func NewBusinessSender(cfg BusinessConfig) *BusinessSender {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	return &BusinessSender{
		client: resty.New().
			SetTimeout(resilience.DefaultTimeout).
			SetRetryCount(0),
		circuit: resilience.NewCircuitBreaker("WhatsAppBusinessAPI", "storefront"),
		cfg:     cfg,
	}
}

// Send posts a text message to the given phone.
func (s *BusinessSender) Send(ctx context.Context, phone, body string) error {
	endpoint := strings.TrimRight(s.cfg.APIBase, "/") + "/" + s.cfg.PhoneNumberID + "/messages"

	_, err := s.circuit.Execute(func() (interface{}, error) {
		resp, httpErr := s.client.R().
			SetContext(ctx).
			SetAuthToken(s.cfg.Token).
			SetHeader("Content-Type", "application/json").
			SetBody(messageRequest{
				MessagingProduct: "whatsapp",
				To:               FormatPhone(phone),
				Type:             "text",
				Text:             textBody{Body: body},
			}).
			Post(endpoint)

		if httpErr != nil {
			return nil, fmt.Errorf("HTTP error: %w", httpErr)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("whatsapp api returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil, nil
	})
	return err
}
