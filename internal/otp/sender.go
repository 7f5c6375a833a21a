package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"biteaffair/internal/resilience"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// Sender delivers a code to a phone number and returns the gateway's
// request id.
type Sender interface {
	Send(ctx context.Context, phone, code string) (string, error)
}

// LogSender only logs the code. It backs test mode, where the code is also
// returned to the caller.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, phone, code string) (string, error) {
	log.WithFields(log.Fields{"phone": maskPhone(phone)}).Info("test mode otp issued")
	return "test", nil
}

// GatewayConfig holds the SMS gateway credentials.
type GatewayConfig struct {
	URL        string `yaml:"url"`
	AuthKey    string `yaml:"auth_key"`
	TemplateID string `yaml:"template_id"`
}

// GatewaySender posts codes to an MSG91-style OTP endpoint. Parameters go in
// the query string; the gateway answers {"type":"success","request_id":...}.
type GatewaySender struct {
	client  *resty.Client
	circuit *resilience.CircuitBreaker
	cfg     GatewayConfig
}

func NewGatewaySender(cfg GatewayConfig) *GatewaySender {
	return &GatewaySender{
		client: resty.New().
			SetTimeout(resilience.DefaultTimeout).
			SetRetryCount(0),
		circuit: resilience.NewCircuitBreaker("SMSGateway", "storefront"),
		cfg:     cfg,
	}
}

type gatewayResponse struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

func (g *GatewaySender) Send(ctx context.Context, phone, code string) (string, error) {
	out, err := g.circuit.Execute(func() (interface{}, error) {
		resp, httpErr := g.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetQueryParams(map[string]string{
				"template_id": g.cfg.TemplateID,
				"mobile":      "91" + phone,
				"authkey":     g.cfg.AuthKey,
				"otp":         code,
			}).
			Post(g.cfg.URL)

		if httpErr != nil {
			return nil, fmt.Errorf("HTTP error: %w", httpErr)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode(), resp.String())
		}

		var response gatewayResponse
		if err := json.Unmarshal(resp.Body(), &response); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		if response.Type != "success" {
			return nil, fmt.Errorf("sms gateway rejected the request: %s", response.Message)
		}
		return response.RequestID, nil
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
