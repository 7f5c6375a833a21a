package otp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// MockSender records the last code instead of sending it.
type MockSender struct {
	calls int
	phone string
	code  string
	fail  error
}

func (m *MockSender) Send(ctx context.Context, phone, code string) (string, error) {
	m.calls++
	if m.fail != nil {
		return "", m.fail
	}
	m.phone, m.code = phone, code
	return "req-1", nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(sender Sender, cfg Config) (*Service, *clock) {
	c := &clock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	svc := NewService(NewMemoryStore(), sender, cfg)
	svc.now = c.now
	return svc, c
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"9876543210":       "9876543210",
		"+91 98765 43210":  "9876543210",
		"919876543210":     "9876543210",
		"+91-98765-43210 ": "9876543210",
	}
	for in, want := range cases {
		got, err := NormalizePhone(in)
		if err != nil || got != want {
			t.Errorf("%q: got %q, %v", in, got, err)
		}
	}

	for _, bad := range []string{"98765", "", "12345678901", "98765abcde"} {
		if _, err := NormalizePhone(bad); !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("%q: expected ErrInvalidPhone, got %v", bad, err)
		}
	}
}

// TestSend_ShortPhoneNeverReachesGateway checks a 5 digit phone is refused locally.
func TestSend_ShortPhoneNeverReachesGateway(t *testing.T) {
	sender := &MockSender{}
	svc, _ := newTestService(sender, DefaultConfig())

	res, err := svc.Send(context.Background(), "98765")
	if !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
	if res.Success || res.Message != MsgBadPhone {
		t.Errorf("unexpected result %+v", res)
	}
	if sender.calls != 0 {
		t.Errorf("gateway was called %d times", sender.calls)
	}
}

func TestSendAndVerify(t *testing.T) {
	sender := &MockSender{}
	svc, _ := newTestService(sender, DefaultConfig())
	ctx := context.Background()

	res, err := svc.Send(ctx, "+919876543210")
	if err != nil || !res.Success || res.Message != MsgSent {
		t.Fatalf("unexpected send result %+v (%v)", res, err)
	}
	if len(sender.code) != 6 || sender.phone != "9876543210" {
		t.Fatalf("unexpected delivery %q to %q", sender.code, sender.phone)
	}
	if res.DynamicOTP != "" {
		t.Errorf("code must not be returned outside test mode")
	}

	wrong := "000000"
	if sender.code == wrong {
		wrong = "111111"
	}
	if res, err := svc.Verify(ctx, "9876543210", wrong); !errors.Is(err, ErrMismatch) || res.Message != MsgInvalid {
		t.Errorf("expected mismatch, got %+v (%v)", res, err)
	}

	res, err = svc.Verify(ctx, "9876543210", sender.code)
	if err != nil || !res.Success || res.Message != MsgVerified {
		t.Fatalf("unexpected verify result %+v (%v)", res, err)
	}

	// a verified code is gone
	if res, err := svc.Verify(ctx, "9876543210", sender.code); !errors.Is(err, ErrCodeNotFound) || res.Message != MsgNotFound {
		t.Errorf("expected not found after use, got %+v (%v)", res, err)
	}
}

func TestVerify_Expired(t *testing.T) {
	sender := &MockSender{}
	svc, c := newTestService(sender, DefaultConfig())
	ctx := context.Background()

	_, _ = svc.Send(ctx, "9876543210")
	c.t = c.t.Add(5*time.Minute + time.Second)

	res, err := svc.Verify(ctx, "9876543210", sender.code)
	if !errors.Is(err, ErrExpired) || res.Message != MsgExpired {
		t.Errorf("expected expiry, got %+v (%v)", res, err)
	}
}

func TestVerify_TooManyAttempts(t *testing.T) {
	sender := &MockSender{}
	cfg := DefaultConfig()
	cfg.MaxAttempts = 2
	svc, _ := newTestService(sender, cfg)
	ctx := context.Background()

	_, _ = svc.Send(ctx, "9876543210")
	wrong := "000000"
	if sender.code == wrong {
		wrong = "111111"
	}

	_, _ = svc.Verify(ctx, "9876543210", wrong)
	if _, err := svc.Verify(ctx, "9876543210", wrong); !errors.Is(err, ErrTooMany) {
		t.Fatalf("expected ErrTooMany, got %v", err)
	}
	if _, err := svc.Verify(ctx, "9876543210", sender.code); !errors.Is(err, ErrCodeNotFound) {
		t.Errorf("locked code must be discarded, got %v", err)
	}
}

func TestVerify_RejectsMalformedCode(t *testing.T) {
	svc, _ := newTestService(&MockSender{}, DefaultConfig())

	if _, err := svc.Verify(context.Background(), "9876543210", "12345"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected ErrInvalidCode, got %v", err)
	}
}

func TestResend_Cooldown(t *testing.T) {
	sender := &MockSender{}
	svc, c := newTestService(sender, DefaultConfig())
	ctx := context.Background()

	_, _ = svc.Send(ctx, "9876543210")
	first := sender.code

	c.t = c.t.Add(10 * time.Second)
	_, err := svc.Resend(ctx, "9876543210")
	var cooldown *CooldownError
	if !errors.As(err, &cooldown) || cooldown.Seconds() != 20 {
		t.Fatalf("expected a 20s cooldown, got %v", err)
	}

	c.t = c.t.Add(20 * time.Second)
	res, err := svc.Resend(ctx, "9876543210")
	if err != nil || res.Message != MsgResent {
		t.Fatalf("unexpected resend %+v (%v)", res, err)
	}
	if sender.calls != 2 {
		t.Errorf("expected two deliveries, got %d", sender.calls)
	}

	if first != sender.code {
		if _, err := svc.Verify(ctx, "9876543210", first); err == nil {
			t.Errorf("replaced code must stop working")
		}
	}
}

func TestSend_TestModeReturnsCode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TestMode = true
	svc, _ := newTestService(&MockSender{}, cfg)

	res, err := svc.Send(context.Background(), "9876543210")
	if err != nil || !res.TestMode || len(res.DynamicOTP) != 6 {
		t.Fatalf("unexpected test mode result %+v (%v)", res, err)
	}
	if _, err := svc.Verify(context.Background(), "9876543210", res.DynamicOTP); err != nil {
		t.Errorf("dynamic code should verify, got %v", err)
	}
}

func TestSend_DeliveryFailureDropsCode(t *testing.T) {
	sender := &MockSender{fail: errors.New("gateway down")}
	svc, _ := newTestService(sender, DefaultConfig())
	ctx := context.Background()

	res, err := svc.Send(ctx, "9876543210")
	if !errors.Is(err, ErrSendFailed) || res.Success {
		t.Fatalf("expected ErrSendFailed, got %+v (%v)", res, err)
	}

	// no cooldown is left behind by a failed delivery
	sender.fail = nil
	if _, err := svc.Send(ctx, "9876543210"); err != nil {
		t.Errorf("expected an immediate retry to work, got %v", err)
	}
}

func TestGatewaySender(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"mobile":      r.URL.Query().Get("mobile"),
			"otp":         r.URL.Query().Get("otp"),
			"authkey":     r.URL.Query().Get("authkey"),
			"template_id": r.URL.Query().Get("template_id"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"success","request_id":"abc123"}`))
	}))
	defer srv.Close()

	g := NewGatewaySender(GatewayConfig{URL: srv.URL, AuthKey: "key", TemplateID: "tpl"})
	id, err := g.Send(context.Background(), "9876543210", "482913")
	if err != nil || id != "abc123" {
		t.Fatalf("unexpected result %q (%v)", id, err)
	}
	if query["mobile"] != "919876543210" || query["otp"] != "482913" || query["authkey"] != "key" || query["template_id"] != "tpl" {
		t.Errorf("unexpected query %+v", query)
	}
}

func TestGatewaySender_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"error","message":"invalid authkey"}`))
	}))
	defer srv.Close()

	g := NewGatewaySender(GatewayConfig{URL: srv.URL})
	if _, err := g.Send(context.Background(), "9876543210", "482913"); err == nil {
		t.Errorf("expected a gateway error")
	}
}
