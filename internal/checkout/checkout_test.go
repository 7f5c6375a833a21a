package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"biteaffair/internal/menu"
	"biteaffair/internal/otp"
	"biteaffair/internal/pricing"
	"biteaffair/internal/reconcile"
	"biteaffair/internal/storefront"
	"biteaffair/internal/validation"
	"biteaffair/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

const testSession = "checkout-session"

func setupCheckoutTestRouter(t *testing.T) (*gin.Engine, *storefront.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storefront.NewStore(
		storefront.NewInMemoryRepository(),
		menu.NewService(menu.NewEmbeddedRepository()),
		reconcile.DefaultEditWindow,
	)

	otpCfg := otp.DefaultConfig()
	otpCfg.TestMode = true
	otpService := otp.NewService(otp.NewMemoryStore(), nil, otpCfg)

	svc := NewService(store, otpService, whatsapp.NewNotifier(whatsapp.Config{}), pricing.DefaultCharges())
	h := NewHandler(svc, validation.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sessionID", c.GetHeader("X-Test-Session"))
		c.Next()
	})
	r.GET("/api/checkout/totals", h.Totals())
	r.POST("/api/checkout/otp/send", h.SendOTP())
	r.POST("/api/checkout/otp/resend", h.ResendOTP())
	r.POST("/api/checkout/otp/verify", h.VerifyOTP())
	r.POST("/api/checkout/confirm", h.Confirm())
	return r, store
}

func post(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Session", testSession)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var customer = map[string]string{
	"name":    "Asha Verma",
	"phone":   "+919876543210",
	"address": "12 MG Road, Gurgaon",
	"pincode": "122001",
}

// TestCheckout_Flow covers the OTP gate through to the WhatsApp handoff.
func TestCheckout_Flow(t *testing.T) {
	r, store := setupCheckoutTestRouter(t)
	ctx := context.Background()

	if w := post(r, "/api/checkout/confirm", customer); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty cart, got %d: %s", w.Code, w.Body.String())
	}

	if _, err := store.AddCatalogItem(ctx, testSession, storefront.AddItem{ItemID: "cus_paneer_tikka", Mode: menu.ModeCustomized}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w := post(r, "/api/checkout/confirm", customer); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before verification, got %d: %s", w.Code, w.Body.String())
	}

	w := post(r, "/api/checkout/otp/send", gin.H{"phone": "98765"})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), otp.MsgBadPhone) {
		t.Fatalf("expected the short phone to be rejected, got %d: %s", w.Code, w.Body.String())
	}

	w = post(r, "/api/checkout/otp/send", gin.H{"phone": "9876543210"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var sent otp.Result
	_ = json.Unmarshal(w.Body.Bytes(), &sent)
	if !sent.TestMode || len(sent.DynamicOTP) != 6 {
		t.Fatalf("expected a test mode code, got %+v", sent)
	}

	w = post(r, "/api/checkout/otp/resend", gin.H{"phone": "9876543210"})
	if w.Code != http.StatusTooManyRequests || !strings.Contains(w.Body.String(), "retry_after") {
		t.Errorf("expected the cooldown, got %d: %s", w.Code, w.Body.String())
	}

	wrong := "000000"
	if sent.DynamicOTP == wrong {
		wrong = "111111"
	}
	w = post(r, "/api/checkout/otp/verify", gin.H{"phone": "9876543210", "otp": wrong})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), otp.MsgInvalid) {
		t.Errorf("expected an invalid code response, got %d: %s", w.Code, w.Body.String())
	}

	w = post(r, "/api/checkout/otp/verify", gin.H{"phone": "9876543210", "otp": sent.DynamicOTP})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	bad := map[string]string{}
	for k, v := range customer {
		bad[k] = v
	}
	bad["pincode"] = "12345"
	if w := post(r, "/api/checkout/confirm", bad); w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "validation_failed") {
		t.Errorf("expected a pincode validation failure, got %d: %s", w.Code, w.Body.String())
	}

	w = post(r, "/api/checkout/confirm", customer)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var conf Confirmation
	if err := json.Unmarshal(w.Body.Bytes(), &conf); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if conf.OrderID == "" || conf.Status != storefront.OrderStatusConfirmed {
		t.Errorf("unexpected confirmation %+v", conf)
	}
	if conf.Totals.Subtotal != 80 || conf.Totals.Tax != 4 || conf.Totals.Total != 164 {
		t.Errorf("unexpected totals %+v", conf.Totals)
	}
	if !conf.WhatsApp.Success || !strings.HasPrefix(conf.WhatsApp.URL, whatsapp.DefaultDeepLinkBase) {
		t.Errorf("unexpected handoff %+v", conf.WhatsApp)
	}

	order, err := store.Order(ctx, conf.OrderID)
	if err != nil || order.Customer.Phone != "9876543210" {
		t.Errorf("stored order mismatch: %+v (%v)", order, err)
	}

	view, _ := store.Cart(ctx, testSession)
	if view.Total != 0 {
		t.Errorf("cart should be cleared, got %+v", view)
	}

	// verification is single use
	if _, err := store.AddCatalogItem(ctx, testSession, storefront.AddItem{ItemID: "cus_paneer_tikka", Mode: menu.ModeCustomized}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := post(r, "/api/checkout/confirm", customer); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 after the order, got %d", w.Code)
	}
}

func TestCheckout_Totals(t *testing.T) {
	r, _ := setupCheckoutTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/totals", nil)
	req.Header.Set("X-Test-Session", testSession)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var totals pricing.Totals
	_ = json.Unmarshal(w.Body.Bytes(), &totals)
	if totals != (pricing.Totals{}) {
		t.Errorf("empty cart should carry no surcharges, got %+v", totals)
	}
}
