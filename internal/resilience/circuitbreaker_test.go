package resilience

import (
	"errors"
	"testing"
)

func TestCircuitBreaker_TripsAfterRepeatedFailures(t *testing.T) {
	cb := NewCircuitBreaker("test-gateway", "test")
	boom := errors.New("gateway down")

	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(func() (interface{}, error) { return nil, boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected the gateway error, got %v", i, err)
		}
	}

	if cb.GetState() != "open" {
		t.Fatalf("expected open breaker, got %s", cb.GetState())
	}

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	if called {
		t.Errorf("open breaker must not call through")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCircuitBreaker_PassesResults(t *testing.T) {
	cb := NewCircuitBreaker("ok-gateway", "test")

	out, err := cb.Execute(func() (interface{}, error) { return "sent", nil })
	if err != nil || out.(string) != "sent" {
		t.Errorf("unexpected result %v / %v", out, err)
	}
	if cb.GetState() != "closed" {
		t.Errorf("expected closed breaker, got %s", cb.GetState())
	}
}
