package storage

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"
)

func TestR2Config_Missing(t *testing.T) {
	missing := R2Config{Endpoint: "https://example.r2.cloudflarestorage.com", Bucket: "menus"}.Missing()
	sort.Strings(missing)

	if len(missing) != 2 || missing[0] != "r2.access_key" || missing[1] != "r2.secret_key" {
		t.Errorf("unexpected missing list %v", missing)
	}
}

// TestR2Client_RoundTrip runs against a real bucket when R2_ENDPOINT is set.
func TestR2Client_RoundTrip(t *testing.T) {
	cfg := R2Config{
		Endpoint:  os.Getenv("R2_ENDPOINT"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
		Bucket:    os.Getenv("R2_BUCKET_NAME"),
	}
	if len(cfg.Missing()) > 0 {
		t.Skip("R2 credentials not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewR2Client(ctx, cfg)
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}

	if _, err := client.Put(ctx, "tests/ping.yaml", []byte("ok: true\n"), "application/yaml"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	data, err := client.Get(ctx, "tests/ping.yaml")
	if err != nil || string(data) != "ok: true\n" {
		t.Errorf("unexpected object %q (%v)", data, err)
	}

	if _, err := client.Get(ctx, "tests/does-not-exist.yaml"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}
