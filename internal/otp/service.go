package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"biteaffair/internal/auth"
	"biteaffair/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// User-facing verification messages.
const (
	MsgSent        = "OTP sent successfully"
	MsgResent      = "OTP resent successfully"
	MsgSendFailed  = "Failed to send OTP. Please try again."
	MsgNotFound    = "OTP not found or expired. Please request a new one."
	MsgExpired     = "OTP has expired. Please request a new one."
	MsgInvalid     = "Invalid OTP. Please try again."
	MsgTooMany     = "Too many incorrect attempts. Please request a new OTP."
	MsgVerified    = "OTP verified successfully"
	MsgInvalidCode = "OTP must be 6 digits"
	MsgBadPhone    = "Please enter a valid 10-digit phone number"
)

var (
	ErrExpired     = errors.New("otp expired")
	ErrMismatch    = errors.New("otp mismatch")
	ErrTooMany     = errors.New("too many otp attempts")
	ErrSendFailed  = errors.New("otp delivery failed")
	ErrUnavailable = errors.New("otp store unavailable")
)

// CooldownError is returned while a fresh code may not be requested yet.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new OTP", e.Seconds())
}

// Seconds is the remaining wait rounded up.
func (e *CooldownError) Seconds() int {
	return int((e.Remaining + time.Second - 1) / time.Second)
}

type Config struct {
	Length      int           `yaml:"length"`
	TTL         time.Duration `yaml:"ttl"`
	Cooldown    time.Duration `yaml:"cooldown"`
	MaxAttempts int           `yaml:"max_attempts"`
	TestMode    bool          `yaml:"test_mode"`
}

func DefaultConfig() Config {
	return Config{
		Length:      6,
		TTL:         5 * time.Minute,
		Cooldown:    30 * time.Second,
		MaxAttempts: 5,
	}
}

// Result mirrors what the checkout page renders.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Phone      string `json:"phone,omitempty"`
	RequestID  string `json:"requestId,omitempty"`
	ExpiresIn  int    `json:"expiresIn,omitempty"`
	TestMode   bool   `json:"testMode,omitempty"`
	DynamicOTP string `json:"dynamicOTP,omitempty"`
}

type Service struct {
	store  Store
	sender Sender
	cfg    Config
	now    func() time.Time
}

func NewService(store Store, sender Sender, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.Length <= 0 {
		cfg.Length = def.Length
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.Cooldown < 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.TestMode {
		sender = LogSender{}
	}
	return &Service{store: store, sender: sender, cfg: cfg, now: time.Now}
}

// CodeLength is the number of digits in every issued code.
func (s *Service) CodeLength() int {
	return s.cfg.Length
}

// --------------------------------------------------
// Send / Resend
// --------------------------------------------------

// Send issues a fresh code. The phone is validated before anything leaves
// the process.
func (s *Service) Send(ctx context.Context, rawPhone string) (Result, error) {
	return s.issue(ctx, "send", rawPhone, MsgSent)
}

// Resend issues a replacement code once the cooldown has passed; the
// previous code stops working.
func (s *Service) Resend(ctx context.Context, rawPhone string) (Result, error) {
	return s.issue(ctx, "resend", rawPhone, MsgResent)
}

func (s *Service) issue(ctx context.Context, action, rawPhone, okMessage string) (Result, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		metrics.OTPRequests.WithLabelValues(action, "invalid").Inc()
		return Result{Success: false, Message: MsgBadPhone}, err
	}

	now := s.now()

	prev, err := s.store.Get(ctx, phone)
	switch {
	case err == nil:
		if wait := prev.SentAt.Add(s.cfg.Cooldown).Sub(now); wait > 0 {
			metrics.OTPRequests.WithLabelValues(action, "cooldown").Inc()
			cooldown := &CooldownError{Remaining: wait}
			return Result{Success: false, Message: cooldown.Error(), Phone: phone}, cooldown
		}
	case !errors.Is(err, ErrCodeNotFound):
		return Result{Success: false, Message: MsgSendFailed}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	code, err := generateCode(s.cfg.Length)
	if err != nil {
		return Result{Success: false, Message: MsgSendFailed}, err
	}

	hash, err := auth.HashCode(code)
	if err != nil {
		return Result{Success: false, Message: MsgSendFailed}, err
	}

	entry := Entry{Hash: hash, SentAt: now, ExpiresAt: now.Add(s.cfg.TTL)}
	if err := s.store.Save(ctx, phone, entry); err != nil {
		return Result{Success: false, Message: MsgSendFailed}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	requestID, err := s.sender.Send(ctx, phone, code)
	if err != nil {
		_ = s.store.Delete(ctx, phone)
		metrics.OTPRequests.WithLabelValues(action, "failed").Inc()
		log.WithFields(log.Fields{"phone": maskPhone(phone)}).WithError(err).Warn("otp delivery failed")
		return Result{Success: false, Message: MsgSendFailed, Phone: phone}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	metrics.OTPRequests.WithLabelValues(action, "sent").Inc()

	res := Result{
		Success:   true,
		Message:   okMessage,
		Phone:     phone,
		RequestID: requestID,
		ExpiresIn: int(s.cfg.TTL / time.Second),
	}
	if s.cfg.TestMode {
		res.TestMode = true
		res.DynamicOTP = code
	}
	return res, nil
}

// --------------------------------------------------
// Verify
// --------------------------------------------------

// Verify checks a code. A verified code is deleted, so it works once.
func (s *Service) Verify(ctx context.Context, rawPhone, code string) (Result, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return Result{Success: false, Message: MsgBadPhone}, err
	}
	if !ValidCode(code, s.cfg.Length) {
		return Result{Success: false, Message: MsgInvalidCode}, ErrInvalidCode
	}

	entry, err := s.store.Get(ctx, phone)
	if errors.Is(err, ErrCodeNotFound) {
		metrics.OTPRequests.WithLabelValues("verify", "not_found").Inc()
		return Result{Success: false, Message: MsgNotFound}, ErrCodeNotFound
	}
	if err != nil {
		return Result{Success: false, Message: MsgSendFailed}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if !s.now().Before(entry.ExpiresAt) {
		_ = s.store.Delete(ctx, phone)
		metrics.OTPRequests.WithLabelValues("verify", "expired").Inc()
		return Result{Success: false, Message: MsgExpired}, ErrExpired
	}

	if err := auth.CompareCode(entry.Hash, code); err != nil {
		entry.Attempts++
		if entry.Attempts >= s.cfg.MaxAttempts {
			_ = s.store.Delete(ctx, phone)
			metrics.OTPRequests.WithLabelValues("verify", "locked").Inc()
			return Result{Success: false, Message: MsgTooMany}, ErrTooMany
		}
		_ = s.store.Save(ctx, phone, entry)
		metrics.OTPRequests.WithLabelValues("verify", "mismatch").Inc()
		return Result{Success: false, Message: MsgInvalid}, ErrMismatch
	}

	_ = s.store.Delete(ctx, phone)
	metrics.OTPRequests.WithLabelValues("verify", "verified").Inc()
	return Result{Success: true, Message: MsgVerified, Phone: phone}, nil
}

// generateCode returns length random digits, leading zeros kept.
func generateCode(length int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}
