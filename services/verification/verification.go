// Package verification proves phone ownership with a short-lived SMS code.
package verification

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"slate/database/kv"
	"slate/services/notification"
	"slate/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	CodeLength = 6
	CodeTTL    = 10 * time.Minute

	// records outlive their expiry briefly so a late check reports
	// "expired" rather than "not found"
	expiryGrace = time.Minute
)

type VerificationService interface {
	SendCode(ctx context.Context, phone string) error
	CheckCode(ctx context.Context, phone, code string) (string, error)
}

type codeRecord struct {
	Hash      string    `json:"hash"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type DefaultVerificationService struct {
	Store  kv.Store
	Notify notification.NotificationService
	Logger *zap.Logger
	Now    func() time.Time

	// Generate is swapped in tests.
	Generate func(length int) (string, error)
}

func NewVerificationService(store kv.Store, notify notification.NotificationService, logger *zap.Logger) *DefaultVerificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultVerificationService{
		Store:    store,
		Notify:   notify,
		Logger:   logger,
		Now:      time.Now,
		Generate: utils.GenerateNumericCode,
	}
}

func codeKey(phone string) string { return "verify:" + phone }

// NormalizePhone converts user input to E.164. US numbers may omit the
// country code; anything else must start with '+'.
func NormalizePhone(phone string) (string, bool) {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 10:
		return "+1" + digits, true
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, true
	case strings.HasPrefix(strings.TrimSpace(phone), "+") && len(digits) >= 10:
		return "+" + digits, true
	}
	return "", false
}

// SendCode issues a fresh code for phone, replacing any outstanding one.
func (s *DefaultVerificationService) SendCode(ctx context.Context, phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrPhoneRequired
	}
	normalized, ok := NormalizePhone(phone)
	if !ok {
		return ErrInvalidPhone
	}

	code, err := s.Generate(CodeLength)
	if err != nil {
		return fmt.Errorf("SendCode: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("SendCode: hash failed: %w", err)
	}
	rec := codeRecord{Hash: string(hash), ExpiresAt: s.Now().Add(CodeTTL)}
	if err := s.Store.Set(ctx, codeKey(normalized), rec, CodeTTL+expiryGrace); err != nil {
		return fmt.Errorf("SendCode: store failed: %w", err)
	}

	if err := s.Notify.SendSMS(ctx, normalized, "Your Slate verification code is: "+code); err != nil {
		s.Logger.Error("Failed to send verification SMS", zap.Error(err))
		return fmt.Errorf("SendCode: failed to send SMS: %w", err)
	}
	return nil
}

// CheckCode consumes a valid code and returns the normalised phone.
func (s *DefaultVerificationService) CheckCode(ctx context.Context, phone, code string) (string, error) {
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(code) == "" {
		return "", ErrCodeRequired
	}
	normalized, ok := NormalizePhone(phone)
	if !ok {
		return "", ErrInvalidPhone
	}

	var rec codeRecord
	found, err := s.Store.Get(ctx, codeKey(normalized), &rec)
	if err != nil {
		return "", fmt.Errorf("CheckCode: %w", err)
	}
	if !found {
		return "", ErrCodeNotFound
	}
	if s.Now().After(rec.ExpiresAt) {
		_ = s.Store.Delete(ctx, codeKey(normalized))
		return "", ErrCodeExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(strings.TrimSpace(code))) != nil {
		return "", ErrInvalidCode
	}

	if err := s.Store.Delete(ctx, codeKey(normalized)); err != nil {
		s.Logger.Warn("Failed to delete verification code", zap.Error(err))
	}
	return normalized, nil
}
