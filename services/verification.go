package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
	"github.com/LuffyPiratesYeah/malmoi-server/utils"
)

const (
	// CodeExpiry is how long an issued verification code stays valid.
	CodeExpiry = 10 * time.Minute
	// ResendCooldown is the minimum gap between two code sends for one email.
	ResendCooldown = 60 * time.Second
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Mailer sends outbound email. The gomail-backed implementation lives in
// utils; tests swap in a recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

// NormalizeEmail lowercases and trims an address; emails are
// case-insensitive everywhere in this system.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Verification issues and consumes signup email verification codes.
type Verification struct {
	store  store.Store
	mailer Mailer
	// BypassCode, when non-empty, is accepted in place of any issued code.
	// Meant for test environments only; leave unset in production.
	BypassCode string
	now        func() time.Time
}

func NewVerification(st store.Store, mailer Mailer) *Verification {
	return &Verification{store: st, mailer: mailer, now: time.Now}
}

type IssueResult struct {
	ExpiresIn int `json:"expiresIn"`
	Cooldown  int `json:"cooldown"`
}

// IssueCode generates a 6-digit code for the address, stores its bcrypt
// hash with a 10-minute expiry and emails the plain code. Issuing is
// refused for registered accounts and rate limited to one unconsumed code
// per 60 seconds.
func (v *Verification) IssueCode(ctx context.Context, email string) (*IssueResult, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, failWith(KindInvalidInput, "invalid email address")
	}

	if _, err := v.store.GetUserByEmail(ctx, email); err == nil {
		return nil, failWith(KindAlreadyRegistered, "this email is already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, failWith(KindInternal, "failed to look up account")
	}

	now := v.now()
	latest, err := v.store.LatestCode(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, failWith(KindInternal, "failed to look up verification codes")
	}
	if latest != nil && !latest.Consumed {
		elapsed := now.Sub(latest.CreatedAt)
		if elapsed < ResendCooldown {
			remaining := int((ResendCooldown - elapsed).Seconds())
			if remaining < 1 {
				remaining = 1
			}
			return nil, &Error{
				Kind:       KindRateLimited,
				Message:    fmt.Sprintf("please wait %d seconds before requesting another code", remaining),
				RetryAfter: remaining,
			}
		}
	}

	code := utils.GenerateCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, failWith(KindInternal, "failed to generate verification code")
	}

	record := &models.EmailVerificationCode{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(CodeExpiry),
		Consumed:  false,
		CreatedAt: now,
	}
	if err := v.store.CreateCode(ctx, record); err != nil {
		return nil, failWith(KindInternal, "failed to store verification code")
	}

	if err := v.mailer.Send(email, "[Malmoi] Email verification code", verificationEmailBody(code)); err != nil {
		return nil, failWith(KindInternal, "failed to send verification email")
	}

	return &IssueResult{
		ExpiresIn: int(CodeExpiry.Seconds()),
		Cooldown:  int(ResendCooldown.Seconds()),
	}, nil
}

// ConsumeCode validates the supplied code against the most recent code row
// for the address and marks it consumed exactly once. A code is valid up to
// and including its expiry instant.
func (v *Verification) ConsumeCode(ctx context.Context, email, supplied string) error {
	supplied = strings.TrimSpace(supplied)
	if v.BypassCode != "" && supplied == v.BypassCode {
		return nil
	}

	latest, err := v.store.LatestCode(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return failWith(KindNotFound, "email verification is required first")
		}
		return failWith(KindInternal, "failed to look up verification code")
	}
	if latest.Consumed {
		return failWith(KindAlreadyUsed, "this verification code was already used")
	}
	if v.now().After(latest.ExpiresAt) {
		return failWith(KindExpired, "this verification code has expired")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(latest.CodeHash), []byte(supplied)); err != nil {
		return failWith(KindMismatch, "incorrect verification code")
	}

	latest.Consumed = true
	if err := v.store.UpdateCode(ctx, latest); err != nil {
		return failWith(KindInternal, "failed to consume verification code")
	}
	return nil
}

func verificationEmailBody(code string) string {
	return fmt.Sprintf(`
		<p>Hello!</p>
		<p>Thanks for signing up for Malmoi. Enter the code below to finish
		creating your account.</p>
		<p style="font-size:32px;font-weight:800;letter-spacing:8px;">%s</p>
		<p>The code expires in %d minutes. If you did not request it you can
		ignore this email.</p>
	`, code, int(CodeExpiry.Minutes()))
}
