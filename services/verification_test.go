package services

import (
	"context"
	"testing"
	"time"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

func newVerificationFixture(t *testing.T) (*Verification, *store.Memory, *fakeMailer, *time.Time) {
	t.Helper()
	st := store.NewMemory()
	mailer := &fakeMailer{}
	v := NewVerification(st, mailer)
	now := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }
	return v, st, mailer, &now
}

func TestIssueCodeCooldown(t *testing.T) {
	v, _, _, now := newVerificationFixture(t)
	ctx := context.Background()

	result, err := v.IssueCode(ctx, "new@example.com")
	if err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	if result.ExpiresIn != 600 || result.Cooldown != 60 {
		t.Fatalf("unexpected issue result: %+v", result)
	}

	// Immediate retry is rate limited with a positive remaining cooldown.
	_, err = v.IssueCode(ctx, "new@example.com")
	expectKind(t, err, KindRateLimited)
	svcErr := err.(*Error)
	if svcErr.RetryAfter <= 0 {
		t.Fatalf("expected positive retryAfter, got %d", svcErr.RetryAfter)
	}

	*now = now.Add(30 * time.Second)
	_, err = v.IssueCode(ctx, "new@example.com")
	expectKind(t, err, KindRateLimited)

	*now = now.Add(30 * time.Second)
	if _, err := v.IssueCode(ctx, "new@example.com"); err != nil {
		t.Fatalf("issue after full cooldown failed: %v", err)
	}
}

func TestIssueCodeNormalizesAndValidatesEmail(t *testing.T) {
	v, _, mailer, _ := newVerificationFixture(t)
	ctx := context.Background()

	if _, err := v.IssueCode(ctx, "  New@Example.COM "); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if mailer.sent[0].to != "new@example.com" {
		t.Fatalf("expected normalized recipient, got %s", mailer.sent[0].to)
	}

	_, err := v.IssueCode(ctx, "not-an-email")
	expectKind(t, err, KindInvalidInput)
}

func TestIssueCodeExistingAccount(t *testing.T) {
	v, st, _, _ := newVerificationFixture(t)
	seedUser(t, st, models.User{Email: "taken@example.com", UserType: models.TypeStudent})

	_, err := v.IssueCode(context.Background(), "Taken@example.com")
	expectKind(t, err, KindAlreadyRegistered)
}

func TestIssueCodeMailFailure(t *testing.T) {
	v, _, mailer, _ := newVerificationFixture(t)
	mailer.err = errSendFailed

	_, err := v.IssueCode(context.Background(), "new@example.com")
	expectKind(t, err, KindInternal)
}

func TestConsumeCodeOnce(t *testing.T) {
	v, _, mailer, _ := newVerificationFixture(t)
	ctx := context.Background()

	if _, err := v.IssueCode(ctx, "new@example.com"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := mailer.lastCode(t)

	if err := v.ConsumeCode(ctx, "new@example.com", code); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	// Second consumption always fails.
	err := v.ConsumeCode(ctx, "new@example.com", code)
	expectKind(t, err, KindAlreadyUsed)
}

func TestConsumeCodeMismatchLeavesCodeUsable(t *testing.T) {
	v, _, mailer, _ := newVerificationFixture(t)
	ctx := context.Background()

	if _, err := v.IssueCode(ctx, "new@example.com"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := mailer.lastCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	err := v.ConsumeCode(ctx, "new@example.com", wrong)
	expectKind(t, err, KindMismatch)

	if err := v.ConsumeCode(ctx, "new@example.com", code); err != nil {
		t.Fatalf("correct code must still work after a mismatch: %v", err)
	}
}

func TestConsumeCodeExpiryBoundary(t *testing.T) {
	v, _, mailer, now := newVerificationFixture(t)
	ctx := context.Background()

	if _, err := v.IssueCode(ctx, "new@example.com"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := mailer.lastCode(t)

	// Valid at exactly expiresAt.
	*now = now.Add(CodeExpiry)
	if err := v.ConsumeCode(ctx, "new@example.com", code); err != nil {
		t.Fatalf("code must be valid at exactly its expiry instant: %v", err)
	}
}

func TestConsumeCodeExpired(t *testing.T) {
	v, _, mailer, now := newVerificationFixture(t)
	ctx := context.Background()

	if _, err := v.IssueCode(ctx, "new@example.com"); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	code := mailer.lastCode(t)

	*now = now.Add(CodeExpiry + time.Second)
	err := v.ConsumeCode(ctx, "new@example.com", code)
	expectKind(t, err, KindExpired)
}

func TestConsumeCodeWithoutIssue(t *testing.T) {
	v, _, _, _ := newVerificationFixture(t)
	err := v.ConsumeCode(context.Background(), "new@example.com", "123456")
	expectKind(t, err, KindNotFound)
}

func TestBypassCodeOnlyWhenConfigured(t *testing.T) {
	v, _, _, _ := newVerificationFixture(t)
	ctx := context.Background()

	// Unset bypass: the code goes through the normal path and fails.
	err := v.ConsumeCode(ctx, "new@example.com", "1234")
	expectKind(t, err, KindNotFound)

	v.BypassCode = "1234"
	if err := v.ConsumeCode(ctx, "new@example.com", "1234"); err != nil {
		t.Fatalf("configured bypass code must be accepted: %v", err)
	}
}
