package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

// Users covers signup, login, profile edits and the teacher verification
// workflow (none -> pending on document submission, pending -> verified on
// admin approval).
type Users struct {
	store        store.Store
	verification *Verification
	mailer       Mailer
}

func NewUsers(st store.Store, verification *Verification, mailer Mailer) *Users {
	return &Users{store: st, verification: verification, mailer: mailer}
}

type SignupInput struct {
	Email            string
	Password         string
	Name             string
	UserType         string
	VerificationCode string
}

func (u *Users) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)
	userType := models.UserType(in.UserType)
	if !userType.Valid() {
		return nil, failWith(KindInvalidInput, "invalid user type")
	}

	if _, err := u.store.GetUserByEmail(ctx, email); err == nil {
		return nil, failWith(KindAlreadyRegistered, "this email is already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, failWith(KindInternal, "failed to look up account")
	}

	if err := u.verification.ConsumeCode(ctx, email, in.VerificationCode); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, failWith(KindInternal, "failed to hash password")
	}

	user := &models.User{
		Email:              email,
		PasswordHash:       string(hash),
		Name:               in.Name,
		UserType:           userType,
		IsTeacher:          false,
		VerificationStatus: models.VerificationNone,
	}
	if err := u.store.CreateUser(ctx, user); err != nil {
		return nil, failWith(KindInternal, "failed to create account")
	}
	return user, nil
}

func (u *Users) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := u.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failWith(KindUnauthorized, "invalid email or password")
		}
		return nil, failWith(KindInternal, "failed to look up account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, failWith(KindUnauthorized, "invalid email or password")
	}
	return user, nil
}

func (u *Users) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := u.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failWith(KindNotFound, "user not found")
		}
		return nil, failWith(KindInternal, "failed to fetch user")
	}
	return user, nil
}

func (u *Users) List(ctx context.Context, acting Actor, f store.UserFilter) ([]models.User, error) {
	if !acting.IsAdmin() {
		return nil, failWith(KindForbidden, "admin access required")
	}
	users, err := u.store.ListUsers(ctx, f)
	if err != nil {
		return nil, failWith(KindInternal, "failed to fetch users")
	}
	return users, nil
}

type ProfileUpdateInput struct {
	Name                *string
	ProfileImage        *string
	CertificationDocURL *string
	IDDocURL            *string
}

// UpdateProfile edits a user's own profile (or any profile, for admins).
// Submitting verification documents moves an unverified teacher applicant
// to pending review. IsTeacher and verified status are out of reach here;
// only Approve grants them.
func (u *Users) UpdateProfile(ctx context.Context, acting Actor, id string, in ProfileUpdateInput) (*models.User, error) {
	if acting.ID != id && !acting.IsAdmin() {
		return nil, failWith(KindForbidden, "you can only edit your own profile")
	}

	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}
	submittedDocs := false
	if in.CertificationDocURL != nil {
		user.CertificationDocURL = *in.CertificationDocURL
		submittedDocs = true
	}
	if in.IDDocURL != nil {
		user.IDDocURL = *in.IDDocURL
		submittedDocs = true
	}
	if submittedDocs && user.VerificationStatus == models.VerificationNone {
		user.VerificationStatus = models.VerificationPending
	}

	if err := u.store.UpdateUser(ctx, user); err != nil {
		return nil, failWith(KindInternal, "failed to update user")
	}
	return user, nil
}

// Approve is the admin-only pending -> verified transition; it grants
// IsTeacher in the same update. The notification email is best-effort:
// a send failure is logged and never fails the approval. There is no
// reverse transition.
func (u *Users) Approve(ctx context.Context, acting Actor, id string) (*models.User, error) {
	if !acting.IsAdmin() {
		return nil, failWith(KindForbidden, "admin access required")
	}

	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.VerificationStatus == models.VerificationVerified {
		return user, nil
	}
	if user.VerificationStatus != models.VerificationPending {
		return nil, failWith(KindInvalidInput, "user has not submitted verification documents")
	}

	user.VerificationStatus = models.VerificationVerified
	user.IsTeacher = true
	if err := u.store.UpdateUser(ctx, user); err != nil {
		return nil, failWith(KindInternal, "failed to update user")
	}

	if err := u.mailer.Send(user.Email, "[Malmoi] Tutor verification approved", approvalEmailBody(user.Name)); err != nil {
		log.Printf("failed to send approval notification to %s: %v", user.Email, err)
	}
	return user, nil
}

func approvalEmailBody(name string) string {
	return fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your tutor verification has been approved. You can now publish
		classes and accept bookings on Malmoi.</p>
	`, name)
}
