package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

var errSendFailed = errors.New("smtp unavailable")

type sentMail struct {
	to      string
	subject string
	body    string
}

// fakeMailer records outbound mail and can be told to fail.
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var codePattern = regexp.MustCompile(`\d{6}`)

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.sent) == 0 {
		t.Fatal("no mail was sent")
	}
	code := codePattern.FindString(m.sent[len(m.sent)-1].body)
	if code == "" {
		t.Fatal("no code found in mail body")
	}
	return code
}

func seedUser(t *testing.T, st *store.Memory, u models.User) *models.User {
	t.Helper()
	if err := st.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

func seedVerifiedTutor(t *testing.T, st *store.Memory, name string) *models.User {
	t.Helper()
	return seedUser(t, st, models.User{
		Email:              name + "@example.com",
		Name:               name,
		UserType:           models.TypeTeacher,
		IsTeacher:          true,
		VerificationStatus: models.VerificationVerified,
	})
}

func seedClass(t *testing.T, st *store.Memory, tutor *models.User) *models.Class {
	t.Helper()
	class := models.Class{
		Title:       "Beginner Korean",
		Description: "Conversational Korean for beginners",
		Level:       "beginner",
		Category:    "conversation",
		Type:        "online",
		Image:       "https://example.com/class.png",
		TutorID:     tutor.ID,
		TutorName:   tutor.Name,
	}
	if err := st.CreateClass(context.Background(), &class); err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return &class
}

func expectKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !IsKind(err, kind) {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}
