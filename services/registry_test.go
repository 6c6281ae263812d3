package services

import (
	"context"
	"testing"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

func TestCreateClassRequiresVerifiedTutor(t *testing.T) {
	st := store.NewMemory()
	registry := NewRegistry(st)
	ctx := context.Background()

	input := ClassInput{
		Title: "Korean 101", Description: "Basics", Level: "beginner",
		Category: "grammar", Type: "online", Image: "https://example.com/img.png",
	}

	student := seedUser(t, st, models.User{Email: "s@example.com", UserType: models.TypeStudent})
	_, err := registry.Create(ctx, student.ID, input)
	expectKind(t, err, KindForbidden)

	applicant := seedUser(t, st, models.User{
		Email: "t@example.com", UserType: models.TypeTeacher,
		VerificationStatus: models.VerificationPending,
	})
	_, err = registry.Create(ctx, applicant.ID, input)
	expectKind(t, err, KindForbidden)

	_, err = registry.Create(ctx, "missing", input)
	expectKind(t, err, KindNotFound)

	tutor := seedVerifiedTutor(t, st, "sejin")
	class, err := registry.Create(ctx, tutor.ID, input)
	if err != nil {
		t.Fatalf("verified tutor must be able to create a class: %v", err)
	}
	if class.TutorName != "sejin" {
		t.Fatalf("expected tutorName snapshot, got %q", class.TutorName)
	}
}

func TestTutorNameIsASnapshot(t *testing.T) {
	st := store.NewMemory()
	registry := NewRegistry(st)
	ctx := context.Background()

	tutor := seedVerifiedTutor(t, st, "before")
	class, err := registry.Create(ctx, tutor.ID, ClassInput{
		Title: "Korean 101", Description: "Basics", Level: "beginner",
		Category: "grammar", Type: "online", Image: "https://example.com/img.png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tutor.Name = "after"
	if err := st.UpdateUser(ctx, tutor); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	got, err := registry.Get(ctx, class.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.TutorName != "before" {
		t.Fatalf("tutorName must not track later renames, got %q", got.TutorName)
	}
}

func TestClassMutationAuthorization(t *testing.T) {
	ctx := context.Background()
	title := "Renamed"

	cases := []struct {
		name      string
		actor     func(st *store.Memory, owner *models.User) string
		wantErr   bool
	}{
		{
			name: "owner verified teacher",
			actor: func(st *store.Memory, owner *models.User) string {
				return owner.ID
			},
		},
		{
			name: "different verified teacher",
			actor: func(st *store.Memory, owner *models.User) string {
				other := models.User{
					Email: "other@example.com", UserType: models.TypeTeacher,
					IsTeacher: true, VerificationStatus: models.VerificationVerified,
				}
				if err := st.CreateUser(ctx, &other); err != nil {
					t.Fatal(err)
				}
				return other.ID
			},
			wantErr: true,
		},
		{
			name: "owner with teacher flag revoked",
			actor: func(st *store.Memory, owner *models.User) string {
				owner.IsTeacher = false
				if err := st.UpdateUser(ctx, owner); err != nil {
					t.Fatal(err)
				}
				return owner.ID
			},
			wantErr: true,
		},
		{
			name: "owner no longer verified",
			actor: func(st *store.Memory, owner *models.User) string {
				owner.VerificationStatus = models.VerificationPending
				if err := st.UpdateUser(ctx, owner); err != nil {
					t.Fatal(err)
				}
				return owner.ID
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemory()
			registry := NewRegistry(st)
			owner := seedVerifiedTutor(t, st, "owner")
			class := seedClass(t, st, owner)

			actorID := tc.actor(st, owner)
			_, err := registry.Update(ctx, actorID, class.ID, ClassUpdateInput{Title: &title})
			if tc.wantErr {
				expectKind(t, err, KindForbidden)
				if delErr := registry.Delete(ctx, actorID, class.ID); !IsKind(delErr, KindForbidden) {
					t.Fatalf("expected FORBIDDEN on delete, got %v", delErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("update failed: %v", err)
			}
			got, err := registry.Get(ctx, class.ID)
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if got.Title != title {
				t.Fatalf("expected updated title, got %q", got.Title)
			}
			if err := registry.Delete(ctx, actorID, class.ID); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
		})
	}
}

func TestListClassesNewestFirst(t *testing.T) {
	st := store.NewMemory()
	registry := NewRegistry(st)
	ctx := context.Background()

	tutor := seedVerifiedTutor(t, st, "tutor")
	input := ClassInput{
		Title: "first", Description: "d", Level: "l",
		Category: "c", Type: "t", Image: "https://example.com/1.png",
	}
	if _, err := registry.Create(ctx, tutor.ID, input); err != nil {
		t.Fatal(err)
	}
	input.Title = "second"
	if _, err := registry.Create(ctx, tutor.ID, input); err != nil {
		t.Fatal(err)
	}

	classes, err := registry.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(classes) != 2 || classes[0].Title != "second" {
		t.Fatalf("expected newest class first, got %+v", classes)
	}
}
