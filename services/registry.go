package services

import (
	"context"
	"errors"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

// Registry is the class catalogue: reads are open, mutations are gated on
// the acting user's live verification state.
type Registry struct {
	store store.Store
}

func NewRegistry(st store.Store) *Registry {
	return &Registry{store: st}
}

type ClassInput struct {
	Title       string
	Description string
	Level       string
	Category    string
	Type        string
	Image       string
	Details     []string
}

// Create publishes a class owned by tutorID. The tutor must be a verified
// teacher at call time; TutorName is snapshotted from the tutor's current
// profile name.
func (r *Registry) Create(ctx context.Context, tutorID string, in ClassInput) (*models.Class, error) {
	tutor, err := r.store.GetUser(ctx, tutorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failWith(KindNotFound, "tutor not found")
		}
		return nil, failWith(KindInternal, "failed to look up tutor")
	}
	if !tutor.IsTeacher || tutor.VerificationStatus != models.VerificationVerified {
		return nil, failWith(KindForbidden, "tutor verification is required before publishing classes")
	}

	class := &models.Class{
		Title:       in.Title,
		Description: in.Description,
		Level:       in.Level,
		Category:    in.Category,
		Type:        in.Type,
		Image:       in.Image,
		TutorID:     tutor.ID,
		TutorName:   tutor.Name,
		Details:     in.Details,
	}
	if err := r.store.CreateClass(ctx, class); err != nil {
		return nil, failWith(KindInternal, "failed to create class")
	}
	return class, nil
}

// authorizeMutation re-checks ownership and verification against the store
// at mutation time rather than trusting session state: the acting user must
// own the class and still be a verified teacher.
func (r *Registry) authorizeMutation(ctx context.Context, actingUserID string, class *models.Class) error {
	if class.TutorID != actingUserID {
		return failWith(KindForbidden, "only the owning tutor can modify this class")
	}
	tutor, err := r.store.GetUser(ctx, actingUserID)
	if err != nil {
		return failWith(KindForbidden, "only the owning tutor can modify this class")
	}
	if !tutor.IsTeacher || tutor.VerificationStatus != models.VerificationVerified {
		return failWith(KindForbidden, "tutor verification is required to modify classes")
	}
	return nil
}

type ClassUpdateInput struct {
	Title       *string
	Description *string
	Level       *string
	Category    *string
	Type        *string
	Image       *string
	Details     []string
}

func (r *Registry) Update(ctx context.Context, actingUserID, id string, in ClassUpdateInput) (*models.Class, error) {
	class, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeMutation(ctx, actingUserID, class); err != nil {
		return nil, err
	}

	if in.Title != nil {
		class.Title = *in.Title
	}
	if in.Description != nil {
		class.Description = *in.Description
	}
	if in.Level != nil {
		class.Level = *in.Level
	}
	if in.Category != nil {
		class.Category = *in.Category
	}
	if in.Type != nil {
		class.Type = *in.Type
	}
	if in.Image != nil {
		class.Image = *in.Image
	}
	if in.Details != nil {
		class.Details = in.Details
	}

	if err := r.store.UpdateClass(ctx, class); err != nil {
		return nil, failWith(KindInternal, "failed to update class")
	}
	return class, nil
}

func (r *Registry) Delete(ctx context.Context, actingUserID, id string) error {
	class, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.authorizeMutation(ctx, actingUserID, class); err != nil {
		return err
	}
	if err := r.store.DeleteClass(ctx, id); err != nil {
		return failWith(KindInternal, "failed to delete class")
	}
	return nil
}

func (r *Registry) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := r.store.GetClass(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, failWith(KindNotFound, "class not found")
		}
		return nil, failWith(KindInternal, "failed to fetch class")
	}
	return class, nil
}

func (r *Registry) List(ctx context.Context) ([]models.Class, error) {
	classes, err := r.store.ListClasses(ctx)
	if err != nil {
		return nil, failWith(KindInternal, "failed to fetch classes")
	}
	return classes, nil
}
