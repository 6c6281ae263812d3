package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
)

// Gorm is the Postgres-backed store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (g *Gorm) CreateUser(ctx context.Context, u *models.User) error {
	return g.db.WithContext(ctx).Create(u).Error
}

func (g *Gorm) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (g *Gorm) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (g *Gorm) ListUsers(ctx context.Context, f UserFilter) ([]models.User, error) {
	query := g.db.WithContext(ctx).Order("created_at desc")
	if f.VerificationStatus != "" {
		query = query.Where("verification_status = ?", f.VerificationStatus)
	}
	if f.UserType != "" {
		query = query.Where("user_type = ?", f.UserType)
	}
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (g *Gorm) UpdateUser(ctx context.Context, u *models.User) error {
	return g.db.WithContext(ctx).Save(u).Error
}

func (g *Gorm) CreateClass(ctx context.Context, c *models.Class) error {
	return g.db.WithContext(ctx).Create(c).Error
}

func (g *Gorm) GetClass(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	if err := g.db.WithContext(ctx).First(&class, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &class, nil
}

func (g *Gorm) ListClasses(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := g.db.WithContext(ctx).Order("created_at desc").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (g *Gorm) UpdateClass(ctx context.Context, c *models.Class) error {
	return g.db.WithContext(ctx).Save(c).Error
}

func (g *Gorm) DeleteClass(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&models.Class{}, "id = ?", id).Error
}

func (g *Gorm) scheduleQuery(ctx context.Context, f ScheduleFilter) *gorm.DB {
	query := g.db.WithContext(ctx).Model(&models.Schedule{})
	if f.ClassID != "" {
		query = query.Where("schedules.class_id = ?", f.ClassID)
	}
	if f.StudentID != "" {
		query = query.Where("schedules.student_id = ?", f.StudentID)
	}
	if f.TutorID != "" {
		query = query.Joins("JOIN classes ON classes.id = schedules.class_id").
			Where("classes.tutor_id = ?", f.TutorID)
	}
	if len(f.Statuses) > 0 {
		query = query.Where("schedules.status IN ?", f.Statuses)
	}
	if f.DateFrom != "" {
		query = query.Where("schedules.date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		query = query.Where("schedules.date <= ?", f.DateTo)
	}
	return query
}

func (g *Gorm) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	return g.db.WithContext(ctx).Omit("Class", "Student").Create(s).Error
}

func (g *Gorm) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	var schedule models.Schedule
	err := g.db.WithContext(ctx).Preload("Class").Preload("Student").
		First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &schedule, nil
}

func (g *Gorm) ListSchedules(ctx context.Context, f ScheduleFilter) ([]models.Schedule, error) {
	order := "schedules.date asc, schedules.time asc"
	if f.Descending {
		order = "schedules.date desc, schedules.time desc"
	}
	query := g.scheduleQuery(ctx, f).Preload("Class").Preload("Student").Order(order)
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}
	var schedules []models.Schedule
	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (g *Gorm) CountSchedules(ctx context.Context, f ScheduleFilter) (int64, error) {
	var total int64
	if err := g.scheduleQuery(ctx, f).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (g *Gorm) FindActiveSchedule(ctx context.Context, classID, studentID, date, timeOfDay string) (*models.Schedule, error) {
	var schedule models.Schedule
	err := g.db.WithContext(ctx).
		Where("class_id = ? AND student_id = ? AND date = ? AND time = ?", classID, studentID, date, timeOfDay).
		Where("status IN ?", []models.ScheduleStatus{models.StatusPending, models.StatusScheduled}).
		First(&schedule).Error
	if err != nil {
		return nil, translate(err)
	}
	return &schedule, nil
}

func (g *Gorm) UpdateSchedule(ctx context.Context, s *models.Schedule) error {
	return g.db.WithContext(ctx).Omit("Class", "Student").Save(s).Error
}

func (g *Gorm) DeleteSchedule(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&models.Schedule{}, "id = ?", id).Error
}

func (g *Gorm) CreateCode(ctx context.Context, c *models.EmailVerificationCode) error {
	return g.db.WithContext(ctx).Create(c).Error
}

func (g *Gorm) LatestCode(ctx context.Context, email string) (*models.EmailVerificationCode, error) {
	var code models.EmailVerificationCode
	err := g.db.WithContext(ctx).Where("email = ?", email).
		Order("created_at desc").First(&code).Error
	if err != nil {
		return nil, translate(err)
	}
	return &code, nil
}

func (g *Gorm) UpdateCode(ctx context.Context, c *models.EmailVerificationCode) error {
	return g.db.WithContext(ctx).Save(c).Error
}
