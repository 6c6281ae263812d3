package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
)

// Memory is the in-process store used by the service tests. It mirrors the
// GORM implementation's semantics: insertion-order listings (newest first
// where the SQL orders by created_at desc), eager class/student hydration on
// schedule reads, and ErrNotFound on missing rows.
type Memory struct {
	mu        sync.Mutex
	users     []models.User
	classes   []models.Class
	schedules []models.Schedule
	codes     []models.EmailVerificationCode
}

func NewMemory() *Memory {
	return &Memory{}
}

func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}

func (m *Memory) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&u.ID, &u.CreatedAt)
	if u.VerificationStatus == "" {
		u.VerificationStatus = models.VerificationNone
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(ctx context.Context, f UserFilter) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for i := len(m.users) - 1; i >= 0; i-- {
		u := m.users[i]
		if f.VerificationStatus != "" && string(u.VerificationStatus) != f.VerificationStatus {
			continue
		}
		if f.UserType != "" && string(u.UserType) != f.UserType {
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (m *Memory) UpdateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) CreateClass(ctx context.Context, c *models.Class) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&c.ID, &c.CreatedAt)
	m.classes = append(m.classes, *c)
	return nil
}

func (m *Memory) GetClass(ctx context.Context, id string) (*models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findClass(id)
}

func (m *Memory) findClass(id string) (*models.Class, error) {
	for i := range m.classes {
		if m.classes[i].ID == id {
			class := m.classes[i]
			return &class, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListClasses(ctx context.Context) ([]models.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var classes []models.Class
	for i := len(m.classes) - 1; i >= 0; i-- {
		classes = append(classes, m.classes[i])
	}
	return classes, nil
}

func (m *Memory) UpdateClass(ctx context.Context, c *models.Class) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.classes {
		if m.classes[i].ID == c.ID {
			m.classes[i] = *c
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteClass(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.classes {
		if m.classes[i].ID == id {
			m.classes = append(m.classes[:i], m.classes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) hydrate(s models.Schedule) models.Schedule {
	if class, err := m.findClass(s.ClassID); err == nil {
		s.Class = class
	}
	for i := range m.users {
		if m.users[i].ID == s.StudentID {
			student := m.users[i]
			s.Student = &student
			break
		}
	}
	return s
}

func (m *Memory) matches(s models.Schedule, f ScheduleFilter) bool {
	if f.ClassID != "" && s.ClassID != f.ClassID {
		return false
	}
	if f.StudentID != "" && s.StudentID != f.StudentID {
		return false
	}
	if f.TutorID != "" {
		class, err := m.findClass(s.ClassID)
		if err != nil || class.TutorID != f.TutorID {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, status := range f.Statuses {
			if s.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.DateFrom != "" && s.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && s.Date > f.DateTo {
		return false
	}
	return true
}

func (m *Memory) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&s.ID, &s.CreatedAt)
	if s.Status == "" {
		s.Status = models.StatusPending
	}
	row := *s
	row.Class = nil
	row.Student = nil
	m.schedules = append(m.schedules, row)
	return nil
}

func (m *Memory) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].ID == id {
			schedule := m.hydrate(m.schedules[i])
			return &schedule, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListSchedules(ctx context.Context, f ScheduleFilter) ([]models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var schedules []models.Schedule
	for _, s := range m.schedules {
		if m.matches(s, f) {
			schedules = append(schedules, m.hydrate(s))
		}
	}
	sort.SliceStable(schedules, func(i, j int) bool {
		a, b := schedules[i], schedules[j]
		if f.Descending {
			a, b = b, a
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	})
	if f.Offset > 0 {
		if f.Offset >= len(schedules) {
			return nil, nil
		}
		schedules = schedules[f.Offset:]
	}
	if f.Limit > 0 && len(schedules) > f.Limit {
		schedules = schedules[:f.Limit]
	}
	return schedules, nil
}

func (m *Memory) CountSchedules(ctx context.Context, f ScheduleFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, s := range m.schedules {
		if m.matches(s, f) {
			total++
		}
	}
	return total, nil
}

func (m *Memory) FindActiveSchedule(ctx context.Context, classID, studentID, date, timeOfDay string) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		s := m.schedules[i]
		if s.ClassID != classID || s.StudentID != studentID || s.Date != date || s.Time != timeOfDay {
			continue
		}
		if s.Status == models.StatusPending || s.Status == models.StatusScheduled {
			found := s
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateSchedule(ctx context.Context, s *models.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].ID == s.ID {
			row := *s
			row.Class = nil
			row.Student = nil
			m.schedules[i] = row
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteSchedule(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].ID == id {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) CreateCode(ctx context.Context, c *models.EmailVerificationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&c.ID, &c.CreatedAt)
	m.codes = append(m.codes, *c)
	return nil
}

func (m *Memory) LatestCode(ctx context.Context, email string) (*models.EmailVerificationCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.codes) - 1; i >= 0; i-- {
		if m.codes[i].Email == email {
			code := m.codes[i]
			return &code, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateCode(ctx context.Context, c *models.EmailVerificationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.codes {
		if m.codes[i].ID == c.ID {
			m.codes[i] = *c
			return nil
		}
	}
	return ErrNotFound
}
