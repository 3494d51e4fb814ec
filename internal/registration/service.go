package registration

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DA-itd/constancias/internal/refdata"
)

// curpShape is the official 18-character CURP layout. The field is
// optional; when present it must at least look right.
var curpShape = regexp.MustCompile(`^[A-Z]{4}\d{6}[HM][A-Z]{5}[A-Z0-9]\d$`)

// Submission is a registration request as received from the form.
type Submission struct {
	Name         string `json:"name"`
	CURP         string `json:"curp,omitempty"`
	Email        string `json:"email"`
	DepartmentID int    `json:"departmentId"`
	CourseIDs    []int  `json:"courseIds"`
}

// Confirmation is the accepted registration echoed back to the teacher.
type Confirmation struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	CURP        string           `json:"curp,omitempty"`
	Email       string           `json:"email"`
	Department  string           `json:"department"`
	Courses     []refdata.Course `json:"courses"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

// Notifier delivers the confirmation to the teacher. The production
// deployment sends mail out of band; this service only needs the hook.
type Notifier interface {
	Notify(ctx context.Context, c Confirmation) error
}

// LogNotifier records confirmations in the structured log. It stands in
// for the mail collaborator, which is outside this service's scope.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(ctx context.Context, c Confirmation) error {
	slog.InfoContext(ctx, "registration confirmed",
		"registration_id", c.ID,
		"email", c.Email,
		"department", c.Department,
		"courses", len(c.Courses),
	)
	return nil
}

// Service validates and confirms registrations against the loaded
// reference data. Reference data is read-only within a session and
// replaced wholesale on reload.
type Service struct {
	client   *refdata.Client
	notifier Notifier

	mu          sync.RWMutex
	teachers    []refdata.Teacher
	departments []refdata.Department
	courses     []refdata.Course
	loaded      bool
}

// NewService creates a registration Service. A nil notifier falls back
// to LogNotifier.
func NewService(client *refdata.Client, notifier Notifier) *Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Service{client: client, notifier: notifier}
}

// LoadReferenceData fetches teachers, departments and courses. All three
// must succeed; a partial load changes nothing.
func (s *Service) LoadReferenceData(ctx context.Context) error {
	teachers, err := s.client.Teachers(ctx)
	if err != nil {
		return err
	}
	departments, err := s.client.Departments(ctx)
	if err != nil {
		return err
	}
	courses, err := s.client.Courses(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teachers = teachers
	s.departments = departments
	s.courses = courses
	s.loaded = true
	return nil
}

// Loaded reports whether reference data is available.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Teachers returns the loaded teacher list.
func (s *Service) Teachers() []refdata.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teachers
}

// Departments returns the loaded department list.
func (s *Service) Departments() []refdata.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.departments
}

// Courses returns the loaded course list.
func (s *Service) Courses() []refdata.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses
}

// Register validates a submission, replays the selection invariants
// server-side, and on success assigns a confirmation ID and notifies.
// Rejections are synchronous and mutate nothing.
func (s *Service) Register(ctx context.Context, sub Submission) (Confirmation, error) {
	name := strings.ToUpper(strings.TrimSpace(sub.Name))
	email := strings.TrimSpace(sub.Email)
	curp := strings.ToUpper(strings.TrimSpace(sub.CURP))

	if name == "" {
		return Confirmation{}, fmt.Errorf("required field name is missing")
	}
	if email == "" {
		return Confirmation{}, fmt.Errorf("required field email is missing")
	}
	if sub.DepartmentID == 0 {
		return Confirmation{}, fmt.Errorf("required field departmentId is missing")
	}
	if curp != "" && !curpShape.MatchString(curp) {
		return Confirmation{}, fmt.Errorf("invalid curp %q", curp)
	}
	if len(sub.CourseIDs) == 0 {
		return Confirmation{}, fmt.Errorf("no courses selected")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	department, ok := s.departmentByID(sub.DepartmentID)
	if !ok {
		return Confirmation{}, fmt.Errorf("unknown department id %d", sub.DepartmentID)
	}

	var selection Selection
	for _, id := range sub.CourseIDs {
		course, ok := s.courseByID(id)
		if !ok {
			return Confirmation{}, fmt.Errorf("unknown course id %d", id)
		}
		if err := selection.Add(course); err != nil {
			return Confirmation{}, fmt.Errorf("course %q: %w", course.Name, err)
		}
	}

	confirmation := Confirmation{
		ID:          uuid.NewString(),
		Name:        name,
		CURP:        curp,
		Email:       email,
		Department:  department.Name,
		Courses:     selection.Courses(),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.notifier.Notify(ctx, confirmation); err != nil {
		// Delivery failure does not invalidate the registration.
		slog.WarnContext(ctx, "confirmation notify failed", "error", err)
	}
	return confirmation, nil
}

func (s *Service) departmentByID(id int) (refdata.Department, bool) {
	for _, d := range s.departments {
		if d.ID == id {
			return d, true
		}
	}
	return refdata.Department{}, false
}

func (s *Service) courseByID(id int) (refdata.Course, bool) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, true
		}
	}
	return refdata.Course{}, false
}
