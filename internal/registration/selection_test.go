package registration

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DA-itd/constancias/internal/refdata"
)

func course(id int, date, start, end string) refdata.Course {
	return refdata.Course{
		ID:   id,
		Name: fmt.Sprintf("CURSO %d", id),
		Schedule: refdata.Schedule{
			Date:      date,
			StartTime: start,
			EndTime:   end,
		},
	}
}

func TestHasConflict(t *testing.T) {
	base := course(1, "2025-06-16", "16:00", "18:00")

	tests := []struct {
		name      string
		candidate refdata.Course
		want      bool
	}{
		{"overlapping interval", course(2, "2025-06-16", "17:00", "19:00"), true},
		{"contained interval", course(2, "2025-06-16", "16:30", "17:30"), true},
		{"identical interval", course(2, "2025-06-16", "16:00", "18:00"), true},
		{"candidate ends at start", course(2, "2025-06-16", "14:00", "16:00"), false},
		{"candidate starts at end", course(2, "2025-06-16", "18:00", "20:00"), false},
		{"same time different date", course(2, "2025-06-17", "16:00", "18:00"), false},
		{"unparseable candidate time", course(2, "2025-06-16", "mañana", "tarde"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(tt.candidate, []refdata.Course{base})
			if got != tt.want {
				t.Errorf("HasConflict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionAdd_RejectionOrder(t *testing.T) {
	var s Selection
	if err := s.Add(course(1, "2025-06-16", "16:00", "18:00")); err != nil {
		t.Fatalf("first Add: %v", err)
	}

	if err := s.Add(course(1, "2025-06-17", "10:00", "12:00")); !errors.Is(err, ErrDuplicateCourse) {
		t.Errorf("duplicate id: err = %v, want ErrDuplicateCourse", err)
	}
	if err := s.Add(course(2, "2025-06-16", "17:00", "19:00")); !errors.Is(err, ErrScheduleConflict) {
		t.Errorf("overlap: err = %v, want ErrScheduleConflict", err)
	}
	if s.Len() != 1 {
		t.Errorf("rejected adds must not mutate: len = %d, want 1", s.Len())
	}
}

func TestSelectionAdd_Limit(t *testing.T) {
	var s Selection
	for i := 1; i <= MaxCourses; i++ {
		c := course(i, fmt.Sprintf("2025-06-%02d", 15+i), "16:00", "18:00")
		if err := s.Add(c); err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
	}

	err := s.Add(course(99, "2025-07-01", "08:00", "10:00"))
	if !errors.Is(err, ErrSelectionFull) {
		t.Fatalf("err = %v, want ErrSelectionFull", err)
	}
	if s.Len() != MaxCourses {
		t.Errorf("len = %d, want %d", s.Len(), MaxCourses)
	}
	// The limit check fires before duplication: re-adding a member of a
	// full set still reports the limit.
	if err := s.Add(course(1, "2025-06-16", "16:00", "18:00")); !errors.Is(err, ErrSelectionFull) {
		t.Errorf("full set duplicate: err = %v, want ErrSelectionFull", err)
	}
}

func TestSelectionRemove(t *testing.T) {
	var s Selection
	s.Add(course(1, "2025-06-16", "16:00", "18:00"))
	s.Add(course(2, "2025-06-17", "16:00", "18:00"))

	if !s.Remove(1) {
		t.Fatal("Remove(1) = false, want true")
	}
	if s.Remove(1) {
		t.Error("second Remove(1) must report absence")
	}
	if s.Len() != 1 || s.Courses()[0].ID != 2 {
		t.Errorf("remaining courses = %+v", s.Courses())
	}

	// Removing frees a slot and releases the schedule.
	if err := s.Add(course(3, "2025-06-16", "16:00", "18:00")); err != nil {
		t.Errorf("Add after Remove: %v", err)
	}
}

func TestSelectionCourses_InsertionOrder(t *testing.T) {
	var s Selection
	for _, id := range []int{5, 2, 9} {
		s.Add(course(id, fmt.Sprintf("2025-06-%02d", id), "16:00", "18:00"))
	}
	got := s.Courses()
	for i, want := range []int{5, 2, 9} {
		if got[i].ID != want {
			t.Errorf("courses[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
}
