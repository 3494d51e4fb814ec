// Package registration implements the course-registration flow: the
// bounded selection set with its schedule-conflict gate, submission
// validation, and confirmation.
package registration

import (
	"errors"
	"strconv"
	"strings"

	"github.com/DA-itd/constancias/internal/refdata"
)

// MaxCourses is the selection limit per registration.
const MaxCourses = 3

// Sentinel errors for selection rejections. Their text feeds the error
// mapper, so keep it stable.
var (
	ErrSelectionFull    = errors.New("selection limit reached")
	ErrDuplicateCourse  = errors.New("course already selected")
	ErrScheduleConflict = errors.New("schedule conflict with a selected course")
)

// Selection is an ordered set of at most MaxCourses courses, unique by
// ID and pairwise non-overlapping in time on the same date. The invariant
// is enforced at Add time and never re-validated lazily; a rejected Add
// leaves the set untouched.
type Selection struct {
	courses []refdata.Course
}

// Add appends a course after checking, in order: the selection limit,
// duplication, and schedule conflicts.
func (s *Selection) Add(course refdata.Course) error {
	if len(s.courses) >= MaxCourses {
		return ErrSelectionFull
	}
	for _, c := range s.courses {
		if c.ID == course.ID {
			return ErrDuplicateCourse
		}
	}
	if HasConflict(course, s.courses) {
		return ErrScheduleConflict
	}
	s.courses = append(s.courses, course)
	return nil
}

// Remove deletes a course by ID, reporting whether it was present.
func (s *Selection) Remove(id int) bool {
	for i, c := range s.courses {
		if c.ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of selected courses.
func (s *Selection) Len() int { return len(s.courses) }

// Courses returns the selected courses in insertion order.
func (s *Selection) Courses() []refdata.Course { return s.courses }

// HasConflict reports whether the candidate session overlaps any member
// of existing on the same calendar date. Intervals are half-open, so
// sessions that merely touch ([16:00,18:00) then [18:00,20:00)) do not
// conflict. Sessions never cross midnight.
func HasConflict(candidate refdata.Course, existing []refdata.Course) bool {
	candStart, okS := clockMinutes(candidate.Schedule.StartTime)
	candEnd, okE := clockMinutes(candidate.Schedule.EndTime)
	if !okS || !okE {
		return false
	}
	for _, c := range existing {
		if c.Schedule.Date != candidate.Schedule.Date {
			continue
		}
		start, okS := clockMinutes(c.Schedule.StartTime)
		end, okE := clockMinutes(c.Schedule.EndTime)
		if !okS || !okE {
			continue
		}
		if candStart < end && candEnd > start {
			return true
		}
	}
	return false
}

// clockMinutes parses "HH:mm" into minutes since midnight.
func clockMinutes(t string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(t), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
