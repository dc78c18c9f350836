package menu

import (
	"github.com/agnivade/levenshtein"

	errx "github.com/tavolo-poc/waiterbot/internal/core/error"
)

// Course is one of the fixed menu categories.
type Course string

const (
	Starter    Course = "starter"
	MainCourse Course = "main course"
	SideDish   Course = "side dish"
	Dessert    Course = "dessert"
	Drink      Course = "drink"
)

// Courses returns the categories in their fixed enumeration order, the one
// used for listings and order recaps.
func Courses() []Course {
	return []Course{Starter, MainCourse, SideDish, Dessert, Drink}
}

// ParseCourse validates a user-provided course name.
func ParseCourse(s string) (Course, bool) {
	for _, c := range Courses() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Entry is one dish or drink on the menu. Course stays empty until the
// owner states it.
type Entry struct {
	Name       string            `json:"name"`
	Course     Course            `json:"course,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Store is an ordered collection of entries, unique by exact name. It is
// owned by a single dialogue session and is not safe for concurrent use.
type Store struct {
	entries []Entry
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Empty() bool {
	return len(s.entries) == 0
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) index(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Find looks an entry up by exact name.
func (s *Store) Find(name string) (Entry, bool) {
	if i := s.index(name); i >= 0 {
		return s.entries[i], true
	}
	return Entry{}, false
}

// Orderable looks an entry up for ordering. An entry that exists but has
// no course yet cannot be ordered.
func (s *Store) Orderable(name string) (Entry, error) {
	e, ok := s.Find(name)
	if !ok || e.Course == "" {
		return Entry{}, errx.ErrEntryNotOnMenu
	}
	return e, nil
}

// Nearest suggests the entry name closest to the given one, to decorate a
// not-on-the-menu reply when the ASR likely misheard a dish. It never turns
// a miss into a hit.
func (s *Store) Nearest(name string) (string, bool) {
	const maxDistance = 2
	best := ""
	bestDist := maxDistance + 1
	for _, e := range s.entries {
		if d := levenshtein.ComputeDistance(name, e.Name); d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	return best, best != "" && best != name
}

// Add inserts a new entry with no course yet.
func (s *Store) Add(name string) error {
	if s.index(name) >= 0 {
		return errx.ErrEntryExists
	}
	s.entries = append(s.entries, Entry{Name: name})
	return nil
}

// SetCourse records the course of an existing entry. A course, once set,
// never changes.
func (s *Store) SetCourse(name, course string) error {
	c, ok := ParseCourse(course)
	if !ok {
		return errx.ErrCourseNotValid
	}
	i := s.index(name)
	if i < 0 {
		return errx.ErrEntryNotFound
	}
	if s.entries[i].Course != "" {
		return errx.ErrCourseAlreadySet
	}
	s.entries[i].Course = c
	return nil
}

// ByCourse returns the entries of one category in insertion order.
func (s *Store) ByCourse(c Course) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Course == c {
			out = append(out, e)
		}
	}
	return out
}
