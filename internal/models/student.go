package models

import (
	"fmt"
	"strings"
)

type Student struct {
	ID       string            `json:"id"`
	NIM      string            `json:"nim"`
	Name     string            `json:"name"`
	PhotoURL string            `json:"photoUrl"`
	Scores   map[string]Scores `json:"scores"`
}

// ScoresFor returns the student's record for subject, or ZeroScores when the
// entry is absent.
func (s Student) ScoresFor(subject string) Scores {
	if sc, ok := s.Scores[subject]; ok {
		return sc
	}
	return ZeroScores()
}

// HasScores reports whether an entry exists for subject.
func (s Student) HasScores(subject string) bool {
	_, ok := s.Scores[subject]
	return ok
}

func (s Student) Clone() Student {
	out := s
	if s.Scores != nil {
		out.Scores = make(map[string]Scores, len(s.Scores))
		for k, v := range s.Scores {
			out.Scores[k] = v
		}
	}
	return out
}

// Roster is ordered by insertion; that order is the display numbering and
// the ranking tie-break.
type Roster []Student

// Clone returns a deep copy sharing no maps or slices with r.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	for i, s := range r {
		out[i] = s.Clone()
	}
	return out
}

// Index returns the position of the student with id, or -1.
func (r Roster) Index(id string) int {
	for i := range r {
		if r[i].ID == id {
			return i
		}
	}
	return -1
}

func (r Roster) Find(id string) (Student, bool) {
	if i := r.Index(id); i >= 0 {
		return r[i], true
	}
	return Student{}, false
}

// FindByName matches case-insensitively and returns the first hit in roster
// order.
func (r Roster) FindByName(name string) (Student, bool) {
	want := strings.ToLower(name)
	for _, s := range r {
		if strings.ToLower(s.Name) == want {
			return s, true
		}
	}
	return Student{}, false
}

// IDs returns student ids in roster order.
func (r Roster) IDs() []string {
	ids := make([]string, len(r))
	for i, s := range r {
		ids[i] = s.ID
	}
	return ids
}

// Validate checks the shape invariants a persisted roster must satisfy.
func (r Roster) Validate() error {
	seen := make(map[string]struct{}, len(r))
	for i, s := range r {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("student at index %d has no id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate student id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
