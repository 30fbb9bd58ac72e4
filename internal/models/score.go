package models

import (
	"strings"

	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

// DefaultTotalSessions is the session capacity given to any synthesized
// attendance record.
const DefaultTotalSessions = 20

// neutralRating is used for freshly added students so they don't show up as
// zero outliers in the ranking.
const neutralRating = 75

type Attendance struct {
	Present       float64 `json:"present"`
	Permission    float64 `json:"permission"`
	Sick          float64 `json:"sick"`
	TotalSessions float64 `json:"totalSessions"`
}

// Proactivity ratings are on a 0-100 scale.
type Proactivity struct {
	Initiative    float64 `json:"initiative"`
	Participation float64 `json:"participation"`
	Discipline    float64 `json:"discipline"`
}

type Assignments struct {
	Responsibility float64 `json:"responsibility"`
	Teamwork       float64 `json:"teamwork"`
}

// Exams holds the two midterm (UTS) and two final (UAS) results.
type Exams struct {
	UTS1 float64 `json:"uts1"`
	UAS1 float64 `json:"uas1"`
	UTS2 float64 `json:"uts2"`
	UAS2 float64 `json:"uas2"`
}

// Scores is the full record for one (student, subject) pair.
type Scores struct {
	Attendance  Attendance  `json:"attendance"`
	Proactivity Proactivity `json:"proactivity"`
	Assignments Assignments `json:"assignments"`
	Exams       Exams       `json:"exams"`
}

// ZeroScores is what readers substitute for a missing subject entry and what
// the editor synthesizes before the first edit.
func ZeroScores() Scores {
	return Scores{Attendance: Attendance{TotalSessions: DefaultTotalSessions}}
}

// NeutralScores are the defaults given to a newly added student.
func NeutralScores() Scores {
	return Scores{
		Attendance:  Attendance{TotalSessions: DefaultTotalSessions},
		Proactivity: Proactivity{Initiative: neutralRating, Participation: neutralRating, Discipline: neutralRating},
		Assignments: Assignments{Responsibility: neutralRating, Teamwork: neutralRating},
		Exams:       Exams{UTS1: neutralRating, UAS1: neutralRating, UTS2: neutralRating, UAS2: neutralRating},
	}
}

// Category discriminates the four score groups. Each one owns a fixed set of
// fields, see Fields.
type Category string

const (
	CategoryAttendance  Category = "attendance"
	CategoryProactivity Category = "proactivity"
	CategoryAssignments Category = "assignments"
	CategoryExams       Category = "exams"
)

// Categories lists every category in tab order.
var Categories = []Category{CategoryAttendance, CategoryProactivity, CategoryAssignments, CategoryExams}

// tab ids used by the input panel
var categoryAliases = map[string]Category{
	"kehadiran": CategoryAttendance,
	"proaktif":  CategoryProactivity,
	"tugas":     CategoryAssignments,
	"ujian":     CategoryExams,
}

type Field string

const (
	FieldPresent        Field = "present"
	FieldPermission     Field = "permission"
	FieldSick           Field = "sick"
	FieldTotalSessions  Field = "totalSessions"
	FieldInitiative     Field = "initiative"
	FieldParticipation  Field = "participation"
	FieldDiscipline     Field = "discipline"
	FieldResponsibility Field = "responsibility"
	FieldTeamwork       Field = "teamwork"
	FieldUTS1           Field = "uts1"
	FieldUAS1           Field = "uas1"
	FieldUTS2           Field = "uts2"
	FieldUAS2           Field = "uas2"
)

var categoryFields = map[Category][]Field{
	CategoryAttendance:  {FieldPresent, FieldPermission, FieldSick, FieldTotalSessions},
	CategoryProactivity: {FieldInitiative, FieldParticipation, FieldDiscipline},
	CategoryAssignments: {FieldResponsibility, FieldTeamwork},
	CategoryExams:       {FieldUTS1, FieldUAS1, FieldUTS2, FieldUAS2},
}

// ParseCategory accepts the category key or its tab id, case-insensitively.
func ParseCategory(raw string) (Category, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := categoryAliases[s]; ok {
		return c, nil
	}
	c := Category(s)
	if _, ok := categoryFields[c]; ok {
		return c, nil
	}
	return "", apperrors.ErrUnknownCategory
}

func (c Category) Valid() bool {
	_, ok := categoryFields[c]
	return ok
}

// Fields returns the editable fields of the category in column order.
func (c Category) Fields() []Field {
	return append([]Field(nil), categoryFields[c]...)
}

func (c Category) HasField(f Field) bool {
	for _, cf := range categoryFields[c] {
		if cf == f {
			return true
		}
	}
	return false
}

// Set writes v into field f of category c.
func (s *Scores) Set(c Category, f Field, v float64) error {
	ref, err := s.ref(c, f)
	if err != nil {
		return err
	}
	*ref = v
	return nil
}

func (s *Scores) Get(c Category, f Field) (float64, error) {
	ref, err := s.ref(c, f)
	if err != nil {
		return 0, err
	}
	return *ref, nil
}

func (s *Scores) ref(c Category, f Field) (*float64, error) {
	switch c {
	case CategoryAttendance:
		switch f {
		case FieldPresent:
			return &s.Attendance.Present, nil
		case FieldPermission:
			return &s.Attendance.Permission, nil
		case FieldSick:
			return &s.Attendance.Sick, nil
		case FieldTotalSessions:
			return &s.Attendance.TotalSessions, nil
		}
	case CategoryProactivity:
		switch f {
		case FieldInitiative:
			return &s.Proactivity.Initiative, nil
		case FieldParticipation:
			return &s.Proactivity.Participation, nil
		case FieldDiscipline:
			return &s.Proactivity.Discipline, nil
		}
	case CategoryAssignments:
		switch f {
		case FieldResponsibility:
			return &s.Assignments.Responsibility, nil
		case FieldTeamwork:
			return &s.Assignments.Teamwork, nil
		}
	case CategoryExams:
		switch f {
		case FieldUTS1:
			return &s.Exams.UTS1, nil
		case FieldUAS1:
			return &s.Exams.UAS1, nil
		case FieldUTS2:
			return &s.Exams.UTS2, nil
		case FieldUAS2:
			return &s.Exams.UAS2, nil
		}
	default:
		return nil, apperrors.ErrUnknownCategory
	}
	return nil, apperrors.ErrUnknownField
}
