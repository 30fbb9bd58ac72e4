// Package dashboard assembles the read-only report an identity sees: the
// student profile, per-subject report card, class ranking and score
// breakdown.
package dashboard

import (
	"github.com/zaqqye/evaluasi_backend/internal/models"
	"github.com/zaqqye/evaluasi_backend/internal/scoring"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

type Profile struct {
	ID       string `json:"id"`
	NIM      string `json:"nim"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

type ReportCardEntry struct {
	Subject    string  `json:"subject"`
	FinalScore float64 `json:"finalScore"`
}

type AttendanceBreakdown struct {
	models.Attendance
	Percent float64 `json:"percent"`
}

type ProactivityBreakdown struct {
	models.Proactivity
	Mean float64 `json:"mean"`
}

type Breakdown struct {
	Attendance  AttendanceBreakdown  `json:"attendance"`
	Proactivity ProactivityBreakdown `json:"proactivity"`
	Assignments float64              `json:"assignments"`
	Exams       float64              `json:"exams"`
	FinalScore  float64              `json:"finalScore"`
}

// View is everything the dashboard renders for one (student, subject) pair.
type View struct {
	Subject    string              `json:"subject"`
	Subjects   []string            `json:"subjects"`
	Profile    Profile             `json:"profile"`
	ReportCard []ReportCardEntry   `json:"reportCard"`
	Ranking    []scoring.RankEntry `json:"ranking"`
	Rank       int                 `json:"rank"`
	Breakdown  Breakdown           `json:"breakdown"`
}

// Build composes the view for identity. Students always see themselves;
// studentID is only honoured for admins, who default to the first student.
// An empty subject means the admin's own subject, or the first subject for
// students.
func Build(roster models.Roster, subjects []string, identity models.Identity, subject, studentID string) (View, error) {
	subject, err := resolveSubject(subjects, identity, subject)
	if err != nil {
		return View{}, err
	}

	if identity.IsStudent() {
		studentID = identity.StudentID
	} else if studentID == "" && len(roster) > 0 {
		studentID = roster[0].ID
	}
	st, ok := roster.Find(studentID)
	if !ok {
		return View{}, apperrors.ErrStudentNotFound
	}

	ranking := scoring.Rank(roster, subject)
	rank, _ := scoring.RankOf(ranking, st.ID)

	report := make([]ReportCardEntry, 0, len(subjects))
	for _, s := range subjects {
		report = append(report, ReportCardEntry{Subject: s, FinalScore: scoring.SubjectScore(st, s)})
	}

	return View{
		Subject:    subject,
		Subjects:   append([]string(nil), subjects...),
		Profile:    Profile{ID: st.ID, NIM: st.NIM, Name: st.Name, PhotoURL: st.PhotoURL},
		ReportCard: report,
		Ranking:    ranking,
		Rank:       rank,
		Breakdown:  breakdown(st.ScoresFor(subject)),
	}, nil
}

// Ranking returns the class ranking for subject, defaulting like Build.
func Ranking(roster models.Roster, subjects []string, identity models.Identity, subject string) (string, []scoring.RankEntry, error) {
	subject, err := resolveSubject(subjects, identity, subject)
	if err != nil {
		return "", nil, err
	}
	return subject, scoring.Rank(roster, subject), nil
}

func resolveSubject(subjects []string, identity models.Identity, subject string) (string, error) {
	if subject == "" {
		if identity.IsAdmin() && identity.Subject != "" {
			subject = identity.Subject
		} else if len(subjects) > 0 {
			subject = subjects[0]
		}
	}
	for _, s := range subjects {
		if s == subject {
			return s, nil
		}
	}
	return "", apperrors.ErrUnknownSubject
}

func breakdown(sc models.Scores) Breakdown {
	pro := ProactivityBreakdown{Proactivity: sc.Proactivity, Mean: scoring.ProactivityScore(sc.Proactivity)}
	// the radar chart shows nothing until at least one rating is given
	if pro.Mean <= 0 {
		pro.Proactivity = models.Proactivity{}
	}
	return Breakdown{
		Attendance:  AttendanceBreakdown{Attendance: sc.Attendance, Percent: scoring.AttendanceScore(sc.Attendance)},
		Proactivity: pro,
		Assignments: scoring.AssignmentsScore(sc.Assignments),
		Exams:       scoring.ExamsScore(sc.Exams),
		FinalScore:  scoring.FinalScore(sc),
	}
}
