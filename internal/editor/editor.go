// Package editor implements the tabbed draft/commit/revise workflow an
// instructor uses to change scores for their own subject.
package editor

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zaqqye/evaluasi_backend/internal/logger"
	"github.com/zaqqye/evaluasi_backend/internal/metrics"
	"github.com/zaqqye/evaluasi_backend/internal/models"
	"github.com/zaqqye/evaluasi_backend/internal/roster"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

// Store is the part of roster.Store the editor needs.
type Store interface {
	Get() models.Roster
	Replace(ctx context.Context, r models.Roster)
	LoadPersisted(ctx context.Context) (models.Roster, error)
	Subjects() []string
}

// Editor holds one instructor's uncommitted draft. It is not safe for
// concurrent use; callers serialize access.
type Editor struct {
	store    Store
	identity models.Identity
	subject  string
	tab      models.Category
	draft    models.Roster
	notice   *Notice

	now       func() time.Time
	noticeTTL time.Duration
	notifier  Notifier
	log       zerolog.Logger
}

type Option func(*Editor)

func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

func WithNoticeTTL(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.noticeTTL = d
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Editor) {
		if n != nil {
			e.notifier = n
		}
	}
}

// Open starts an editing session for an admin identity. The draft starts as
// a copy of the committed roster and the attendance tab is active.
func Open(store Store, identity models.Identity, opts ...Option) (*Editor, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.ErrNotAdmin
	}
	e := &Editor{
		store:     store,
		identity:  identity,
		subject:   identity.Subject,
		tab:       models.CategoryAttendance,
		draft:     store.Get(),
		now:       time.Now,
		noticeTTL: DefaultNoticeTTL,
		notifier:  nopNotifier{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logger.Component("editor").With().Str("subject", e.subject).Logger()
	return e, nil
}

func (e *Editor) Identity() models.Identity { return e.identity }

// Subject is the one subject this editor may change.
func (e *Editor) Subject() string { return e.subject }

func (e *Editor) Tab() models.Category { return e.tab }

func (e *Editor) SelectTab(c models.Category) error {
	if !c.Valid() {
		return apperrors.ErrUnknownCategory
	}
	e.tab = c
	return nil
}

// EditField writes one coerced value into the draft. The edit must target
// the scope subject and a field of the active tab. A student with no record
// for the subject gets the zero record before the write.
func (e *Editor) EditField(studentID, subject string, c models.Category, f models.Field, raw string) error {
	err := e.editField(studentID, subject, c, f, raw)
	result := "applied"
	if err != nil {
		result = "rejected"
	}
	metrics.Edits.WithLabelValues(string(c), result).Inc()
	return err
}

func (e *Editor) editField(studentID, subject string, c models.Category, f models.Field, raw string) error {
	if subject != e.subject {
		return apperrors.ErrSubjectOutOfScope
	}
	if !c.Valid() {
		return apperrors.ErrUnknownCategory
	}
	if c != e.tab {
		return apperrors.ErrCategoryNotActive
	}
	if !c.HasField(f) {
		return apperrors.ErrUnknownField
	}
	v, err := ParseValue(string(f), raw)
	if err != nil {
		return err
	}
	i := e.draft.Index(studentID)
	if i < 0 {
		return apperrors.ErrStudentNotFound
	}

	st := &e.draft[i]
	if st.Scores == nil {
		st.Scores = make(map[string]models.Scores)
	}
	sc := st.ScoresFor(subject)
	if err := sc.Set(c, f, v); err != nil {
		return err
	}
	st.Scores[subject] = sc
	return nil
}

// AddStudent appends a new student with neutral scores to the draft.
func (e *Editor) AddStudent(name string) (models.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Student{}, apperrors.ErrNameRequired
	}
	st := roster.NewStudent(name, e.store.Subjects(), e.draft)
	e.draft = append(e.draft, st)
	e.post(addedMessage(name))
	e.log.Info().Str("student_id", st.ID).Str("nim", st.NIM).Msg("Student added to draft")
	return st.Clone(), nil
}

// DeleteStudent removes a student from the draft. Without confirmation it
// returns a ConfirmationRequiredError naming the student and changes nothing.
func (e *Editor) DeleteStudent(studentID string, confirmed bool) error {
	i := e.draft.Index(studentID)
	if i < 0 {
		return apperrors.ErrStudentNotFound
	}
	name := e.draft[i].Name
	if !confirmed {
		return apperrors.ConfirmationRequiredError{StudentID: studentID, Name: name}
	}
	e.draft = append(e.draft[:i:i], e.draft[i+1:]...)
	e.post(deletedMessage(name))
	e.log.Info().Str("student_id", studentID).Msg("Student removed from draft")
	return nil
}

// Submit commits the draft and rebases it on the committed roster.
func (e *Editor) Submit(ctx context.Context) {
	e.store.Replace(ctx, e.draft)
	e.draft = e.store.Get()
	e.post(msgSubmitted)
	e.notifier.RosterCommitted(e.subject)
	e.log.Info().Int("students", len(e.draft)).Msg("Draft submitted")
}

// Revise replaces the draft with the last persisted snapshot. When there is
// no usable snapshot the draft is kept and the error is returned.
func (e *Editor) Revise(ctx context.Context) error {
	r, err := e.store.LoadPersisted(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			e.post(msgNoSnapshot)
			e.log.Warn().Msg("Nothing persisted to revise")
		} else {
			e.post(msgReviseFailed)
			e.log.Error().Err(err).Msg("Revise failed")
		}
		return err
	}
	e.draft = r
	e.post(msgRevised)
	e.log.Info().Int("students", len(r)).Msg("Draft reloaded from snapshot")
	return nil
}

// Draft returns a copy of the working roster.
func (e *Editor) Draft() models.Roster {
	return e.draft.Clone()
}

// Dirty reports whether the draft differs from the committed roster.
func (e *Editor) Dirty() bool {
	return !reflect.DeepEqual(normalize(e.draft), normalize(e.store.Get()))
}

// Notice returns the current toast, if it has not expired.
func (e *Editor) Notice() (Notice, bool) {
	if e.notice == nil || !e.now().Before(e.notice.ExpiresAt) {
		return Notice{}, false
	}
	return *e.notice, true
}

func (e *Editor) post(msg string) {
	n := Notice{Message: msg, ExpiresAt: e.now().Add(e.noticeTTL)}
	e.notice = &n
	e.notifier.NoticePosted(e.subject, n)
}

// normalize maps nil containers to empty ones so that a roster and its
// round-tripped copy compare equal.
func normalize(r models.Roster) models.Roster {
	out := make(models.Roster, len(r))
	for i, st := range r {
		if st.Scores == nil {
			st.Scores = map[string]models.Scores{}
		}
		out[i] = st
	}
	return out
}
