package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqqye/evaluasi_backend/internal/models"
	"github.com/zaqqye/evaluasi_backend/internal/roster"
	"github.com/zaqqye/evaluasi_backend/internal/scoring"
	"github.com/zaqqye/evaluasi_backend/internal/storage"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

const subject = "Matematika"

var testSubjects = []string{"Matematika", "Informatika"}

var admin = models.Identity{DisplayName: subject, Role: models.RoleAdmin, Subject: subject}

func seedRoster() models.Roster {
	full := models.Scores{
		Attendance:  models.Attendance{Present: 20, TotalSessions: 20},
		Proactivity: models.Proactivity{Initiative: 80, Participation: 80, Discipline: 80},
		Assignments: models.Assignments{Responsibility: 80, Teamwork: 80},
		Exams:       models.Exams{UTS1: 80, UAS1: 80, UTS2: 80, UAS2: 80},
	}
	return models.Roster{
		{ID: "murid-1", NIM: "23001001", Name: "Ahmad Budi", Scores: map[string]models.Scores{subject: full}},
		{ID: "murid-2", NIM: "23001002", Name: "Citra Dewi", Scores: map[string]models.Scores{}},
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type recorder struct {
	notices []Notice
	commits []string
}

func (r *recorder) NoticePosted(_ string, n Notice) { r.notices = append(r.notices, n) }
func (r *recorder) RosterCommitted(s string)        { r.commits = append(r.commits, s) }

type fixture struct {
	store *roster.Store
	blobs *storage.MemoryStore
	clock *clock
	rec   *recorder
	ed    *Editor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	blobs := storage.NewMemoryStore()
	store := roster.NewStore(blobs, "studentData", testSubjects)
	store.Replace(context.Background(), seedRoster())

	f := &fixture{
		store: store,
		blobs: blobs,
		clock: &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		rec:   &recorder{},
	}
	ed, err := Open(store, admin, WithClock(f.clock.now), WithNotifier(f.rec))
	require.NoError(t, err)
	f.ed = ed
	return f
}

func committedFinal(s *roster.Store, id string) float64 {
	st, _ := s.Get().Find(id)
	return scoring.SubjectScore(st, subject)
}

func TestOpen(t *testing.T) {
	f := setup(t)
	assert.Equal(t, subject, f.ed.Subject())
	assert.Equal(t, models.CategoryAttendance, f.ed.Tab())
	assert.Equal(t, f.store.Get(), f.ed.Draft())
	assert.False(t, f.ed.Dirty())

	_, err := Open(f.store, models.Identity{Role: models.RoleStudent, StudentID: "murid-1"})
	assert.ErrorIs(t, err, apperrors.ErrNotAdmin)
}

func TestSelectTab(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.ed.SelectTab(models.CategoryExams))
	assert.Equal(t, models.CategoryExams, f.ed.Tab())
	assert.False(t, f.ed.Dirty(), "switching tabs leaves data alone")

	assert.ErrorIs(t, f.ed.SelectTab("bogus"), apperrors.ErrUnknownCategory)
	assert.Equal(t, models.CategoryExams, f.ed.Tab())
}

func TestEditField_DraftOnlyUntilSubmit(t *testing.T) {
	f := setup(t)
	before := committedFinal(f.store, "murid-1")

	require.NoError(t, f.ed.SelectTab(models.CategoryExams))
	require.NoError(t, f.ed.EditField("murid-1", subject, models.CategoryExams, models.FieldUAS2, "20"))

	st, _ := f.ed.Draft().Find("murid-1")
	assert.Equal(t, 20.0, st.Scores[subject].Exams.UAS2)
	assert.True(t, f.ed.Dirty())
	assert.Equal(t, before, committedFinal(f.store, "murid-1"), "committed roster untouched")

	f.ed.Submit(context.Background())
	assert.False(t, f.ed.Dirty())
	assert.Equal(t, f.store.Get(), f.ed.Draft())
	assert.Less(t, committedFinal(f.store, "murid-1"), before)
	assert.Equal(t, []string{subject}, f.rec.commits)

	persisted, err := f.store.LoadPersisted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.store.Get(), persisted)
}

func TestEditField_SynthesizesMissingSubject(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.ed.EditField("murid-2", subject, models.CategoryAttendance, models.FieldPresent, "15"))

	st, _ := f.ed.Draft().Find("murid-2")
	want := models.ZeroScores()
	want.Attendance.Present = 15
	assert.Equal(t, want, st.Scores[subject])
}

func TestEditField_Coercion(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		err  error
	}{
		{"", 0, nil},
		{"   ", 0, nil},
		{" 17 ", 17, nil},
		{"12.5", 12.5, nil},
		{"abc", 20, apperrors.ErrInvalidScoreValue},
		{"NaN", 20, apperrors.ErrInvalidScoreValue},
		{"Inf", 20, apperrors.ErrInvalidScoreValue},
		{"1e400", 20, apperrors.ErrInvalidScoreValue},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := setup(t)
			err := f.ed.EditField("murid-1", subject, models.CategoryAttendance, models.FieldPresent, tt.raw)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				var verr apperrors.ValidationError
				assert.True(t, errors.As(err, &verr))
				assert.False(t, f.ed.Dirty(), "rejected edit leaves the draft alone")
			} else {
				require.NoError(t, err)
			}
			st, _ := f.ed.Draft().Find("murid-1")
			assert.Equal(t, tt.want, st.Scores[subject].Attendance.Present)
		})
	}
}

func TestEditField_Rejections(t *testing.T) {
	f := setup(t)
	tests := []struct {
		name      string
		id, subj  string
		cat       models.Category
		field     models.Field
		wantError error
	}{
		{"other subject", "murid-1", "Informatika", models.CategoryAttendance, models.FieldPresent, apperrors.ErrSubjectOutOfScope},
		{"inactive tab", "murid-1", subject, models.CategoryExams, models.FieldUTS1, apperrors.ErrCategoryNotActive},
		{"unknown category", "murid-1", subject, "bogus", models.FieldPresent, apperrors.ErrUnknownCategory},
		{"field of another category", "murid-1", subject, models.CategoryAttendance, models.FieldUTS1, apperrors.ErrUnknownField},
		{"unknown student", "murid-404", subject, models.CategoryAttendance, models.FieldPresent, apperrors.ErrStudentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.ed.EditField(tt.id, tt.subj, tt.cat, tt.field, "5")
			assert.ErrorIs(t, err, tt.wantError)
			assert.False(t, f.ed.Dirty())
		})
	}
}

func TestAddStudent(t *testing.T) {
	f := setup(t)

	st, err := f.ed.AddStudent("  Dewi Lestari ")
	require.NoError(t, err)
	assert.Equal(t, "Dewi Lestari", st.Name)
	assert.Regexp(t, `^murid-[0-9a-f-]{36}$`, st.ID)
	assert.Equal(t, "23001003", st.NIM)
	assert.Equal(t, roster.PhotoURL(st.ID), st.PhotoURL)
	require.Len(t, st.Scores, len(testSubjects))
	for _, s := range testSubjects {
		assert.Equal(t, models.NeutralScores(), st.Scores[s])
	}

	draft := f.ed.Draft()
	require.Len(t, draft, 3)
	assert.Equal(t, st.ID, draft[2].ID, "appended at the end")

	n, ok := f.ed.Notice()
	require.True(t, ok)
	assert.Equal(t, `Murid "Dewi Lestari" berhasil ditambahkan.`, n.Message)

	next, err := f.ed.AddStudent("Eko")
	require.NoError(t, err)
	assert.Equal(t, "23001004", next.NIM)
}

func TestAddStudent_BlankName(t *testing.T) {
	f := setup(t)
	for _, name := range []string{"", "   "} {
		_, err := f.ed.AddStudent(name)
		assert.ErrorIs(t, err, apperrors.ErrNameRequired)
	}
	assert.Len(t, f.ed.Draft(), 2)
	_, ok := f.ed.Notice()
	assert.False(t, ok)
}

func TestDeleteStudent_RequiresConfirmation(t *testing.T) {
	f := setup(t)

	err := f.ed.DeleteStudent("murid-2", false)
	var confirm apperrors.ConfirmationRequiredError
	require.True(t, errors.As(err, &confirm))
	assert.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
	assert.Equal(t, "Citra Dewi", confirm.Name)
	assert.Len(t, f.ed.Draft(), 2)

	require.NoError(t, f.ed.DeleteStudent("murid-2", true))
	assert.Equal(t, []string{"murid-1"}, f.ed.Draft().IDs())
	assert.Len(t, f.store.Get(), 2, "committed roster untouched")

	assert.ErrorIs(t, f.ed.DeleteStudent("murid-2", true), apperrors.ErrStudentNotFound)
}

func TestAddThenDeleteRoundTrip(t *testing.T) {
	f := setup(t)
	before := f.ed.Draft().IDs()

	st, err := f.ed.AddStudent("Fajar")
	require.NoError(t, err)
	require.NoError(t, f.ed.DeleteStudent(st.ID, true))

	assert.Equal(t, before, f.ed.Draft().IDs())
	assert.False(t, f.ed.Dirty())
}

func TestRevise_DiscardsUncommittedEdits(t *testing.T) {
	f := setup(t)
	persisted, err := f.store.LoadPersisted(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.ed.EditField("murid-1", subject, models.CategoryAttendance, models.FieldPresent, "1"))
	_, err = f.ed.AddStudent("Gita")
	require.NoError(t, err)

	require.NoError(t, f.ed.Revise(context.Background()))
	assert.Equal(t, persisted, f.ed.Draft())
	n, ok := f.ed.Notice()
	require.True(t, ok)
	assert.Equal(t, "Data berhasil ditarik untuk revisi.", n.Message)
}

func TestRevise_ReadsPersistedNotMemory(t *testing.T) {
	f := setup(t)
	// a commit whose write failed leaves memory ahead of the blob
	f.store.Replace(context.Background(), append(seedRoster(), models.Student{ID: "murid-9", Name: "Only In Memory"}))
	require.NoError(t, f.blobs.Put(context.Background(), "studentData", mustEncode(t, seedRoster())))

	require.NoError(t, f.ed.Revise(context.Background()))
	assert.Equal(t, []string{"murid-1", "murid-2"}, f.ed.Draft().IDs())
}

func TestRevise_NoSnapshot(t *testing.T) {
	store := roster.NewStore(storage.NewMemoryStore(), "studentData", testSubjects)
	c := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	ed, err := Open(store, admin, WithClock(c.now))
	require.NoError(t, err)
	_, err = ed.AddStudent("Hana")
	require.NoError(t, err)

	err = ed.Revise(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSnapshotNotFound)
	assert.Len(t, ed.Draft(), 1, "draft kept")
	n, ok := ed.Notice()
	require.True(t, ok)
	assert.Equal(t, "Tidak ada data tersimpan untuk direvisi.", n.Message)
}

func TestRevise_CorruptSnapshot(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.blobs.Put(context.Background(), "studentData", []byte("{oops")))

	err := f.ed.Revise(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSnapshotCorrupt)
	assert.Len(t, f.ed.Draft(), 2)
	n, _ := f.ed.Notice()
	assert.Equal(t, "Gagal memuat data revisi.", n.Message)
}

func TestNotice_Expires(t *testing.T) {
	f := setup(t)
	f.ed.Submit(context.Background())

	n, ok := f.ed.Notice()
	require.True(t, ok)
	assert.Equal(t, "Data berhasil di-submit dan disimpan!", n.Message)
	assert.Equal(t, f.clock.t.Add(DefaultNoticeTTL), n.ExpiresAt)
	require.Len(t, f.rec.notices, 1)

	f.clock.t = f.clock.t.Add(DefaultNoticeTTL)
	_, ok = f.ed.Notice()
	assert.False(t, ok)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("uts1", "-3")
	require.NoError(t, err)
	assert.Equal(t, -3.0, v)

	_, err = ParseValue("uts1", "12,5")
	var verr apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "uts1", verr.Field)
}

func mustEncode(t *testing.T, r models.Roster) []byte {
	t.Helper()
	data, err := roster.Encode(r)
	require.NoError(t, err)
	return data
}
