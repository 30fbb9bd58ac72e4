package roster

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/zaqqye/evaluasi_backend/internal/models"
)

// NextNIM continues the registration number sequence past the highest
// numeric NIM already in r.
func NextNIM(r models.Roster) string {
	next := nimSeqStart
	for _, s := range r {
		if !strings.HasPrefix(s.NIM, nimPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(s.NIM, nimPrefix))
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return NIM(next)
}

// NewStudent builds a student with a fresh id, the next NIM after those in r
// and neutral scores for every subject.
func NewStudent(name string, subjects []string, r models.Roster) models.Student {
	id := idPrefix + uuid.NewString()
	scores := make(map[string]models.Scores, len(subjects))
	for _, subject := range subjects {
		scores[subject] = models.NeutralScores()
	}
	return models.Student{
		ID:       id,
		NIM:      NextNIM(r),
		Name:     name,
		PhotoURL: PhotoURL(id),
		Scores:   scores,
	}
}
