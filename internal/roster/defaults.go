package roster

import (
	"fmt"
	"math/rand"

	"github.com/zaqqye/evaluasi_backend/internal/models"
)

const (
	idPrefix  = "murid-"
	nimPrefix = "2300"
	// first sequence number handed out for a NIM
	nimSeqStart = 1001
)

var DefaultStudentNames = []string{
	"Ahmad Budi", "Citra Dewi", "Eko Prasetyo", "Fitriani Sari", "Galih Wijaya",
	"Hana Lestari", "Indra Kusuma", "Joko Susilo", "Kartika Putri", "Lia Anggraini",
	"Muhammad Rizki", "Nurul Hidayah", "Putra Pratama", "Rina Amelia", "Siti Nurhaliza",
	"Tono Santoso", "Wahyu Nugroho", "Yulia Puspita", "Zainal Abidin", "Agus Setiawan",
	"Bella Permata", "Dian Saputra", "Farah Adiba", "Gita Gutawa", "Heru Wibowo",
	"Ika Safitri", "Kevin Sanjaya", "Lina Marlina", "Nanda Pratama", "Olivia Jensen",
	"Rendy Pandugo", "Sari aulia", "Tegar Septian", "Vino Bastian", "Wulan Guritno",
}

// PhotoURL is the placeholder avatar for a student id.
func PhotoURL(id string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/200", id)
}

// NIM formats a registration number from its sequence value.
func NIM(seq int) string {
	return fmt.Sprintf("%s%d", nimPrefix, seq)
}

// DefaultRoster generates the seed class: every default name with plausible
// random scores for each subject.
func DefaultRoster(subjects []string, rng *rand.Rand) models.Roster {
	out := make(models.Roster, 0, len(DefaultStudentNames))
	for i, name := range DefaultStudentNames {
		id := fmt.Sprintf("%s%d", idPrefix, i+1)
		scores := make(map[string]models.Scores, len(subjects))
		for _, subject := range subjects {
			scores[subject] = randomScores(rng)
		}
		out = append(out, models.Student{
			ID:       id,
			NIM:      NIM(nimSeqStart + i),
			Name:     name,
			PhotoURL: PhotoURL(id),
			Scores:   scores,
		})
	}
	return out
}

func between(rng *rand.Rand, min, max int) float64 {
	return float64(min + rng.Intn(max-min+1))
}

func randomScores(rng *rand.Rand) models.Scores {
	return models.Scores{
		Attendance: models.Attendance{
			Present:       between(rng, 15, 20),
			Permission:    between(rng, 0, 2),
			Sick:          between(rng, 0, 3),
			TotalSessions: models.DefaultTotalSessions,
		},
		Proactivity: models.Proactivity{
			Initiative:    between(rng, 70, 100),
			Participation: between(rng, 65, 100),
			Discipline:    between(rng, 75, 100),
		},
		Assignments: models.Assignments{
			Responsibility: between(rng, 70, 100),
			Teamwork:       between(rng, 68, 100),
		},
		Exams: models.Exams{
			UTS1: between(rng, 60, 100),
			UAS1: between(rng, 55, 100),
			UTS2: between(rng, 62, 100),
			UAS2: between(rng, 60, 100),
		},
	}
}
