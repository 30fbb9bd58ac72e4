package scoring

import (
	"sort"

	"github.com/zaqqye/evaluasi_backend/internal/models"
)

// RankEntry is one row of a subject ranking.
type RankEntry struct {
	StudentID  string  `json:"id"`
	Name       string  `json:"name"`
	NIM        string  `json:"nim"`
	FinalScore float64 `json:"finalScore"`
	Rank       int     `json:"rank"`
}

// Rank orders the roster by final score in subject, highest first, and
// assigns 1-based positions. Equal scores keep their roster order.
func Rank(roster models.Roster, subject string) []RankEntry {
	return DefaultWeights().Rank(roster, subject)
}

func (w Weights) Rank(roster models.Roster, subject string) []RankEntry {
	entries := make([]RankEntry, 0, len(roster))
	for _, st := range roster {
		entries = append(entries, RankEntry{
			StudentID:  st.ID,
			Name:       st.Name,
			NIM:        st.NIM,
			FinalScore: w.Final(st.ScoresFor(subject)),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FinalScore > entries[j].FinalScore
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RankOf looks up the rank of studentID in a ranking.
func RankOf(entries []RankEntry, studentID string) (int, bool) {
	for _, e := range entries {
		if e.StudentID == studentID {
			return e.Rank, true
		}
	}
	return 0, false
}
