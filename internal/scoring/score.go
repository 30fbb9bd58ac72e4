// Package scoring turns raw category scores into the weighted final score and
// ranks a roster by it.
//
// Final scores are rounded to two decimals, half away from zero. The whole
// formula is folded into a single decimal fraction and divided once, so a
// mathematically half-way value like 77.005 or 30.015/3 rounds up instead of
// drifting down through a truncated intermediate quotient.
package scoring

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/zaqqye/evaluasi_backend/internal/models"
)

const finalPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Weights is the share of each category in the final score. The shares must
// sum to 1.0.
type Weights struct {
	Attendance  float64 `json:"attendance" yaml:"attendance"`
	Proactivity float64 `json:"proactivity" yaml:"proactivity"`
	Assignments float64 `json:"assignments" yaml:"assignments"`
	Exams       float64 `json:"exams" yaml:"exams"`
}

func DefaultWeights() Weights {
	return Weights{
		Attendance:  0.10,
		Proactivity: 0.20,
		Assignments: 0.30,
		Exams:       0.40,
	}
}

func (w Weights) Sum() float64 {
	return w.Attendance + w.Proactivity + w.Assignments + w.Exams
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Attendance, w.Proactivity, w.Assignments, w.Exams} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// Final computes the weighted final score of s, rounded to 2 places.
//
// With T sessions the score is N / (12*T) where
//
//	N = present*100*wA*12 + T*(sumP*wP*4 + sumG*wG*6 + sumE*wE*3)
//
// 12 being the common denominator of the 3, 2 and 4 field means. When T is
// not positive the attendance term is 0 and T is taken as 1.
func (w Weights) Final(s models.Scores) float64 {
	sessions := decimal.NewFromInt(1)
	att := decimal.Zero
	if t := dec(s.Attendance.TotalSessions); t.IsPositive() {
		sessions = t
		att = dec(s.Attendance.Present).Mul(hundred).Mul(dec(w.Attendance)).Mul(twelve)
	}

	p := s.Proactivity
	g := s.Assignments
	e := s.Exams
	rest := sum(p.Initiative, p.Participation, p.Discipline).Mul(dec(w.Proactivity)).Mul(decimal.NewFromInt(4)).
		Add(sum(g.Responsibility, g.Teamwork).Mul(dec(w.Assignments)).Mul(decimal.NewFromInt(6))).
		Add(sum(e.UTS1, e.UAS1, e.UTS2, e.UAS2).Mul(dec(w.Exams)).Mul(decimal.NewFromInt(3)))

	num := att.Add(sessions.Mul(rest))
	return num.DivRound(twelve.Mul(sessions), finalPlaces).InexactFloat64()
}

// FinalScore uses the default weights.
func FinalScore(s models.Scores) float64 {
	return DefaultWeights().Final(s)
}

// SubjectScore is the final score of a student in subject; a missing entry
// scores 0.
func SubjectScore(st models.Student, subject string) float64 {
	if !st.HasScores(subject) {
		return 0
	}
	return FinalScore(st.Scores[subject])
}

// AttendanceScore is the percentage of sessions attended, 0 when the session
// count is not positive.
func AttendanceScore(a models.Attendance) float64 {
	return attendance(a).InexactFloat64()
}

func ProactivityScore(p models.Proactivity) float64 {
	return proactivity(p).InexactFloat64()
}

func AssignmentsScore(g models.Assignments) float64 {
	return assignments(g).InexactFloat64()
}

func ExamsScore(e models.Exams) float64 {
	return exams(e).InexactFloat64()
}

func attendance(a models.Attendance) decimal.Decimal {
	if a.TotalSessions <= 0 {
		return decimal.Zero
	}
	return dec(a.Present).Div(dec(a.TotalSessions)).Mul(hundred)
}

func proactivity(p models.Proactivity) decimal.Decimal {
	return mean(p.Initiative, p.Participation, p.Discipline)
}

func assignments(g models.Assignments) decimal.Decimal {
	return mean(g.Responsibility, g.Teamwork)
}

func exams(e models.Exams) decimal.Decimal {
	return mean(e.UTS1, e.UAS1, e.UTS2, e.UAS2)
}

func mean(vals ...float64) decimal.Decimal {
	return sum(vals...).Div(decimal.NewFromInt(int64(len(vals))))
}

func sum(vals ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(dec(v))
	}
	return total
}

func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
