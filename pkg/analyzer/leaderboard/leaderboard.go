// Package leaderboard ranks students by a weighted blend of commit volume,
// message quality, active days, and current streak.
package leaderboard

import (
	"math"
	"sort"
	"time"

	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/analyzer/streak"
	"github.com/avelora/classpulse/pkg/models"
)

// Score weights. Commit volume and quality dominate; streak is a kicker
// capped at half weight.
const (
	weightCommits     = 0.3
	weightQuality     = 0.3
	weightConsistency = 0.25
	weightStreak      = 0.15
)

// Analyzer builds leaderboards.
type Analyzer struct {
	quality     *quality.Analyzer
	consistency *consistency.Analyzer
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithQuality overrides the quality analyzer used per student.
func WithQuality(a *quality.Analyzer) Option {
	return func(l *Analyzer) { l.quality = a }
}

// WithConsistency overrides the consistency analyzer used per student.
func WithConsistency(a *consistency.Analyzer) Option {
	return func(l *Analyzer) { l.consistency = a }
}

// New creates a leaderboard analyzer with default sub-analyzers.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		quality:     quality.New(),
		consistency: consistency.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// periodStart returns the inclusive lower bound for the period, or the
// zero time for the all-time board.
func periodStart(period Period, now time.Time) time.Time {
	switch period {
	case PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case PeriodMonthly:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// Analyze ranks every student over the given period ending at now.
func (a *Analyzer) Analyze(period Period, students []models.Student, repos []models.Repository, commits []models.Commit, now time.Time) *Report {
	start := periodStart(period, now)

	repoOwner := make(map[uint]uint, len(repos))
	repoCount := make(map[uint]int, len(students))
	for _, r := range repos {
		repoOwner[r.ID] = r.StudentID
		repoCount[r.StudentID]++
	}
	commitsByStudent := make(map[uint][]models.Commit)
	for _, c := range commits {
		if period != PeriodAll && c.CommitDate.Before(start) {
			continue
		}
		sid, ok := repoOwner[c.RepoID]
		if !ok {
			continue
		}
		commitsByStudent[sid] = append(commitsByStudent[sid], c)
	}

	rankings := make([]Ranking, 0, len(students))
	totalCommits := 0
	for _, student := range students {
		sc := commitsByStudent[student.ID]
		q := a.quality.Analyze(sc)
		c := a.consistency.Analyze(sc, now)
		s := streak.Calculate(sc, now)

		commitScore := math.Min(float64(len(sc))*2, 100)
		qualityScore := float64(q.MessageQualityScore)
		consistencyScore := math.Min(float64(c.ActiveDays)*5, 100)
		streakScore := math.Min(float64(s.CurrentStreak)*10, 50)

		overall := int(math.Round(
			commitScore*weightCommits +
				qualityScore*weightQuality +
				consistencyScore*weightConsistency +
				streakScore*weightStreak))

		rankings = append(rankings, Ranking{
			StudentID:     student.ID,
			Name:          student.Name,
			Email:         student.Email,
			TotalCommits:  len(sc),
			RepoCount:     repoCount[student.ID],
			QualityGrade:  q.Grade,
			QualityScore:  q.MessageQualityScore,
			ActiveDays:    c.ActiveDays,
			CurrentStreak: s.CurrentStreak,
			LongestStreak: s.LongestStreak,
			OverallScore:  overall,
		})
		totalCommits += len(sc)
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].OverallScore != rankings[j].OverallScore {
			return rankings[i].OverallScore > rankings[j].OverallScore
		}
		return rankings[i].Name < rankings[j].Name
	})

	// Dense ranks: tied scores share a rank.
	for i := range rankings {
		switch {
		case i == 0:
			rankings[i].Rank = 1
		case rankings[i].OverallScore == rankings[i-1].OverallScore:
			rankings[i].Rank = rankings[i-1].Rank
		default:
			rankings[i].Rank = rankings[i-1].Rank + 1
		}
		rankings[i].Trend = trendFor(i, len(rankings))
	}

	report := &Report{
		Period:    period,
		UpdatedAt: now,
		Rankings:  rankings,
		Stats: Stats{
			TotalStudents: len(students),
			TotalCommits:  totalCommits,
		},
	}
	if len(rankings) > 0 {
		sum := 0
		for _, r := range rankings {
			sum += r.OverallScore
		}
		report.Stats.AvgScore = int(math.Round(float64(sum) / float64(len(rankings))))
		top := 3
		if top > len(rankings) {
			top = len(rankings)
		}
		report.TopPerformers = rankings[:top]
	}
	return report
}

func trendFor(index, total int) Trend {
	switch {
	case index < 3:
		return TrendUp
	case index >= total-2:
		return TrendDown
	default:
		return TrendStable
	}
}
