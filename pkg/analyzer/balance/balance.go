// Package balance measures how evenly commits are distributed across the
// authors of one repository, flagging group projects carried by a single
// member.
package balance

import (
	"math"
	"sort"

	"github.com/avelora/classpulse/pkg/models"
	"github.com/avelora/classpulse/pkg/stats"
)

// Status categorizes a repository's contribution Gini coefficient.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusModerate  Status = "moderate"
	StatusPoor      Status = "poor"
)

// slackerShare is the percentage of commits above which the dominant
// contributor triggers a warning.
const slackerShare = 80.0

// Contributor is one author's share of a repository.
type Contributor struct {
	Author      string `json:"author"`
	CommitCount int    `json:"commit_count"`
	Percentage  int    `json:"percentage"`
}

// TimelineEntry is one day's per-author commit counts, for charting.
type TimelineEntry struct {
	Date     string         `json:"date"`
	ByAuthor map[string]int `json:"commits_by_author"`
}

// Dominant identifies the largest contributor.
type Dominant struct {
	Author     string `json:"name"`
	Percentage int    `json:"percentage"`
}

// Report describes contribution balance for one repository.
type Report struct {
	Contributors      []Contributor   `json:"contributors"`
	TotalCommits      int             `json:"total_commits"`
	GiniCoefficient   float64         `json:"gini_coefficient"`
	BalanceStatus     Status          `json:"balance_status"`
	HasSlackerWarning bool            `json:"has_slacker_warning"`
	Dominant          *Dominant       `json:"dominant_contributor,omitempty"`
	Timeline          []TimelineEntry `json:"timeline"`
}

// Analyze builds a balance report from a repository's commits. A repository
// with zero commits returns nil: an explicit no-data signal, distinct from
// a zero-score report.
func Analyze(commits []models.Commit) *Report {
	if len(commits) == 0 {
		return nil
	}

	counts := make(map[string]int)
	byDay := make(map[string]map[string]int)
	for _, c := range commits {
		author := c.Author
		if author == "" {
			author = "Unknown"
		}
		counts[author]++

		day := models.DateKey(c.CommitDate)
		if byDay[day] == nil {
			byDay[day] = make(map[string]int)
		}
		byDay[day][author]++
	}

	total := len(commits)
	contributors := make([]Contributor, 0, len(counts))
	values := make([]float64, 0, len(counts))
	for author, n := range counts {
		contributors = append(contributors, Contributor{
			Author:      author,
			CommitCount: n,
			Percentage:  int(math.Round(float64(n) / float64(total) * 100)),
		})
		values = append(values, float64(n))
	}
	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].CommitCount != contributors[j].CommitCount {
			return contributors[i].CommitCount > contributors[j].CommitCount
		}
		return contributors[i].Author < contributors[j].Author
	})

	gini := stats.Gini(values)

	top := contributors[0]
	topShare := float64(top.CommitCount) / float64(total) * 100

	report := &Report{
		Contributors:      contributors,
		TotalCommits:      total,
		GiniCoefficient:   math.Round(gini*100) / 100,
		BalanceStatus:     statusFor(gini),
		HasSlackerWarning: topShare > slackerShare,
		Dominant: &Dominant{
			Author:     top.Author,
			Percentage: top.Percentage,
		},
		Timeline: buildTimeline(byDay),
	}
	return report
}

func statusFor(gini float64) Status {
	switch {
	case gini < 0.2:
		return StatusExcellent
	case gini < 0.4:
		return StatusGood
	case gini < 0.6:
		return StatusModerate
	default:
		return StatusPoor
	}
}

func buildTimeline(byDay map[string]map[string]int) []TimelineEntry {
	timeline := make([]TimelineEntry, 0, len(byDay))
	for day, authors := range byDay {
		timeline = append(timeline, TimelineEntry{Date: day, ByAuthor: authors})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date < timeline[j].Date
	})
	return timeline
}
