// Package streak computes daily-commit streaks from commit timestamps.
package streak

import (
	"sort"
	"time"

	"github.com/avelora/classpulse/pkg/models"
)

// displayDates is how many trailing active dates a report carries.
const displayDates = 30

// Report describes a student's commit streaks.
type Report struct {
	CurrentStreak   int      `json:"current_streak"`
	LongestStreak   int      `json:"longest_streak"`
	LongestStart    string   `json:"longest_streak_start,omitempty"`
	LongestEnd      string   `json:"longest_streak_end,omitempty"`
	TotalActiveDays int      `json:"total_active_days"`
	StreakDates     []string `json:"streak_dates"`
}

// Calculate reduces commits to unique calendar dates and walks them for the
// longest run of consecutive days, plus the run currently alive relative to
// now. Zero commits yields a zero report.
func Calculate(commits []models.Commit, now time.Time) *Report {
	report := &Report{StreakDates: []string{}}
	if len(commits) == 0 {
		return report
	}

	seen := make(map[string]struct{}, len(commits))
	for _, c := range commits {
		seen[models.DateKey(c.CommitDate)] = struct{}{}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	report.TotalActiveDays = len(dates)
	if len(dates) > displayDates {
		report.StreakDates = dates[len(dates)-displayDates:]
	} else {
		report.StreakDates = dates
	}

	longest := 1
	run := 1
	runStart := dates[0]
	report.LongestStart = dates[0]
	report.LongestEnd = dates[0]

	for i := 1; i < len(dates); i++ {
		if dayGap(dates[i-1], dates[i]) == 1 {
			run++
			if run > longest {
				longest = run
				report.LongestStart = runStart
				report.LongestEnd = dates[i]
			}
		} else {
			run = 1
			runStart = dates[i]
		}
	}
	report.LongestStreak = longest

	// The current streak is alive only if the most recent active date is
	// today or yesterday.
	today := models.DateKey(now)
	yesterday := models.DateKey(now.AddDate(0, 0, -1))
	last := dates[len(dates)-1]
	if last != today && last != yesterday {
		return report
	}

	current := 1
	for i := len(dates) - 2; i >= 0; i-- {
		if dayGap(dates[i], dates[i+1]) != 1 {
			break
		}
		current++
	}
	report.CurrentStreak = current

	return report
}

// dayGap returns the whole-day distance between two YYYY-MM-DD keys.
func dayGap(a, b string) int {
	ta, _ := time.Parse("2006-01-02", a)
	tb, _ := time.Parse("2006-01-02", b)
	return int(tb.Sub(ta).Hours() / 24)
}
