package balance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/classpulse/pkg/models"
)

func authorCommits(author string, n int) []models.Commit {
	commits := make([]models.Commit, n)
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	for i := range commits {
		commits[i] = models.Commit{
			Author:     author,
			CommitDate: base.AddDate(0, 0, i%14),
		}
	}
	return commits
}

func TestAnalyzeNoCommits(t *testing.T) {
	assert.Nil(t, Analyze(nil))
	assert.Nil(t, Analyze([]models.Commit{}))
}

func TestAnalyzeSingleAuthor(t *testing.T) {
	report := Analyze(authorCommits("ada", 12))
	require.NotNil(t, report)

	// One contributor is degenerate equality for the Gini measure, but the
	// dominant share still trips the warning.
	assert.Equal(t, 0.0, report.GiniCoefficient)
	assert.Equal(t, StatusExcellent, report.BalanceStatus)
	assert.True(t, report.HasSlackerWarning)
	require.NotNil(t, report.Dominant)
	assert.Equal(t, "ada", report.Dominant.Author)
	assert.Equal(t, 100, report.Dominant.Percentage)
}

func TestAnalyzeSlackerWatershed(t *testing.T) {
	warning := Analyze(append(authorCommits("ada", 81), authorCommits("bob", 19)...))
	require.NotNil(t, warning)
	assert.True(t, warning.HasSlackerWarning)

	ok := Analyze(append(authorCommits("ada", 79), authorCommits("bob", 21)...))
	require.NotNil(t, ok)
	assert.False(t, ok.HasSlackerWarning)

	// Exactly 80% is not over the threshold.
	boundary := Analyze(append(authorCommits("ada", 80), authorCommits("bob", 20)...))
	require.NotNil(t, boundary)
	assert.False(t, boundary.HasSlackerWarning)
}

func TestAnalyzeBalancedTeam(t *testing.T) {
	commits := append(authorCommits("ada", 10), authorCommits("bob", 10)...)
	commits = append(commits, authorCommits("eve", 10)...)

	report := Analyze(commits)
	require.NotNil(t, report)
	assert.Equal(t, 0.0, report.GiniCoefficient)
	assert.Equal(t, StatusExcellent, report.BalanceStatus)
	assert.False(t, report.HasSlackerWarning)
	assert.Len(t, report.Contributors, 3)
}

func TestAnalyzeSkewedTeam(t *testing.T) {
	commits := append(authorCommits("ada", 60), authorCommits("bob", 3)...)
	commits = append(commits, authorCommits("eve", 2)...)

	report := Analyze(commits)
	require.NotNil(t, report)
	assert.Greater(t, report.GiniCoefficient, 0.5)
	assert.True(t, report.HasSlackerWarning)
	assert.Equal(t, "ada", report.Contributors[0].Author)
	assert.Equal(t, 60, report.Contributors[0].CommitCount)
}

func TestAnalyzeTimeline(t *testing.T) {
	day1 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	commits := []models.Commit{
		{Author: "ada", CommitDate: day1},
		{Author: "bob", CommitDate: day1},
		{Author: "ada", CommitDate: day2},
	}

	report := Analyze(commits)
	require.NotNil(t, report)
	require.Len(t, report.Timeline, 2)
	assert.Equal(t, "2026-02-01", report.Timeline[0].Date)
	assert.Equal(t, map[string]int{"ada": 1, "bob": 1}, report.Timeline[0].ByAuthor)
	assert.Equal(t, map[string]int{"ada": 1}, report.Timeline[1].ByAuthor)
}

func TestAnalyzeMissingAuthorDefaults(t *testing.T) {
	commits := []models.Commit{{CommitDate: time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)}}

	report := Analyze(commits)
	require.NotNil(t, report)
	assert.Equal(t, "Unknown", report.Contributors[0].Author)
}
