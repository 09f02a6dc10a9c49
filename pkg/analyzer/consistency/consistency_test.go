package consistency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/classpulse/pkg/models"
)

var now = time.Date(2026, 4, 20, 15, 0, 0, 0, time.UTC)

func commitAt(t time.Time) models.Commit {
	return models.Commit{SHA: t.Format(time.RFC3339), CommitDate: t, Message: "feat: work"}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	report := New().Analyze(nil, now)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.ConsistencyScore)
	assert.False(t, report.IsCramming)
	assert.Empty(t, report.Heatmap)
	assert.Empty(t, report.CommitsByDay)
	assert.Equal(t, 0, report.TotalCommits)
}

func TestAnalyzeSteadyDailyWork(t *testing.T) {
	// One commit per day for ten consecutive days, well clear of the
	// cramming window.
	var commits []models.Commit
	for i := 6; i < 16; i++ {
		commits = append(commits, commitAt(now.AddDate(0, 0, -i)))
	}

	report := New().Analyze(commits, now)
	assert.False(t, report.IsCramming)
	assert.GreaterOrEqual(t, report.ConsistencyScore, 95)
	assert.Equal(t, 10, report.ActiveDays)
	assert.Equal(t, 10, report.TotalCommits)
	assert.Equal(t, 1.0, report.AvgPerActiveDay)
}

func TestAnalyzeCramming(t *testing.T) {
	var commits []models.Commit
	for i := 0; i < 8; i++ {
		commits = append(commits, commitAt(now.Add(-time.Duration(i+1)*3*time.Hour)))
	}
	commits = append(commits, commitAt(now.AddDate(0, 0, -20)))
	commits = append(commits, commitAt(now.AddDate(0, 0, -30)))

	report := New().Analyze(commits, now)
	assert.Equal(t, 80, report.CrammingPercentage)
	assert.True(t, report.IsCramming)
	assert.Equal(t, 8, report.RecentCommits)
}

func TestAnalyzeHeatmapShape(t *testing.T) {
	commits := []models.Commit{
		commitAt(now.AddDate(0, 0, -3)),
		commitAt(now.AddDate(0, 0, -3)),
		commitAt(now.AddDate(0, 0, -10)),
	}

	report := New(WithWindowDays(30)).Analyze(commits, now)
	require.Len(t, report.Heatmap, 30)
	for _, cell := range report.Heatmap {
		assert.GreaterOrEqual(t, cell.Level, 0)
		assert.LessOrEqual(t, cell.Level, 4)
	}

	// The busiest day carries the maximum intensity.
	busiest := models.DateKey(now.AddDate(0, 0, -3))
	var found bool
	for _, cell := range report.Heatmap {
		if cell.Date == busiest {
			found = true
			assert.Equal(t, 2, cell.Count)
			assert.Equal(t, 4, cell.Level)
		}
	}
	assert.True(t, found)
}

func TestAnalyzeCommitsOutsideWindowIgnoredInBuckets(t *testing.T) {
	commits := []models.Commit{
		commitAt(now.AddDate(0, 0, -90)),
		commitAt(now.AddDate(0, 0, -2)),
	}

	report := New().Analyze(commits, now)
	assert.Equal(t, 1, report.ActiveDays)
	// The stale commit still counts toward the cramming denominator.
	assert.Equal(t, 50, report.CrammingPercentage)
	assert.False(t, report.IsCramming)
	assert.Equal(t, 2, report.TotalCommits)
}

func TestAnalyzeActivityRate(t *testing.T) {
	var commits []models.Commit
	for i := 5; i < 20; i++ {
		commits = append(commits, commitAt(now.AddDate(0, 0, -i)))
	}

	report := New(WithWindowDays(30)).Analyze(commits, now)
	assert.Equal(t, 15, report.ActiveDays)
	assert.Equal(t, 50, report.ActivityRate)
}
