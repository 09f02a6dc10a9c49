package timeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/models"
)

// A Monday, so the first week bucket starts the day before.
var timelineNow = time.Date(2026, 4, 20, 15, 0, 0, 0, time.UTC)

var student = models.Student{ID: 1, Name: "Ada"}

func commitAt(sha string, t time.Time) models.Commit {
	return models.Commit{
		RepoID:       10,
		SHA:          sha,
		Author:       "Ada",
		Message:      "feat: build out the next assignment piece",
		LinesChanged: 40,
		CommitDate:   t,
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	report := New().Analyze(student, nil, nil, timelineNow)

	assert.Equal(t, uint(1), report.StudentID)
	assert.Empty(t, report.Timeline)
	assert.Empty(t, report.Markers)
	assert.Empty(t, report.Milestones)
	assert.Equal(t, 0, report.Summary.TotalCommits)
}

func TestWeekStart(t *testing.T) {
	// 2026-04-20 is a Monday; its week starts Sunday 2026-04-19.
	start := weekStart(timelineNow)
	assert.Equal(t, time.Date(2026, 4, 19, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Weekday(0), start.Weekday())

	// A Sunday is its own week start.
	sunday := time.Date(2026, 4, 19, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 19, 0, 0, 0, 0, time.UTC), weekStart(sunday))
}

func TestAnalyzeWeeklyBuckets(t *testing.T) {
	commits := []models.Commit{
		// Week of Apr 5: two commits.
		commitAt("a", time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)),
		commitAt("b", time.Date(2026, 4, 8, 10, 0, 0, 0, time.UTC)),
		// Week of Apr 12: one commit.
		commitAt("c", time.Date(2026, 4, 14, 10, 0, 0, 0, time.UTC)),
		// Week of Apr 19: one commit.
		commitAt("d", time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)),
	}

	report := New().Analyze(student, commits, nil, timelineNow)

	require.Len(t, report.Timeline, 3)
	assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), report.Timeline[0].WeekStart)
	assert.Equal(t, []int{2, 1, 1}, []int{report.Timeline[0].Commits, report.Timeline[1].Commits, report.Timeline[2].Commits})
	assert.Equal(t, []int{2, 3, 4}, []int{report.Timeline[0].CumulativeCommits, report.Timeline[1].CumulativeCommits, report.Timeline[2].CumulativeCommits})

	for _, week := range report.Timeline {
		assert.Equal(t, quality.GradeA, week.QualityGrade)
		assert.NotEmpty(t, week.Topics)
		assert.Equal(t, "feat", week.Topics[0])
	}

	assert.Equal(t, 3, report.Summary.TotalWeeks)
	assert.Equal(t, 4, report.Summary.TotalCommits)
	assert.InDelta(t, 1.3, report.Summary.AvgCommitsPerWeek, 0.001)
}

func TestAnalyzeEmptyWeekGetsNAGrade(t *testing.T) {
	commits := []models.Commit{
		commitAt("a", timelineNow.AddDate(0, 0, -15)),
		commitAt("b", timelineNow.AddDate(0, 0, -1)),
	}

	report := New().Analyze(student, commits, nil, timelineNow)

	require.GreaterOrEqual(t, len(report.Timeline), 3)
	middle := report.Timeline[1]
	assert.Equal(t, 0, middle.Commits)
	assert.Equal(t, quality.GradeNone, middle.QualityGrade)
	assert.Empty(t, middle.Topics)
}

func TestMarkers(t *testing.T) {
	var commits []models.Commit
	for i := 0; i < 30; i++ {
		commits = append(commits, commitAt(fmt.Sprintf("s%d", i), timelineNow.AddDate(0, 0, -40+i)))
	}

	report := New().Analyze(student, commits, nil, timelineNow)

	require.Len(t, report.Markers, 3)
	assert.Equal(t, MarkerFirst, report.Markers[0].Type)
	assert.Equal(t, "First Commit", report.Markers[0].Label)
	assert.Equal(t, commits[0].CommitDate, report.Markers[0].AchievedAt)

	assert.Equal(t, 10, report.Markers[1].Threshold)
	assert.Equal(t, commits[9].CommitDate, report.Markers[1].AchievedAt)
	assert.Equal(t, "10 Commits!", report.Markers[1].Label)

	assert.Equal(t, 25, report.Markers[2].Threshold)
	assert.Equal(t, commits[24].CommitDate, report.Markers[2].AchievedAt)
}

func TestMilestoneProgress(t *testing.T) {
	commits := []models.Commit{
		commitAt("a", timelineNow.AddDate(0, 0, -20)),
		commitAt("b", timelineNow.AddDate(0, 0, -18)),
		commitAt("c", timelineNow.AddDate(0, 0, -2)),
	}
	milestones := []models.Milestone{
		{ID: 1, Name: "Checkpoint 1", Date: timelineNow.AddDate(0, 0, -10), RequiredCommits: 2},
		{ID: 2, Name: "Checkpoint 2", Date: timelineNow.AddDate(0, 0, -10), RequiredCommits: 10},
		{ID: 3, Name: "Final", Date: timelineNow.AddDate(0, 0, 10), RequiredCommits: 3},
		{ID: 4, Name: "Stretch", Date: timelineNow.AddDate(0, 0, 10), RequiredCommits: 50},
	}

	report := New().Analyze(student, commits, milestones, timelineNow)

	require.Len(t, report.Milestones, 4)

	assert.Equal(t, StatusCompleted, report.Milestones[0].Status)
	assert.Equal(t, 2, report.Milestones[0].CommitsAchieved)
	assert.Equal(t, 100, report.Milestones[0].Progress)

	assert.Equal(t, StatusMissed, report.Milestones[1].Status)
	assert.Equal(t, 20, report.Milestones[1].Progress)

	assert.Equal(t, StatusAhead, report.Milestones[2].Status)
	assert.Equal(t, 3, report.Milestones[2].CommitsAchieved)

	assert.Equal(t, StatusInProgress, report.Milestones[3].Status)
	assert.Equal(t, 6, report.Milestones[3].Progress)
	assert.False(t, report.Milestones[3].IsMet)
}

func TestVelocitySlope(t *testing.T) {
	weeks := []Week{{Commits: 1}, {Commits: 3}, {Commits: 5}}
	assert.InDelta(t, 2.0, velocitySlope(weeks), 0.001)

	flat := []Week{{Commits: 4}, {Commits: 4}, {Commits: 4}}
	assert.InDelta(t, 0.0, velocitySlope(flat), 0.001)

	assert.Zero(t, velocitySlope([]Week{{Commits: 9}}))
}
