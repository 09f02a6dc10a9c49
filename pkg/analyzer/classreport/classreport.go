// Package classreport aggregates per-repository analyzer output into
// class-wide views: grade distribution, cramming alerts, averages, and a
// trailing 12-week activity heatmap.
package classreport

import (
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/avelora/classpulse/pkg/analyzer/balance"
	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/analyzer/techstack"
	"github.com/avelora/classpulse/pkg/models"
)

// Heatmap grid dimensions.
const (
	heatmapWeeks = 12
	heatmapDays  = 7
)

// Analyzer aggregates the class. Per-repository work fans out over a
// worker pool; merge order does not affect the result.
type Analyzer struct {
	quality     *quality.Analyzer
	consistency *consistency.Analyzer
	workers     int
	onRepo      func()
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithQuality overrides the quality analyzer used per repository.
func WithQuality(a *quality.Analyzer) Option {
	return func(c *Analyzer) { c.quality = a }
}

// WithConsistency overrides the consistency analyzer used per repository.
func WithConsistency(a *consistency.Analyzer) Option {
	return func(c *Analyzer) { c.consistency = a }
}

// WithWorkers caps the per-repository worker pool.
func WithWorkers(n int) Option {
	return func(c *Analyzer) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithProgress registers a callback invoked once per analyzed repository.
func WithProgress(fn func()) Option {
	return func(c *Analyzer) { c.onRepo = fn }
}

// New creates a class analyzer with default sub-analyzers.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		quality:     quality.New(),
		consistency: consistency.New(),
		workers:     runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// repoResult is the per-repository slice of the roll-up, merged after the
// pool drains.
type repoResult struct {
	row     StudentRow
	alert   *Alert
	slacker bool
}

// Analyze builds the class report for the given snapshot at the given
// reference time.
func (a *Analyzer) Analyze(students []models.Student, repos []models.Repository, commits []models.Commit, now time.Time) *Report {
	commitsByRepo := make(map[uint][]models.Commit)
	for _, c := range commits {
		commitsByRepo[c.RepoID] = append(commitsByRepo[c.RepoID], c)
	}
	reposByStudent := make(map[uint][]models.Repository)
	for _, r := range repos {
		reposByStudent[r.StudentID] = append(reposByStudent[r.StudentID], r)
	}

	var (
		mu      sync.Mutex
		results []repoResult
	)

	p := pool.New().WithMaxGoroutines(a.workers)
	for _, student := range students {
		for _, repo := range reposByStudent[student.ID] {
			p.Go(func() {
				res := a.analyzeRepo(student, repo, commitsByRepo[repo.ID], now)
				mu.Lock()
				results = append(results, res)
				if a.onRepo != nil {
					a.onRepo()
				}
				mu.Unlock()
			})
		}
	}
	p.Wait()

	report := &Report{
		TotalStudents:     len(students),
		TotalRepos:        len(results),
		TotalCommits:      len(commits),
		GradeDistribution: map[quality.Grade]int{},
		CrammingAlerts:    []Alert{},
		TechStack:         techstack.Analyze(repos),
		Students:          make([]StudentRow, 0, len(results)),
	}
	for _, g := range []quality.Grade{quality.GradeA, quality.GradeB, quality.GradeC, quality.GradeD, quality.GradeF} {
		report.GradeDistribution[g] = 0
	}

	var totalConsistency, totalQuality int
	for _, res := range results {
		report.Students = append(report.Students, res.row)
		totalConsistency += res.row.ConsistencyScore
		totalQuality += res.row.QualityScore

		if _, ok := report.GradeDistribution[res.row.QualityGrade]; ok {
			report.GradeDistribution[res.row.QualityGrade]++
		}
		if res.alert != nil {
			report.CrammingAlerts = append(report.CrammingAlerts, *res.alert)
		}
		if res.slacker {
			report.Summary.SlackerWarnings++
		}
	}

	// Deterministic ordering regardless of pool scheduling.
	sort.Slice(report.Students, func(i, j int) bool {
		if report.Students[i].ConsistencyScore != report.Students[j].ConsistencyScore {
			return report.Students[i].ConsistencyScore > report.Students[j].ConsistencyScore
		}
		return report.Students[i].RepoID < report.Students[j].RepoID
	})
	sort.Slice(report.CrammingAlerts, func(i, j int) bool {
		if report.CrammingAlerts[i].Student != report.CrammingAlerts[j].Student {
			return report.CrammingAlerts[i].Student < report.CrammingAlerts[j].Student
		}
		return report.CrammingAlerts[i].Repo < report.CrammingAlerts[j].Repo
	})

	repoCount := len(results)
	report.Summary.TotalStudents = len(students)
	report.Summary.TotalRepositories = repoCount
	report.Summary.CrammingAlerts = len(report.CrammingAlerts)
	if repoCount > 0 {
		report.Summary.AvgConsistencyScore = int(math.Round(float64(totalConsistency) / float64(repoCount)))
		report.Summary.AvgQualityScore = int(math.Round(float64(totalQuality) / float64(repoCount)))
		report.AvgCommitsPerRepo = math.Round(float64(len(commits))/float64(repoCount)*10) / 10
	}

	report.Heatmap = buildHeatmap(commits, now)

	return report
}

func (a *Analyzer) analyzeRepo(student models.Student, repo models.Repository, commits []models.Commit, now time.Time) repoResult {
	q := a.quality.Analyze(commits)
	c := a.consistency.Analyze(commits, now)
	b := balance.Analyze(commits)

	res := repoResult{
		row: StudentRow{
			StudentID:        student.ID,
			StudentName:      student.Name,
			RepoID:           repo.ID,
			RepoName:         repo.FullName(),
			ConsistencyScore: c.ConsistencyScore,
			QualityGrade:     q.Grade,
			QualityScore:     q.OverallScore,
			IsCramming:       c.IsCramming,
			TotalCommits:     len(commits),
		},
	}
	if b != nil && b.HasSlackerWarning {
		res.row.HasSlackerWarning = true
		res.slacker = true
	}
	if c.IsCramming {
		res.alert = &Alert{
			Student:    student.Name,
			Repo:       repo.Name,
			Percentage: c.CrammingPercentage,
		}
	}
	return res
}

// buildHeatmap buckets all commits into a 12-week by 7-day grid anchored at
// now, oldest week first.
func buildHeatmap(commits []models.Commit, now time.Time) []HeatCell {
	counts := make(map[string]int)
	for _, c := range commits {
		counts[models.DateKey(c.CommitDate)]++
	}

	cells := make([]HeatCell, 0, heatmapWeeks*heatmapDays)
	for week := 0; week < heatmapWeeks; week++ {
		for day := 0; day < heatmapDays; day++ {
			date := now.UTC().AddDate(0, 0, -(heatmapWeeks-1-week)*7-(heatmapDays-1-day))
			key := models.DateKey(date)
			cells = append(cells, HeatCell{
				Week:  week,
				Day:   day,
				Count: counts[key],
				Date:  key,
			})
		}
	}
	return cells
}
