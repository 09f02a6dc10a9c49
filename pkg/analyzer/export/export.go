// Package export flattens per-student analytics into rows for JSON or CSV
// download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/analyzer/streak"
	"github.com/avelora/classpulse/pkg/models"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Row is one student's flattened analytics.
type Row struct {
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	TotalCommits      int           `json:"total_commits"`
	Repositories      int           `json:"repositories"`
	ActiveDays        int           `json:"active_days"`
	QualityGrade      quality.Grade `json:"quality_grade"`
	QualityPercentage int           `json:"quality_percentage"`
	CurrentStreak     int           `json:"current_streak"`
	LongestStreak     int           `json:"longest_streak"`
	LastCommit        *time.Time    `json:"last_commit"`
}

// Payload is the JSON export envelope.
type Payload struct {
	Format      Format    `json:"format"`
	GeneratedAt time.Time `json:"generated_at"`
	Data        []Row     `json:"data"`
}

var csvHeaders = []string{
	"Name", "Email", "Total Commits", "Repositories", "Active Days",
	"Quality Grade", "Quality %", "Current Streak", "Longest Streak", "Last Commit",
}

// Exporter builds export rows.
type Exporter struct {
	quality     *quality.Analyzer
	consistency *consistency.Analyzer
}

// Option is a functional option for configuring Exporter.
type Option func(*Exporter)

// WithQuality overrides the quality analyzer.
func WithQuality(a *quality.Analyzer) Option {
	return func(e *Exporter) { e.quality = a }
}

// WithConsistency overrides the consistency analyzer.
func WithConsistency(a *consistency.Analyzer) Option {
	return func(e *Exporter) { e.consistency = a }
}

// New creates an exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		quality:     quality.New(),
		consistency: consistency.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rows computes one row per student, in input order.
func (e *Exporter) Rows(students []models.Student, repos []models.Repository, commits []models.Commit, now time.Time) []Row {
	repoOwner := make(map[uint]uint, len(repos))
	repoCount := make(map[uint]int)
	for _, r := range repos {
		repoOwner[r.ID] = r.StudentID
		repoCount[r.StudentID]++
	}
	commitsByStudent := make(map[uint][]models.Commit)
	for _, c := range commits {
		if sid, ok := repoOwner[c.RepoID]; ok {
			commitsByStudent[sid] = append(commitsByStudent[sid], c)
		}
	}

	rows := make([]Row, 0, len(students))
	for _, student := range students {
		sc := commitsByStudent[student.ID]
		q := e.quality.Analyze(sc)
		c := e.consistency.Analyze(sc, now)
		s := streak.Calculate(sc, now)

		row := Row{
			Name:              student.Name,
			Email:             student.Email,
			TotalCommits:      len(sc),
			Repositories:      repoCount[student.ID],
			ActiveDays:        c.ActiveDays,
			QualityGrade:      q.Grade,
			QualityPercentage: q.MessageQualityScore,
			CurrentStreak:     s.CurrentStreak,
			LongestStreak:     s.LongestStreak,
		}
		for i := range sc {
			if row.LastCommit == nil || sc[i].CommitDate.After(*row.LastCommit) {
				t := sc[i].CommitDate
				row.LastCommit = &t
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// JSON wraps rows in the dated export envelope.
func (e *Exporter) JSON(students []models.Student, repos []models.Repository, commits []models.Commit, now time.Time) *Payload {
	return &Payload{
		Format:      FormatJSON,
		GeneratedAt: now,
		Data:        e.Rows(students, repos, commits, now),
	}
}

// CSV renders rows as an RFC 4180 document. Fields containing commas or
// quotes come out properly quoted.
func (e *Exporter) CSV(students []models.Student, repos []models.Repository, commits []models.Commit, now time.Time) (string, error) {
	rows := e.Rows(students, repos, commits, now)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		last := "N/A"
		if row.LastCommit != nil {
			last = row.LastCommit.UTC().Format(time.RFC3339)
		}
		record := []string{
			row.Name,
			row.Email,
			strconv.Itoa(row.TotalCommits),
			strconv.Itoa(row.Repositories),
			strconv.Itoa(row.ActiveDays),
			string(row.QualityGrade),
			strconv.Itoa(row.QualityPercentage),
			strconv.Itoa(row.CurrentStreak),
			strconv.Itoa(row.LongestStreak),
			last,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return buf.String(), nil
}
