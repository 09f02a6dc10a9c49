// Package quality grades commit messages and commit sizes.
package quality

import (
	"math"
	"regexp"
	"strings"

	"github.com/avelora/classpulse/pkg/models"
)

// Default thresholds for commit classification.
const (
	DefaultHugeCommitLines = 500
	DefaultMinMessageLen   = 5
)

// Low-information messages matched exactly (case-insensitive, trimmed).
var badExact = map[string]struct{}{
	"fix":     {},
	"update":  {},
	"changes": {},
	"wip":     {},
	"test":    {},
	"commit":  {},
	"save":    {},
	"done":    {},
}

// Low-information message prefixes.
var badPrefixes = []string{"asdf", "temp", "stuff", "misc"}

var punctOnly = regexp.MustCompile(`^[[:punct:]]+$`)

// Analyzer scores commit professionalism.
type Analyzer struct {
	hugeLines int
	minMsgLen int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithHugeCommitLines sets the lines-changed threshold above which a commit
// counts as huge.
func WithHugeCommitLines(lines int) Option {
	return func(a *Analyzer) {
		if lines > 0 {
			a.hugeLines = lines
		}
	}
}

// WithMinMessageLength sets the minimum message length below which a
// message counts as bad.
func WithMinMessageLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.minMsgLen = n
		}
	}
}

// New creates a new quality analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		hugeLines: DefaultHugeCommitLines,
		minMsgLen: DefaultMinMessageLen,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze grades the given commits. Zero commits yields a zero report with
// GradeNone rather than an error.
func (a *Analyzer) Analyze(commits []models.Commit) *Report {
	report := &Report{
		Grade:           GradeNone,
		CommitSizeScore: 100,
		TotalCommits:    len(commits),
	}
	if len(commits) == 0 {
		return report
	}

	var totalLines int
	for _, c := range commits {
		if a.isBadMessage(c.Message) {
			report.BadMessages++
		} else {
			report.GoodMessages++
		}

		totalLines += c.LinesChanged
		if c.LinesChanged > a.hugeLines {
			report.HugeCommits++
		}
	}

	total := float64(len(commits))
	msgScore := float64(report.GoodMessages) / total * 100
	sizeScore := math.Max(0, 100-float64(report.HugeCommits)/total*100)
	overall := msgScore*0.6 + sizeScore*0.4

	report.MessageQualityScore = int(math.Round(msgScore))
	report.CommitSizeScore = int(math.Round(sizeScore))
	report.OverallScore = int(math.Round(overall))
	report.Grade = GradeFor(overall)
	report.AvgLinesPerCommit = int(math.Round(float64(totalLines) / total))

	return report
}

// isBadMessage reports whether a commit message carries no useful
// information.
func (a *Analyzer) isBadMessage(msg string) bool {
	trimmed := strings.TrimSpace(msg)
	if len(trimmed) < a.minMsgLen {
		return true
	}

	lower := strings.ToLower(trimmed)
	if _, ok := badExact[lower]; ok {
		return true
	}
	for _, prefix := range badPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return punctOnly.MatchString(trimmed)
}
