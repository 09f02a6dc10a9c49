// Package summary produces a narrative digest of one repository's commit
// history. The rule-based generator is deterministic; the Generator
// interface leaves room for a model-backed implementation.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avelora/classpulse/pkg/analyzer/consistency"
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/models"
)

// Generator turns a commit history into a narrative report.
type Generator interface {
	Generate(student models.Student, repo models.Repository, commits []models.Commit, now time.Time) *Report
}

// Stats is the numeric block attached to the narrative.
type Stats struct {
	TotalCommits      int           `json:"total_commits"`
	ActiveDays        int           `json:"active_days"`
	AvgCommitsPerDay  float64       `json:"avg_commits_per_day"`
	QualityGrade      quality.Grade `json:"quality_grade"`
	MeaningfulPercent int           `json:"meaningful_percent"`
}

// Report is the generated narrative plus its supporting signals.
type Report struct {
	Summary         string    `json:"summary"`
	Patterns        []string  `json:"patterns"`
	Recommendations []string  `json:"recommendations"`
	Topics          []string  `json:"topics"`
	Stats           Stats     `json:"stats"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// recentWindow caps how many of the newest messages feed topic detection.
const recentWindow = 50

// topicRule maps message keywords to a focus-area label. Order fixes the
// output order.
type topicRule struct {
	label    string
	keywords []string
}

var topicRules = []topicRule{
	{"authentication", []string{"auth", "login"}},
	{"UI/frontend", []string{"ui", "component", "design"}},
	{"API development", []string{"api", "endpoint", "route"}},
	{"database", []string{"database", "query", "model"}},
	{"testing", []string{"test"}},
	{"bug fixes", []string{"fix", "bug"}},
	{"code refactoring", []string{"refactor", "clean"}},
	{"performance optimization", []string{"performance", "optim"}},
	{"documentation", []string{"doc", "readme"}},
}

// RuleBased is the deterministic Generator.
type RuleBased struct {
	quality     *quality.Analyzer
	consistency *consistency.Analyzer
}

// Option is a functional option for configuring RuleBased.
type Option func(*RuleBased)

// WithQuality overrides the quality analyzer.
func WithQuality(a *quality.Analyzer) Option {
	return func(g *RuleBased) { g.quality = a }
}

// WithConsistency overrides the consistency analyzer.
func WithConsistency(a *consistency.Analyzer) Option {
	return func(g *RuleBased) { g.consistency = a }
}

// New creates the rule-based generator.
func New(opts ...Option) *RuleBased {
	g := &RuleBased{
		quality:     quality.New(),
		consistency: consistency.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Generator = (*RuleBased)(nil)

// Generate builds the narrative for one repository's commits.
func (g *RuleBased) Generate(student models.Student, repo models.Repository, commits []models.Commit, now time.Time) *Report {
	if len(commits) == 0 {
		return &Report{
			Summary:         "No commits found for this repository.",
			Patterns:        []string{},
			Recommendations: []string{"Start committing code to build your project history."},
			Topics:          []string{},
			Stats:           Stats{QualityGrade: quality.GradeNone},
			GeneratedAt:     now,
		}
	}

	topics := detectTopics(commits)
	q := g.quality.Analyze(commits)
	c := g.consistency.Analyze(commits, now)

	report := &Report{
		Topics:          topics,
		Patterns:        patterns(commits, topics, q, c),
		Recommendations: recommendations(repo, commits, topics, q, c),
		Stats: Stats{
			TotalCommits:      len(commits),
			ActiveDays:        c.ActiveDays,
			AvgCommitsPerDay:  c.AvgPerActiveDay,
			QualityGrade:      q.Grade,
			MeaningfulPercent: q.MessageQualityScore,
		},
		GeneratedAt: now,
	}
	report.Summary = compose(student, commits, topics, q, c)
	return report
}

// detectTopics scans the newest messages against the topic rules.
func detectTopics(commits []models.Commit) []string {
	recent := make([]models.Commit, len(commits))
	copy(recent, commits)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].CommitDate.After(recent[j].CommitDate)
	})
	if len(recent) > recentWindow {
		recent = recent[:recentWindow]
	}

	var sb strings.Builder
	for _, c := range recent {
		sb.WriteString(strings.ToLower(c.Message))
		sb.WriteByte(' ')
	}
	corpus := sb.String()

	topics := []string{}
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(corpus, kw) {
				topics = append(topics, rule.label)
				break
			}
		}
	}
	return topics
}

func patterns(commits []models.Commit, topics []string, q *quality.Report, c *consistency.Report) []string {
	var out []string

	switch avg := c.AvgPerActiveDay; {
	case avg > 3:
		out = append(out, fmt.Sprintf("High commit frequency: averaging %.1f commits per active day", avg))
	case avg > 1:
		out = append(out, fmt.Sprintf("Moderate commit frequency: averaging %.1f commits per active day", avg))
	default:
		out = append(out, fmt.Sprintf("Low commit frequency: averaging %.1f commits per active day", avg))
	}

	if hour, ok := peakHour(commits); ok {
		out = append(out, fmt.Sprintf("Most active during %s hours (peak: %d:00)", timeOfDay(hour), hour))
	}

	if len(topics) > 0 {
		out = append(out, "Primary focus areas: "+strings.Join(capTopics(topics), ", "))
	}

	switch score := q.MessageQualityScore; {
	case score > 80:
		out = append(out, "Excellent commit message quality with detailed descriptions")
	case score > 60:
		out = append(out, "Good commit messages with room for improvement")
	default:
		out = append(out, "Many commits have brief or unclear messages")
	}

	if c.IsCramming {
		out = append(out, fmt.Sprintf("Cramming detected: %d%% of commits in last 48 hours", c.CrammingPercentage))
	}
	return out
}

func recommendations(repo models.Repository, commits []models.Commit, topics []string, q *quality.Report, c *consistency.Report) []string {
	var out []string
	hasTopic := func(label string) bool {
		for _, t := range topics {
			if t == label {
				return true
			}
		}
		return false
	}

	if q.Grade == quality.GradeD || q.Grade == quality.GradeF {
		out = append(out, "Use more descriptive commit messages following conventional commit format (feat:, fix:, docs:, etc.)")
	}
	if c.IsCramming {
		out = append(out, "Spread your work more evenly throughout the project timeline to avoid last-minute cramming")
	}
	if c.ActiveDays < 5 && len(commits) > 10 {
		out = append(out, "Try to commit smaller changes more frequently rather than large batches")
	}
	if !hasTopic("testing") {
		out = append(out, "Consider adding unit tests to improve code reliability")
	}
	if !hasTopic("documentation") {
		out = append(out, "Add documentation commits to explain your code and setup instructions")
	}
	if avgMessageLength(commits) < 20 {
		out = append(out, `Write longer, more detailed commit messages explaining the "why" behind changes`)
	}
	if hasTech(repo, "React") && !hasTopic("testing") {
		out = append(out, "Consider adding React Testing Library for component tests")
	}
	if len(out) == 0 || q.Grade == quality.GradeA {
		out = append(out, "Great work! Keep maintaining this quality throughout the project")
	}
	return out
}

func compose(student models.Student, commits []models.Commit, topics []string, q *quality.Report, c *consistency.Report) string {
	name := student.Name
	if name == "" {
		name = "Student"
	}
	topicStr := "general development"
	if len(topics) > 0 {
		topicStr = strings.Join(capTopics(topics), ", ")
	}
	crammingNote := "The work appears to be spread consistently over the project duration."
	if c.IsCramming {
		crammingNote = "However, there is evidence of cramming behavior with majority of commits in the last 48 hours."
	}
	qualityNote := "Commit message quality could be improved - consider using more descriptive messages."
	if q.Grade == quality.GradeA || q.Grade == quality.GradeB {
		qualityNote = "Commit messages are descriptive and follow good practices."
	}
	return fmt.Sprintf("%s has been focusing primarily on %s, with %d total commits across %d active days. %s %s",
		name, topicStr, len(commits), c.ActiveDays, crammingNote, qualityNote)
}

func capTopics(topics []string) []string {
	if len(topics) > 3 {
		return topics[:3]
	}
	return topics
}

func peakHour(commits []models.Commit) (int, bool) {
	if len(commits) == 0 {
		return 0, false
	}
	var counts [24]int
	for _, c := range commits {
		counts[c.CommitDate.UTC().Hour()]++
	}
	peak := 0
	for h, n := range counts {
		if n > counts[peak] {
			peak = h
		}
	}
	return peak, true
}

func timeOfDay(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 21:
		return "evening"
	default:
		return "night"
	}
}

func avgMessageLength(commits []models.Commit) float64 {
	if len(commits) == 0 {
		return 0
	}
	total := 0
	for _, c := range commits {
		total += len(c.Message)
	}
	return float64(total) / float64(len(commits))
}

func hasTech(repo models.Repository, tech string) bool {
	for _, t := range repo.TechStack {
		if strings.EqualFold(t, tech) {
			return true
		}
	}
	return false
}
