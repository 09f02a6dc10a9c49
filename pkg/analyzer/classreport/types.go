package classreport

import (
	"github.com/avelora/classpulse/pkg/analyzer/quality"
	"github.com/avelora/classpulse/pkg/analyzer/techstack"
)

// Alert flags one repository whose recent commit share indicates cramming.
type Alert struct {
	Student    string `json:"student"`
	Repo       string `json:"repo"`
	Percentage int    `json:"percentage"`
}

// StudentRow is one repository's metrics in the class table.
type StudentRow struct {
	StudentID         uint          `json:"student_id"`
	StudentName       string        `json:"student_name"`
	RepoID            uint          `json:"repo_id"`
	RepoName          string        `json:"repo_name"`
	ConsistencyScore  int           `json:"consistency_score"`
	QualityGrade      quality.Grade `json:"quality_grade"`
	QualityScore      int           `json:"quality_score"`
	IsCramming        bool          `json:"is_cramming"`
	HasSlackerWarning bool          `json:"has_slacker_warning"`
	TotalCommits      int           `json:"total_commits"`
}

// HeatCell is one cell of the class-wide 12-week activity grid.
type HeatCell struct {
	Week  int    `json:"week"`
	Day   int    `json:"day"`
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// Summary carries the class-wide averages and alert counts.
type Summary struct {
	AvgConsistencyScore int `json:"avg_consistency_score"`
	AvgQualityScore     int `json:"avg_quality_score"`
	CrammingAlerts      int `json:"cramming_alerts"`
	SlackerWarnings     int `json:"slacker_warnings"`
	TotalStudents       int `json:"total_students"`
	TotalRepositories   int `json:"total_repositories"`
}

// Report is the full class analytics roll-up.
type Report struct {
	Summary           Summary               `json:"summary"`
	TotalStudents     int                   `json:"total_students"`
	TotalRepos        int                   `json:"total_repos"`
	TotalCommits      int                   `json:"total_commits"`
	AvgCommitsPerRepo float64               `json:"avg_commits_per_repo"`
	GradeDistribution map[quality.Grade]int `json:"grade_distribution"`
	CrammingAlerts    []Alert               `json:"cramming_alerts"`
	Heatmap           []HeatCell            `json:"heatmap"`
	TechStack         *techstack.Report     `json:"tech_stack"`
	Students          []StudentRow          `json:"student_analytics"`
}
