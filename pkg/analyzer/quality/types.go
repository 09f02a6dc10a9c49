package quality

// Grade is a letter grade for commit professionalism.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"

	// GradeNone marks a report built from zero commits. "No data" is
	// deliberately distinguishable from a failing grade.
	GradeNone Grade = "N/A"
)

// GradeFor maps an overall score to a letter grade.
func GradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

// Report summarizes commit-message and commit-size quality for one set of
// commits. Scores are 0-100, rounded to the nearest integer.
type Report struct {
	Grade               Grade `json:"grade"`
	OverallScore        int   `json:"overall_score"`
	MessageQualityScore int   `json:"message_quality_score"`
	CommitSizeScore     int   `json:"commit_size_score"`
	GoodMessages        int   `json:"good_messages"`
	BadMessages         int   `json:"bad_messages"`
	HugeCommits         int   `json:"huge_commits"`
	TotalCommits        int   `json:"total_commits"`
	AvgLinesPerCommit   int   `json:"avg_lines_per_commit"`
}
