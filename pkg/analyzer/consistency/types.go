package consistency

// DayCount is one heatmap cell: a calendar day, its commit count, and a
// 0-4 display intensity.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Report describes how evenly commits are spread over the trailing window.
type Report struct {
	ConsistencyScore   int            `json:"consistency_score"`
	IsCramming         bool           `json:"is_cramming"`
	CrammingPercentage int            `json:"cramming_percentage"`
	Heatmap            []DayCount     `json:"heatmap_data"`
	CommitsByDay       map[string]int `json:"commits_by_day"`
	Variance           float64        `json:"variance"`
	ActiveDays         int            `json:"active_days"`
	ActivityRate       int            `json:"activity_rate"`
	RecentCommits      int            `json:"recent_commits"`
	TotalCommits       int            `json:"total_commits"`
	AvgPerActiveDay    float64        `json:"avg_per_active_day"`
}
