// Package techstack rolls up the technologies declared across registered
// repositories.
package techstack

import (
	"math"
	"sort"
	"strings"

	"github.com/avelora/classpulse/pkg/models"
)

type techInfo struct {
	name     string
	category string
}

// categoryMap normalizes common dependency names to display names with a
// category. Unlisted entries fall through as-is under "Other".
var categoryMap = map[string]techInfo{
	"react":        {"React", "Frontend"},
	"vue":          {"Vue.js", "Frontend"},
	"angular":      {"Angular", "Frontend"},
	"next":         {"Next.js", "Frontend"},
	"svelte":       {"Svelte", "Frontend"},
	"tailwindcss":  {"Tailwind CSS", "Frontend"},
	"bootstrap":    {"Bootstrap", "Frontend"},
	"express":      {"Express.js", "Backend"},
	"fastapi":      {"FastAPI", "Backend"},
	"django":       {"Django", "Backend"},
	"flask":        {"Flask", "Backend"},
	"nestjs":       {"NestJS", "Backend"},
	"mongodb":      {"MongoDB", "Database"},
	"mongoose":     {"MongoDB", "Database"},
	"pg":           {"PostgreSQL", "Database"},
	"mysql":        {"MySQL", "Database"},
	"prisma":       {"Prisma", "Database"},
	"sequelize":    {"Sequelize", "Database"},
	"sqlite":       {"SQLite", "Database"},
	"supabase":     {"Supabase", "Database"},
	"firebase":     {"Firebase", "Database"},
	"typescript":   {"TypeScript", "Language"},
	"vite":         {"Vite", "Build Tool"},
	"webpack":      {"Webpack", "Build Tool"},
	"jest":         {"Jest", "Testing"},
	"axios":        {"Axios", "HTTP Client"},
	"redux":        {"Redux", "State Management"},
	"zustand":      {"Zustand", "State Management"},
	"pandas":       {"Pandas", "Data Science"},
	"numpy":        {"NumPy", "Data Science"},
	"tensorflow":   {"TensorFlow", "ML/AI"},
	"pytorch":      {"PyTorch", "ML/AI"},
	"scikit-learn": {"Scikit-learn", "ML/AI"},
}

// Tech is one technology's usage across the class.
type Tech struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Category   string `json:"category"`
	Percentage int    `json:"percentage"`
}

// Report is the class-wide technology roll-up.
type Report struct {
	Technologies      []Tech            `json:"technologies"`
	ByCategory        map[string][]Tech `json:"by_category"`
	TotalRepositories int               `json:"total_repositories"`
}

// Analyze counts declared technologies across repositories.
func Analyze(repos []models.Repository) *Report {
	type counter struct {
		count    int
		category string
	}
	counts := make(map[string]*counter)

	for _, repo := range repos {
		for _, tech := range repo.TechStack {
			info, ok := categoryMap[strings.ToLower(tech)]
			if !ok {
				info = techInfo{name: tech, category: "Other"}
			}
			if counts[info.name] == nil {
				counts[info.name] = &counter{category: info.category}
			}
			counts[info.name].count++
		}
	}

	totalRepos := len(repos)
	techs := make([]Tech, 0, len(counts))
	for name, c := range counts {
		pct := 0
		if totalRepos > 0 {
			pct = int(math.Round(float64(c.count) / float64(totalRepos) * 100))
		}
		techs = append(techs, Tech{
			Name:       name,
			Count:      c.count,
			Category:   c.category,
			Percentage: pct,
		})
	}
	sort.Slice(techs, func(i, j int) bool {
		if techs[i].Count != techs[j].Count {
			return techs[i].Count > techs[j].Count
		}
		return techs[i].Name < techs[j].Name
	})

	byCategory := make(map[string][]Tech)
	for _, tech := range techs {
		byCategory[tech.Category] = append(byCategory[tech.Category], tech)
	}

	return &Report{
		Technologies:      techs,
		ByCategory:        byCategory,
		TotalRepositories: totalRepos,
	}
}
