package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/avelora/classpulse/pkg/models"
)

// Defaults for the GitHub API client.
const (
	DefaultBaseURL    = "https://api.github.com"
	DefaultPerPage    = 100
	DefaultMaxCommits = 1000
)

// GitHub lists commits through the REST API with page-by-page fetching.
type GitHub struct {
	baseURL    string
	token      string
	perPage    int
	maxCommits int
	httpClient *http.Client
	log        zerolog.Logger
}

// GitHubOption is a functional option for configuring GitHub.
type GitHubOption func(*GitHub)

// WithBaseURL points the client at a GitHub Enterprise instance or a test
// server.
func WithBaseURL(url string) GitHubOption {
	return func(g *GitHub) {
		if url != "" {
			g.baseURL = url
		}
	}
}

// WithToken sets the bearer token. Unauthenticated requests work but rate
// limit quickly.
func WithToken(token string) GitHubOption {
	return func(g *GitHub) { g.token = token }
}

// WithPerPage sets the page size, capped at GitHub's maximum of 100.
func WithPerPage(n int) GitHubOption {
	return func(g *GitHub) {
		if n > 0 && n <= 100 {
			g.perPage = n
		}
	}
}

// WithMaxCommits caps how many commits one sync fetches per repository.
func WithMaxCommits(n int) GitHubOption {
	return func(g *GitHub) {
		if n > 0 {
			g.maxCommits = n
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) GitHubOption {
	return func(g *GitHub) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) GitHubOption {
	return func(g *GitHub) { g.log = log }
}

// NewGitHub creates a GitHub commit source.
func NewGitHub(opts ...GitHubOption) *GitHub {
	g := &GitHub{
		baseURL:    DefaultBaseURL,
		perPage:    DefaultPerPage,
		maxCommits: DefaultMaxCommits,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Source = (*GitHub)(nil)

// apiCommit mirrors the list-commits response shape.
type apiCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// Commits pages through the repository's history, newest first, until the
// cap or the last page. A failure partway returns the pages fetched so far
// together with the error.
func (g *GitHub) Commits(ctx context.Context, repo models.Repository) ([]CommitRecord, error) {
	var records []CommitRecord
	for page := 1; len(records) < g.maxCommits; page++ {
		batch, err := g.fetchPage(ctx, repo, page)
		if err != nil {
			return records, fmt.Errorf("fetching %s page %d: %w", repo.FullName(), page, err)
		}
		for _, c := range batch {
			records = append(records, CommitRecord{
				SHA:         c.SHA,
				Author:      c.Commit.Author.Name,
				AuthorEmail: c.Commit.Author.Email,
				Message:     c.Commit.Message,
				CommitDate:  c.Commit.Author.Date,
			})
		}
		if len(batch) < g.perPage {
			break
		}
	}
	if len(records) > g.maxCommits {
		records = records[:g.maxCommits]
	}
	g.log.Debug().Str("repo", repo.FullName()).Int("commits", len(records)).Msg("fetched commits")
	return records, nil
}

func (g *GitHub) fetchPage(ctx context.Context, repo models.Repository, page int) ([]apiCommit, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits?page=%d&per_page=%d",
		g.baseURL, repo.Owner, repo.Name, page, g.perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited: status %d", resp.StatusCode)
	case http.StatusNotFound:
		return nil, fmt.Errorf("repository not found")
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var commits []apiCommit
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return commits, nil
}
