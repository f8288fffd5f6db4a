package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"crowdfund/internal/models"
	"crowdfund/internal/repositories"
)

// Sort keys accepted by SortProjects. Anything else falls back to newest.
const (
	SortNewest      = "newest"
	SortOldest      = "oldest"
	SortMostFunded  = "most_funded"
	SortLeastFunded = "least_funded"
	SortEndingSoon  = "ending_soon"
	SortMostPopular = "most_popular"
	SortAlpha       = "alphabetical"
	SortRelevance   = "relevance"
)

// Funding-status filter values.
const (
	FundingFunded       = "funded"
	FundingActive       = "active"
	FundingEndingSoon   = "ending_soon"
	FundingNotFunded    = "not_funded"
	FundingNearlyFunded = "nearly_funded"
)

// Time-window filter values.
const (
	WindowEndingSoon  = "ending_soon"
	WindowJustStarted = "just_started"
	WindowLongRunning = "long_running"
)

const (
	endingSoonDays  = 7
	justStartedDays = 7
	longRunningDays = 30

	// TrendingWindow is the trailing period over which engagement counts feed
	// the trending score.
	TrendingWindow = 7 * 24 * time.Hour
)

// ProjectFilters are the typed filter criteria applied conjunctively on top
// of the free-text query. Zero values mean "not set".
type ProjectFilters struct {
	Category       string
	MinTargetPence int64
	MaxTargetPence int64
	FundingStatus  string
	TimeWindow     string
}

// FilterProjects narrows the base set to active projects matching the query
// and every set filter. The free-text query matches case-insensitively
// against title, description, long-form body, category name, and creator
// name; a project matches if any field does. An empty query with no filters
// returns the active set unchanged.
func FilterProjects(projects []models.Project, query string, filters ProjectFilters, now time.Time) []models.Project {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status != models.StatusActive {
			continue
		}
		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(p.CategoryName, filters.Category) {
			continue
		}
		if filters.MinTargetPence > 0 && p.TargetPence < filters.MinTargetPence {
			continue
		}
		if filters.MaxTargetPence > 0 && p.TargetPence > filters.MaxTargetPence {
			continue
		}
		if !matchesFundingStatus(&p, filters.FundingStatus, now) {
			continue
		}
		if !matchesTimeWindow(&p, filters.TimeWindow, now) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p *models.Project, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.About), query) ||
		strings.Contains(strings.ToLower(p.CategoryName), query) ||
		strings.Contains(strings.ToLower(p.CreatorName), query)
}

func matchesFundingStatus(p *models.Project, status string, now time.Time) bool {
	switch status {
	case FundingFunded:
		return p.IsFunded()
	case FundingActive:
		return p.EndAt.After(now)
	case FundingEndingSoon:
		return endsSoon(p, now)
	case FundingNotFunded:
		return p.RaisedPence < p.TargetPence
	case FundingNearlyFunded:
		return p.TargetPence > 0 &&
			p.RaisedPence*10 >= p.TargetPence*8 &&
			p.RaisedPence < p.TargetPence
	default:
		return true
	}
}

func matchesTimeWindow(p *models.Project, window string, now time.Time) bool {
	switch window {
	case WindowEndingSoon:
		return endsSoon(p, now)
	case WindowJustStarted:
		return !p.CreatedAt.Before(now.AddDate(0, 0, -justStartedDays))
	case WindowLongRunning:
		return !p.CreatedAt.After(now.AddDate(0, 0, -longRunningDays))
	default:
		return true
	}
}

func endsSoon(p *models.Project, now time.Time) bool {
	return p.EndAt.After(now) && !p.EndAt.After(now.AddDate(0, 0, endingSoonDays))
}

// SortProjects orders a result set by the given key without mutating the
// input. Every ordering tie-breaks on project ID so pagination stays
// reproducible. Relevance needs a non-empty query; without one, and for
// unknown keys, it falls back to newest.
func SortProjects(projects []models.Project, sortKey, query string) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)

	query = strings.ToLower(strings.TrimSpace(query))
	if sortKey == SortRelevance && query == "" {
		sortKey = SortNewest
	}

	var less func(a, b *models.Project) bool
	switch sortKey {
	case SortOldest:
		less = func(a, b *models.Project) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortMostFunded:
		less = func(a, b *models.Project) bool { return a.RaisedPence > b.RaisedPence }
	case SortLeastFunded:
		less = func(a, b *models.Project) bool { return a.RaisedPence < b.RaisedPence }
	case SortEndingSoon:
		less = func(a, b *models.Project) bool { return a.EndAt.Before(b.EndAt) }
	case SortMostPopular:
		less = func(a, b *models.Project) bool { return a.ViewCount > b.ViewCount }
	case SortAlpha:
		less = func(a, b *models.Project) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortRelevance:
		less = func(a, b *models.Project) bool {
			return RelevanceScore(a, query) > RelevanceScore(b, query)
		}
	default: // newest
		less = func(a, b *models.Project) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID.String() < b.ID.String()
	})
	return out
}

// RelevanceScore weighs a title match 3, description 2, category name 1.
func RelevanceScore(p *models.Project, query string) int {
	score := 0
	if strings.Contains(strings.ToLower(p.Title), query) {
		score += 3
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		score += 2
	}
	if strings.Contains(strings.ToLower(p.CategoryName), query) {
		score++
	}
	return score
}

// FeaturedScore is the homepage composite: raised 70%, views 20%, donors 10%.
func FeaturedScore(p *models.Project) float64 {
	return float64(p.RaisedPence)*0.7 + float64(p.ViewCount)*0.2 + float64(p.DonorCount)*0.1
}

// RankFeatured orders by featured score descending, then newest, then ID.
func RankFeatured(projects []models.Project, limit int) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		sa, sb := FeaturedScore(a), FeaturedScore(b)
		if sa != sb {
			return sa > sb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return capProjects(out, limit)
}

// RankTrending keeps projects with a positive trending score over the recent
// activity window and orders them by score descending, tie-broken by ID.
func RankTrending(projects []models.Project, activity map[uuid.UUID]models.ProjectActivity, limit int) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if activity[p.ID].TrendingScore() > 0 {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		sa := activity[a.ID].TrendingScore()
		sb := activity[b.ID].TrendingScore()
		if sa != sb {
			return sa > sb
		}
		return a.ID.String() < b.ID.String()
	})
	return capProjects(out, limit)
}

// SimilarByCategory returns active projects sharing the source's category,
// excluding the source, by raised amount descending.
func SimilarByCategory(source *models.Project, candidates []models.Project, limit int) []models.Project {
	out := make([]models.Project, 0, limit)
	for _, p := range candidates {
		if p.ID == source.ID || p.Status != models.StatusActive || p.CategoryID != source.CategoryID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.RaisedPence != b.RaisedPence {
			return a.RaisedPence > b.RaisedPence
		}
		return a.ID.String() < b.ID.String()
	})
	return capProjects(out, limit)
}

func capProjects(projects []models.Project, limit int) []models.Project {
	if limit > 0 && len(projects) > limit {
		return projects[:limit]
	}
	return projects
}

// SearchSuggestion is an autocomplete entry, either a project or a category.
type SearchSuggestion struct {
	Type          string  `json:"type"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug,omitempty"`
	FundedPercent float64 `json:"funded_percent,omitempty"`
}

const minAutocompleteLen = 2

// Autocomplete suggests projects matching title or description plus up to
// three matching category names. Queries shorter than two characters yield
// nothing.
func Autocomplete(projects []models.Project, categories []models.Category, query string, limit int) []SearchSuggestion {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < minAutocompleteLen {
		return nil
	}

	var suggestions []SearchSuggestion
	for i := range projects {
		p := &projects[i]
		if p.Status != models.StatusActive {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		suggestions = append(suggestions, SearchSuggestion{
			Type:          "project",
			Title:         p.Title,
			Slug:          p.Slug,
			FundedPercent: p.FundedPercent(),
		})
		if len(suggestions) >= limit {
			break
		}
	}

	matched := 0
	for _, c := range categories {
		if matched >= 3 {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), query) {
			suggestions = append(suggestions, SearchSuggestion{
				Type:  "category",
				Title: "Projects in " + c.Name,
				Slug:  c.Name,
			})
			matched++
		}
	}
	return suggestions
}

// ProjectPage is one page of an ordered discovery result.
type ProjectPage struct {
	Projects   []models.Project `json:"projects"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
	TotalCount int              `json:"total_count"`
}

var allowedPageSizes = []int{6, 12, 24, 48}

const defaultPageSize = 12

// Paginate clamps the page size to the allowed set and the page number into
// range; a page past the end returns the last page, matching the listing UI.
func Paginate(projects []models.Project, page, perPage int) ProjectPage {
	allowed := false
	for _, n := range allowedPageSizes {
		if perPage == n {
			allowed = true
			break
		}
	}
	if !allowed {
		perPage = defaultPageSize
	}

	total := len(projects)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return ProjectPage{
		Projects:   projects[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalCount: total,
	}
}

// DiscoveryService runs the filter/sort/ranking pipeline against the stored
// catalog. All of its operations are read-only.
type DiscoveryService struct {
	projectRepo  *repositories.ProjectRepository
	categoryRepo *repositories.CategoryRepository
}

func NewDiscoveryService(projectRepo *repositories.ProjectRepository, categoryRepo *repositories.CategoryRepository) *DiscoveryService {
	return &DiscoveryService{projectRepo: projectRepo, categoryRepo: categoryRepo}
}

func (s *DiscoveryService) ListProjects(ctx context.Context, query string, filters ProjectFilters, sortKey string, page, perPage int) (ProjectPage, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return ProjectPage{}, err
	}
	filtered := FilterProjects(projects, query, filters, time.Now())
	return Paginate(SortProjects(filtered, sortKey, query), page, perPage), nil
}

func (s *DiscoveryService) Featured(ctx context.Context, limit int) ([]models.Project, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return RankFeatured(projects, limit), nil
}

func (s *DiscoveryService) Trending(ctx context.Context, limit int) ([]models.Project, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.projectRepo.ActivityCounts(ctx, time.Now().Add(-TrendingWindow))
	if err != nil {
		return nil, err
	}
	return RankTrending(projects, activity, limit), nil
}

func (s *DiscoveryService) Autocomplete(ctx context.Context, query string, limit int) ([]SearchSuggestion, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListWithActiveCounts(ctx)
	if err != nil {
		return nil, err
	}
	return Autocomplete(projects, categories, query, limit), nil
}
