package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"crowdfund/internal/models"
	"crowdfund/internal/repositories"
)

const (
	affinityTopCategories   = 3
	affinityPerCategory     = 2
	defaultRecommendLimit   = 6
	defaultSimilarLimit     = 4
	collaborativeMinOverlap = 1
)

// RecommendForUser ranks the user's donated categories by frequency and, for
// the top three, picks up to two active projects the user has not yet funded,
// by raised amount descending. Shortfalls are padded from the trending list.
// Returns at most limit projects; fewer when candidates run out.
func RecommendForUser(history []models.Donation, catalog []models.Project, trending []models.Project, limit int) []models.Project {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	byID := make(map[uuid.UUID]models.Project, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	donated := make(map[uuid.UUID]struct{}, len(history))
	categoryCounts := make(map[uuid.UUID]int)
	categoryNames := make(map[uuid.UUID]string)
	for _, d := range history {
		donated[d.ProjectID] = struct{}{}
		if p, ok := byID[d.ProjectID]; ok {
			categoryCounts[p.CategoryID]++
			categoryNames[p.CategoryID] = p.CategoryName
		}
	}

	type catCount struct {
		id    uuid.UUID
		count int
	}
	ranked := make([]catCount, 0, len(categoryCounts))
	for id, n := range categoryCounts {
		ranked = append(ranked, catCount{id: id, count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return categoryNames[ranked[i].id] < categoryNames[ranked[j].id]
	})
	if len(ranked) > affinityTopCategories {
		ranked = ranked[:affinityTopCategories]
	}

	var recommendations []models.Project
	picked := make(map[uuid.UUID]struct{})
	for _, cat := range ranked {
		candidates := make([]models.Project, 0, affinityPerCategory)
		for _, p := range catalog {
			if p.Status != models.StatusActive || p.CategoryID != cat.id {
				continue
			}
			if _, ok := donated[p.ID]; ok {
				continue
			}
			candidates = append(candidates, p)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := &candidates[i], &candidates[j]
			if a.RaisedPence != b.RaisedPence {
				return a.RaisedPence > b.RaisedPence
			}
			return a.ID.String() < b.ID.String()
		})
		for i := 0; i < len(candidates) && i < affinityPerCategory; i++ {
			recommendations = append(recommendations, candidates[i])
			picked[candidates[i].ID] = struct{}{}
		}
	}

	for _, p := range trending {
		if len(recommendations) >= limit {
			break
		}
		if _, ok := picked[p.ID]; ok {
			continue
		}
		recommendations = append(recommendations, p)
		picked[p.ID] = struct{}{}
	}

	return capProjects(recommendations, limit)
}

// SimilarCollaborative ranks other active projects by how many distinct
// donors they share with the source project, tie-broken by raised amount then
// ID. The donations slice must cover everything the source's donors gave to.
func SimilarCollaborative(source *models.Project, donations []models.Donation, catalog []models.Project, limit int) []models.Project {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	sourceDonors := make(map[uuid.UUID]struct{})
	for _, d := range donations {
		if d.ProjectID == source.ID {
			sourceDonors[d.DonorID] = struct{}{}
		}
	}

	shared := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, d := range donations {
		if d.ProjectID == source.ID {
			continue
		}
		if _, ok := sourceDonors[d.DonorID]; !ok {
			continue
		}
		donors, ok := shared[d.ProjectID]
		if !ok {
			donors = make(map[uuid.UUID]struct{})
			shared[d.ProjectID] = donors
		}
		donors[d.DonorID] = struct{}{}
	}

	var candidates []models.Project
	for _, p := range catalog {
		if p.ID == source.ID || p.Status != models.StatusActive {
			continue
		}
		if len(shared[p.ID]) >= collaborativeMinOverlap {
			candidates = append(candidates, p)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]
		na, nb := len(shared[a.ID]), len(shared[b.ID])
		if na != nb {
			return na > nb
		}
		if a.RaisedPence != b.RaisedPence {
			return a.RaisedPence > b.RaisedPence
		}
		return a.ID.String() < b.ID.String()
	})
	return capProjects(candidates, limit)
}

// RecommendationService wires the recommendation paths to the stores.
type RecommendationService struct {
	projectRepo  *repositories.ProjectRepository
	donationRepo *repositories.DonationRepository
}

func NewRecommendationService(projectRepo *repositories.ProjectRepository, donationRepo *repositories.DonationRepository) *RecommendationService {
	return &RecommendationService{projectRepo: projectRepo, donationRepo: donationRepo}
}

func (s *RecommendationService) ForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Project, error) {
	history, err := s.donationRepo.ListByDonor(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The full catalog resolves history against completed campaigns too.
	catalog, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.projectRepo.ActivityCounts(ctx, time.Now().Add(-TrendingWindow))
	if err != nil {
		return nil, err
	}

	active := make([]models.Project, 0, len(catalog))
	for _, p := range catalog {
		if p.Status == models.StatusActive {
			active = append(active, p)
		}
	}
	trending := RankTrending(active, activity, limit)

	return RecommendForUser(history, catalog, trending, limit), nil
}

func (s *RecommendationService) SimilarForProject(ctx context.Context, slug string, limit int) ([]models.Project, error) {
	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("project")
	}
	donations, err := s.donationRepo.ListByProjectDonors(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return SimilarCollaborative(project, donations, catalog, limit), nil
}
