package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"crowdfund/internal/models"
)

func TestRecommendForUserCategoryAffinity(t *testing.T) {
	art := uuid.New()
	tech := uuid.New()
	food := uuid.New()

	donatedArt := testProject("donated art", withCategory(art, "Art"))
	donatedTech := testProject("donated tech", withCategory(tech, "Tech"))
	catalog := []models.Project{
		donatedArt,
		donatedTech,
		testProject("art big", withCategory(art, "Art"), withRaised(9000)),
		testProject("art mid", withCategory(art, "Art"), withRaised(5000)),
		testProject("art small", withCategory(art, "Art"), withRaised(100)),
		testProject("tech one", withCategory(tech, "Tech"), withRaised(400)),
		testProject("food", withCategory(food, "Food"), withRaised(8000)),
	}

	history := []models.Donation{
		testDonation(donatedArt.ID, 500, testNow),
		testDonation(donatedArt.ID, 500, testNow),
		testDonation(donatedTech.ID, 500, testNow),
	}

	got := RecommendForUser(history, catalog, nil, 6)
	// Art outranks Tech on donation count; two per category, never a project
	// already funded by the user, never Food.
	assert.Equal(t, []string{"art big", "art mid", "tech one"}, titles(got))
}

func TestRecommendForUserPadsFromTrending(t *testing.T) {
	art := uuid.New()
	donated := testProject("donated", withCategory(art, "Art"))
	affinityPick := testProject("art pick", withCategory(art, "Art"), withRaised(3000))
	hot := testProject("hot")
	hotter := testProject("hotter")
	catalog := []models.Project{donated, affinityPick, hot, hotter}

	history := []models.Donation{testDonation(donated.ID, 500, testNow)}
	trending := []models.Project{affinityPick, hotter, hot}

	got := RecommendForUser(history, catalog, trending, 3)
	// The affinity pick is not re-added from trending.
	assert.Equal(t, []string{"art pick", "hotter", "hot"}, titles(got))
}

func TestRecommendForUserLimit(t *testing.T) {
	var trending []models.Project
	for i := 0; i < 10; i++ {
		trending = append(trending, testProject("t"))
	}

	got := RecommendForUser(nil, nil, trending, 4)
	assert.Len(t, got, 4)

	// No history means trending only, up to the default limit.
	got = RecommendForUser(nil, nil, trending, 0)
	assert.Len(t, got, 6)
}

func TestSimilarCollaborative(t *testing.T) {
	source := testProject("source")
	twoShared := testProject("two shared", withRaised(100))
	oneSharedRich := testProject("one shared rich", withRaised(900))
	oneSharedPoor := testProject("one shared poor", withRaised(200))
	noOverlap := testProject("no overlap")
	inactive := testProject("inactive", withStatus(models.StatusCompleted))
	catalog := []models.Project{source, twoShared, oneSharedRich, oneSharedPoor, noOverlap, inactive}

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	donations := []models.Donation{
		{ProjectID: source.ID, DonorID: alice},
		{ProjectID: source.ID, DonorID: bob},
		{ProjectID: twoShared.ID, DonorID: alice},
		{ProjectID: twoShared.ID, DonorID: bob},
		{ProjectID: oneSharedRich.ID, DonorID: alice},
		{ProjectID: oneSharedPoor.ID, DonorID: bob},
		{ProjectID: inactive.ID, DonorID: alice},
		{ProjectID: noOverlap.ID, DonorID: carol},
	}

	got := SimilarCollaborative(&source, donations, catalog, 4)
	// Overlap count wins, then raised amount.
	assert.Equal(t, []string{"two shared", "one shared rich", "one shared poor"}, titles(got))
}

func TestSimilarCollaborativeCountsDistinctDonors(t *testing.T) {
	source := testProject("source")
	repeat := testProject("repeat", withRaised(100))
	spread := testProject("spread", withRaised(50))
	catalog := []models.Project{source, repeat, spread}

	alice := uuid.New()
	bob := uuid.New()

	donations := []models.Donation{
		{ProjectID: source.ID, DonorID: alice},
		{ProjectID: source.ID, DonorID: bob},
		// Alice gave to "repeat" three times; still one shared donor.
		{ProjectID: repeat.ID, DonorID: alice},
		{ProjectID: repeat.ID, DonorID: alice},
		{ProjectID: repeat.ID, DonorID: alice},
		{ProjectID: spread.ID, DonorID: alice},
		{ProjectID: spread.ID, DonorID: bob},
	}

	got := SimilarCollaborative(&source, donations, catalog, 4)
	assert.Equal(t, []string{"spread", "repeat"}, titles(got))
}
