package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/models"
)

func testDonation(projectID uuid.UUID, amount int64, at time.Time) models.Donation {
	return models.Donation{
		ID:          uuid.New(),
		ProjectID:   projectID,
		DonorID:     uuid.New(),
		AmountPence: amount,
		CreatedAt:   at,
	}
}

func TestComputeProjectAnalyticsFundingFigures(t *testing.T) {
	p := testProject("quarter", withRaised(2500))

	report := ComputeProjectAnalytics(&p, nil, testNow)
	assert.Equal(t, 25.0, report.FundedPercent)
	assert.Equal(t, int64(7500), report.RemainingPence)
	assert.Equal(t, 30, report.DaysLeft)

	p.RaisedPence = 10000
	report = ComputeProjectAnalytics(&p, nil, testNow)
	assert.Equal(t, 100.0, report.FundedPercent)
	assert.Equal(t, int64(0), report.RemainingPence)
	assert.Equal(t, 1.0, report.SuccessProbability)
}

func TestComputeProjectAnalyticsVelocityAndProbability(t *testing.T) {
	p := testProject("slow",
		withRaised(2000),
		withCreatedAt(testNow.AddDate(0, 0, -10)),
		withEndAt(testNow.AddDate(0, 0, 5)))

	report := ComputeProjectAnalytics(&p, nil, testNow)
	assert.Equal(t, 10, report.DaysActive)
	assert.InDelta(t, 200.0, report.FundingVelocity, 1e-9)
	assert.InDelta(t, 1600.0, report.RequiredDaily, 1e-9)
	// (20/100) * (200/1600)
	assert.InDelta(t, 0.025, report.SuccessProbability, 1e-9)
}

func TestComputeProjectAnalyticsProbabilityCapped(t *testing.T) {
	p := testProject("surge",
		withRaised(9900),
		withCreatedAt(testNow.AddDate(0, 0, -2)),
		withEndAt(testNow.AddDate(0, 0, 60)))

	report := ComputeProjectAnalytics(&p, nil, testNow)
	assert.Equal(t, 1.0, report.SuccessProbability)
}

func TestComputeProjectAnalyticsDonationStats(t *testing.T) {
	p := testProject("stats", withRaised(900))
	donations := []models.Donation{
		testDonation(p.ID, 100, testNow.AddDate(0, 0, -1)),
		testDonation(p.ID, 500, testNow.AddDate(0, 0, -1)),
		testDonation(p.ID, 300, testNow.AddDate(0, 0, -3)),
	}

	report := ComputeProjectAnalytics(&p, donations, testNow)
	assert.Equal(t, 3, report.DonationCount)
	assert.Equal(t, int64(500), report.MaxDonationPence)
	assert.InDelta(t, 300.0, report.AvgDonationPence, 1e-9)
}

func TestDailySeriesBucketsTrailingMonth(t *testing.T) {
	p := testProject("series")
	donations := []models.Donation{
		testDonation(p.ID, 100, testNow.AddDate(0, 0, -1)),
		testDonation(p.ID, 250, testNow.AddDate(0, 0, -1)),
		testDonation(p.ID, 400, testNow.AddDate(0, 0, -5)),
		testDonation(p.ID, 999, testNow.AddDate(0, 0, -45)), // outside the window
	}

	report := ComputeProjectAnalytics(&p, donations, testNow)
	require.Len(t, report.DailyDonations, 2)

	first, second := report.DailyDonations[0], report.DailyDonations[1]
	assert.True(t, first.Day.Before(second.Day))
	assert.Equal(t, int64(400), first.AmountPence)
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, int64(350), second.AmountPence)
	assert.Equal(t, 2, second.Count)
}

func TestComputePlatformStats(t *testing.T) {
	active := []models.Project{
		testProject("funded", withRaised(10000), withDonors(4)),
		testProject("half", withRaised(5000), withDonors(2), withTarget(10000)),
	}

	stats := ComputePlatformStats(active, testNow)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, int64(15000), stats.TotalRaisedPence)
	assert.Equal(t, int64(20000), stats.TotalTargetPence)
	assert.Equal(t, 6, stats.TotalBackers)
	assert.InDelta(t, 10000.0, stats.AvgTargetPence, 1e-9)
	assert.InDelta(t, 7500.0, stats.AvgRaisedPence, 1e-9)
	assert.Equal(t, 1, stats.FundedProjects)
	assert.InDelta(t, 50.0, stats.SuccessRate, 1e-9)
}

func TestComputePlatformStatsMonthlyGrowth(t *testing.T) {
	thisMonth := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	// Two last month, three this month: +50%.
	stats := ComputePlatformStats([]models.Project{
		testProject("a", withCreatedAt(thisMonth)),
		testProject("b", withCreatedAt(thisMonth)),
		testProject("c", withCreatedAt(thisMonth)),
		testProject("d", withCreatedAt(lastMonth)),
		testProject("e", withCreatedAt(lastMonth)),
	}, testNow)
	assert.InDelta(t, 50.0, stats.MonthlyGrowth, 1e-9)

	// Nothing last month but something this month reads as 100%.
	stats = ComputePlatformStats([]models.Project{
		testProject("a", withCreatedAt(thisMonth)),
		testProject("old", withCreatedAt(older)),
	}, testNow)
	assert.Equal(t, 100.0, stats.MonthlyGrowth)

	// Nothing in either month.
	stats = ComputePlatformStats([]models.Project{
		testProject("old", withCreatedAt(older)),
	}, testNow)
	assert.Equal(t, 0.0, stats.MonthlyGrowth)
}

func TestComputePlatformStatsEmpty(t *testing.T) {
	stats := ComputePlatformStats(nil, testNow)
	assert.Equal(t, 0, stats.TotalProjects)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.Equal(t, 0.0, stats.MonthlyGrowth)
}

func TestComputeCategoryStats(t *testing.T) {
	art := uuid.New()
	tech := uuid.New()
	active := []models.Project{
		testProject("art one", withCategory(art, "Art"), withRaised(10000)),
		testProject("art two", withCategory(art, "Art"), withRaised(2000)),
		testProject("gadget", withCategory(tech, "Tech"), withRaised(3000)),
	}

	stats := ComputeCategoryStats(active)
	require.Len(t, stats, 2)

	assert.Equal(t, "Art", stats[0].CategoryName)
	assert.Equal(t, 2, stats[0].Projects)
	assert.Equal(t, int64(12000), stats[0].RaisedPence)
	assert.InDelta(t, 6000.0, stats[0].AvgRaisedPence, 1e-9)
	assert.InDelta(t, 50.0, stats[0].SuccessRate, 1e-9)

	assert.Equal(t, "Tech", stats[1].CategoryName)
	assert.Equal(t, int64(3000), stats[1].RaisedPence)
}

func TestSummarizeDonations(t *testing.T) {
	art := testProject("painting", withCategory(uuid.New(), "Art"))
	tech := testProject("gadget", withCategory(uuid.New(), "Tech"))
	food := testProject("bakery", withCategory(uuid.New(), "Food"))
	games := testProject("board game", withCategory(uuid.New(), "Games"))
	catalog := map[uuid.UUID]models.Project{
		art.ID: art, tech.ID: tech, food.ID: food, games.ID: games,
	}

	history := []models.Donation{
		testDonation(art.ID, 100, testNow),
		testDonation(art.ID, 200, testNow),
		testDonation(art.ID, 300, testNow),
		testDonation(tech.ID, 400, testNow),
		testDonation(tech.ID, 500, testNow),
		testDonation(food.ID, 600, testNow),
		testDonation(games.ID, 700, testNow),
		testDonation(uuid.New(), 1000, testNow), // project no longer in catalog
	}

	summary := SummarizeDonations(history, catalog)
	assert.Equal(t, int64(3800), summary.TotalPence)
	assert.Equal(t, 5, summary.ProjectCount)
	assert.InDelta(t, 475.0, summary.AvgDonationPence, 1e-9)

	require.Len(t, summary.FavoriteCategories, 3)
	assert.Equal(t, CategoryCount{CategoryName: "Art", Donations: 3}, summary.FavoriteCategories[0])
	assert.Equal(t, CategoryCount{CategoryName: "Tech", Donations: 2}, summary.FavoriteCategories[1])
	// Food and Games tie at one; alphabetical order decides.
	assert.Equal(t, CategoryCount{CategoryName: "Food", Donations: 1}, summary.FavoriteCategories[2])
}
