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
	dailySeriesDays = 30

	// requiredDailyEpsilon guards the velocity/required ratio against
	// vanishingly small daily requirements.
	requiredDailyEpsilon = 0.01
)

// DailyDonations is one calendar day (UTC) of a project's donation series.
type DailyDonations struct {
	Day         time.Time `json:"day"`
	AmountPence int64     `json:"amount_pence"`
	Count       int       `json:"count"`
}

// AnalyticsReport is the per-project funding report. Rates are pence per day.
type AnalyticsReport struct {
	FundedPercent      float64          `json:"funded_percent"`
	RemainingPence     int64            `json:"remaining_pence"`
	DaysLeft           int              `json:"days_left"`
	DaysActive         int              `json:"days_active"`
	FundingVelocity    float64          `json:"funding_velocity"`
	RequiredDaily      float64          `json:"required_daily"`
	SuccessProbability float64          `json:"success_probability"`
	AvgDonationPence   float64          `json:"avg_donation_pence"`
	MaxDonationPence   int64            `json:"max_donation_pence"`
	DonationCount      int              `json:"donation_count"`
	DailyDonations     []DailyDonations `json:"daily_donations"`
}

// ComputeProjectAnalytics derives the funding report from the project row and
// its full donation history. Read-only; now is injected for testability.
func ComputeProjectAnalytics(p *models.Project, donations []models.Donation, now time.Time) AnalyticsReport {
	report := AnalyticsReport{
		FundedPercent:  p.FundedPercent(),
		RemainingPence: p.RemainingPence(),
		DaysLeft:       p.DaysLeftAt(now),
	}

	report.DaysActive = int(now.Sub(p.CreatedAt).Hours() / 24)
	if report.DaysActive < 1 {
		report.DaysActive = 1
	}
	report.FundingVelocity = float64(p.RaisedPence) / float64(report.DaysActive)

	needed := p.TargetPence - p.RaisedPence
	if needed > 0 {
		daysLeft := report.DaysLeft
		if daysLeft < 1 {
			daysLeft = 1
		}
		report.RequiredDaily = float64(needed) / float64(daysLeft)

		required := report.RequiredDaily
		if required < requiredDailyEpsilon {
			required = requiredDailyEpsilon
		}
		probability := (report.FundedPercent / 100) * (report.FundingVelocity / required)
		if probability > 1 {
			probability = 1
		}
		report.SuccessProbability = probability
	} else {
		// Goal already met: nothing is required per day.
		report.SuccessProbability = 1
	}

	var total int64
	for _, d := range donations {
		total += d.AmountPence
		if d.AmountPence > report.MaxDonationPence {
			report.MaxDonationPence = d.AmountPence
		}
	}
	report.DonationCount = len(donations)
	if len(donations) > 0 {
		report.AvgDonationPence = float64(total) / float64(len(donations))
	}

	report.DailyDonations = dailySeries(donations, now)
	return report
}

// dailySeries buckets the trailing 30 days of donations by UTC calendar day,
// ascending.
func dailySeries(donations []models.Donation, now time.Time) []DailyDonations {
	cutoff := now.AddDate(0, 0, -dailySeriesDays)
	buckets := make(map[time.Time]*DailyDonations)

	for _, d := range donations {
		if d.CreatedAt.Before(cutoff) {
			continue
		}
		t := d.CreatedAt.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		b, ok := buckets[day]
		if !ok {
			b = &DailyDonations{Day: day}
			buckets[day] = b
		}
		b.AmountPence += d.AmountPence
		b.Count++
	}

	series := make([]DailyDonations, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Day.Before(series[j].Day) })
	return series
}

// PlatformStats aggregates across all active projects.
type PlatformStats struct {
	TotalProjects    int     `json:"total_projects"`
	TotalRaisedPence int64   `json:"total_raised_pence"`
	TotalTargetPence int64   `json:"total_target_pence"`
	TotalBackers     int     `json:"total_backers"`
	AvgTargetPence   float64 `json:"avg_target_pence"`
	AvgRaisedPence   float64 `json:"avg_raised_pence"`
	FundedProjects   int     `json:"funded_projects"`
	SuccessRate      float64 `json:"success_rate"`
	MonthlyGrowth    float64 `json:"monthly_growth"`
}

// ComputePlatformStats derives platform-wide totals, averages, the success
// rate, and month-over-month project-creation growth.
func ComputePlatformStats(active []models.Project, now time.Time) PlatformStats {
	var stats PlatformStats
	stats.TotalProjects = len(active)

	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := currentMonth.AddDate(0, -1, 0)
	currentMonthCount, lastMonthCount := 0, 0

	for _, p := range active {
		stats.TotalRaisedPence += p.RaisedPence
		stats.TotalTargetPence += p.TargetPence
		stats.TotalBackers += p.DonorCount
		if p.IsFunded() {
			stats.FundedProjects++
		}
		if !p.CreatedAt.Before(currentMonth) {
			currentMonthCount++
		} else if !p.CreatedAt.Before(lastMonth) {
			lastMonthCount++
		}
	}

	if stats.TotalProjects > 0 {
		n := float64(stats.TotalProjects)
		stats.AvgTargetPence = float64(stats.TotalTargetPence) / n
		stats.AvgRaisedPence = float64(stats.TotalRaisedPence) / n
		stats.SuccessRate = float64(stats.FundedProjects) / n * 100
	}

	switch {
	case lastMonthCount > 0:
		stats.MonthlyGrowth = float64(currentMonthCount-lastMonthCount) / float64(lastMonthCount) * 100
	case currentMonthCount > 0:
		stats.MonthlyGrowth = 100
	default:
		stats.MonthlyGrowth = 0
	}
	return stats
}

// CategoryStat summarizes one category's active projects.
type CategoryStat struct {
	CategoryID     uuid.UUID `json:"category_id"`
	CategoryName   string    `json:"category_name"`
	Projects       int       `json:"projects"`
	RaisedPence    int64     `json:"raised_pence"`
	AvgRaisedPence float64   `json:"avg_raised_pence"`
	SuccessRate    float64   `json:"success_rate"`
}

// ComputeCategoryStats aggregates active projects per category; categories
// with no active projects are omitted. Ordered by total raised descending.
func ComputeCategoryStats(active []models.Project) []CategoryStat {
	byCategory := make(map[uuid.UUID]*CategoryStat)
	funded := make(map[uuid.UUID]int)

	for _, p := range active {
		if p.Status != models.StatusActive {
			continue
		}
		stat, ok := byCategory[p.CategoryID]
		if !ok {
			stat = &CategoryStat{CategoryID: p.CategoryID, CategoryName: p.CategoryName}
			byCategory[p.CategoryID] = stat
		}
		stat.Projects++
		stat.RaisedPence += p.RaisedPence
		if p.IsFunded() {
			funded[p.CategoryID]++
		}
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for id, stat := range byCategory {
		stat.AvgRaisedPence = float64(stat.RaisedPence) / float64(stat.Projects)
		stat.SuccessRate = float64(funded[id]) / float64(stat.Projects) * 100
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RaisedPence != stats[j].RaisedPence {
			return stats[i].RaisedPence > stats[j].RaisedPence
		}
		return stats[i].CategoryName < stats[j].CategoryName
	})
	return stats
}

// CategoryCount is a (category, donation count) pair in a user's summary.
type CategoryCount struct {
	CategoryName string `json:"category_name"`
	Donations    int    `json:"donations"`
}

// DonationSummary totals a user's giving history.
type DonationSummary struct {
	TotalPence         int64           `json:"total_pence"`
	ProjectCount       int             `json:"project_count"`
	AvgDonationPence   float64         `json:"avg_donation_pence"`
	FavoriteCategories []CategoryCount `json:"favorite_categories"`
}

// SummarizeDonations computes a user's totals and top-3 categories by
// donation count. Donations to projects missing from the catalog still count
// toward totals but not category affinity.
func SummarizeDonations(history []models.Donation, catalog map[uuid.UUID]models.Project) DonationSummary {
	var summary DonationSummary
	projects := make(map[uuid.UUID]struct{})
	categories := make(map[string]int)

	for _, d := range history {
		summary.TotalPence += d.AmountPence
		projects[d.ProjectID] = struct{}{}
		if p, ok := catalog[d.ProjectID]; ok {
			categories[p.CategoryName]++
		}
	}
	summary.ProjectCount = len(projects)
	if len(history) > 0 {
		summary.AvgDonationPence = float64(summary.TotalPence) / float64(len(history))
	}

	counts := make([]CategoryCount, 0, len(categories))
	for name, n := range categories {
		counts = append(counts, CategoryCount{CategoryName: name, Donations: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Donations != counts[j].Donations {
			return counts[i].Donations > counts[j].Donations
		}
		return counts[i].CategoryName < counts[j].CategoryName
	})
	if len(counts) > 3 {
		counts = counts[:3]
	}
	summary.FavoriteCategories = counts
	return summary
}

// AnalyticsService assembles reports from the stores. All reads, no writes.
type AnalyticsService struct {
	projectRepo  *repositories.ProjectRepository
	donationRepo *repositories.DonationRepository
}

func NewAnalyticsService(projectRepo *repositories.ProjectRepository, donationRepo *repositories.DonationRepository) *AnalyticsService {
	return &AnalyticsService{projectRepo: projectRepo, donationRepo: donationRepo}
}

func (s *AnalyticsService) ProjectAnalytics(ctx context.Context, slug string) (AnalyticsReport, error) {
	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return AnalyticsReport{}, err
	}
	if project == nil {
		return AnalyticsReport{}, models.NewNotFoundError("project")
	}
	donations, err := s.donationRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return AnalyticsReport{}, err
	}
	return ComputeProjectAnalytics(project, donations, time.Now()), nil
}

func (s *AnalyticsService) PlatformStats(ctx context.Context) (PlatformStats, error) {
	active, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return PlatformStats{}, err
	}
	return ComputePlatformStats(active, time.Now()), nil
}

func (s *AnalyticsService) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	active, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeCategoryStats(active), nil
}

func (s *AnalyticsService) UserSummary(ctx context.Context, userID uuid.UUID) (DonationSummary, []models.Donation, error) {
	history, err := s.donationRepo.ListByDonor(ctx, userID)
	if err != nil {
		return DonationSummary{}, nil, err
	}
	all, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return DonationSummary{}, nil, err
	}
	catalog := make(map[uuid.UUID]models.Project, len(all))
	for _, p := range all {
		catalog[p.ID] = p
	}
	return SummarizeDonations(history, catalog), history, nil
}
