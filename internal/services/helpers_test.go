package services

import (
	"time"

	"github.com/google/uuid"

	"crowdfund/internal/models"
)

// testNow is the fixed clock used across the pure-function tests.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type projectOpt func(*models.Project)

func testProject(title string, opts ...projectOpt) models.Project {
	p := models.Project{
		ID:           uuid.New(),
		Title:        title,
		Slug:         title,
		Status:       models.StatusActive,
		TargetPence:  10000,
		CategoryID:   uuid.New(),
		CategoryName: "Art",
		CreatorID:    uuid.New(),
		CreatorName:  "Jordan Smith",
		CreatedAt:    testNow.AddDate(0, 0, -14),
		EndAt:        testNow.AddDate(0, 0, 30),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withStatus(status string) projectOpt {
	return func(p *models.Project) { p.Status = status }
}

func withRaised(pence int64) projectOpt {
	return func(p *models.Project) { p.RaisedPence = pence }
}

func withTarget(pence int64) projectOpt {
	return func(p *models.Project) { p.TargetPence = pence }
}

func withCategory(id uuid.UUID, name string) projectOpt {
	return func(p *models.Project) {
		p.CategoryID = id
		p.CategoryName = name
	}
}

func withCreator(id uuid.UUID, name string) projectOpt {
	return func(p *models.Project) {
		p.CreatorID = id
		p.CreatorName = name
	}
}

func withCreatedAt(t time.Time) projectOpt {
	return func(p *models.Project) { p.CreatedAt = t }
}

func withEndAt(t time.Time) projectOpt {
	return func(p *models.Project) { p.EndAt = t }
}

func withViews(n int) projectOpt {
	return func(p *models.Project) { p.ViewCount = n }
}

func withDonors(n int) projectOpt {
	return func(p *models.Project) { p.DonorCount = n }
}

func withDescription(s string) projectOpt {
	return func(p *models.Project) { p.Description = s }
}

func withAbout(s string) projectOpt {
	return func(p *models.Project) { p.About = s }
}

func withID(id uuid.UUID) projectOpt {
	return func(p *models.Project) { p.ID = id }
}

func titles(projects []models.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}
