package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFundedPercent(t *testing.T) {
	p := Project{TargetPence: 10000, RaisedPence: 0}
	assert.Equal(t, 0.0, p.FundedPercent())

	p.RaisedPence = 2500
	assert.Equal(t, 25.0, p.FundedPercent())
	assert.Equal(t, int64(7500), p.RemainingPence())
	assert.False(t, p.IsFunded())

	p.RaisedPence += 7500
	assert.Equal(t, 100.0, p.FundedPercent())
	assert.Equal(t, int64(0), p.RemainingPence())
	assert.True(t, p.IsFunded())
}

func TestFundedPercentStaysInRange(t *testing.T) {
	overfunded := Project{TargetPence: 100, RaisedPence: 5000}
	assert.Equal(t, 100.0, overfunded.FundedPercent())
	assert.Equal(t, int64(0), overfunded.RemainingPence())

	noTarget := Project{TargetPence: 0, RaisedPence: 5000}
	assert.Equal(t, 0.0, noTarget.FundedPercent())
}

func TestDaysLeftAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	p := Project{EndAt: now.AddDate(0, 0, 10)}
	assert.Equal(t, 10, p.DaysLeftAt(now))

	ended := Project{EndAt: now.AddDate(0, 0, -1)}
	assert.Equal(t, 0, ended.DaysLeftAt(now))

	endingToday := Project{EndAt: now.Add(6 * time.Hour)}
	assert.Equal(t, 0, endingToday.DaysLeftAt(now))
}

func TestPrepareDefaults(t *testing.T) {
	var p Project
	p.Prepare()
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID.String())
	assert.Equal(t, StatusActive, p.Status)
}
