package calendar_test

import (
	"testing"
	"time"

	"github.com/fluxledger/period_overview/internal/apperrors"
	"github.com/fluxledger/period_overview/internal/core/domain"
	"github.com/fluxledger/period_overview/internal/platform/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestBlockPeriods_Monthly(t *testing.T) {
	svc := calendar.New()

	blocks, err := svc.BlockPeriods(day("2024-01-15"), day("2024-03-10"), domain.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	assert.Equal(t, day("2024-01-01"), blocks[0].Start)
	assert.Equal(t, day("2024-02-01"), blocks[1].Start)
	assert.Equal(t, day("2024-03-01"), blocks[2].Start)

	// each block ends just before the next one starts
	assert.Equal(t, day("2024-02-01").Add(-time.Microsecond), blocks[0].End)
	assert.Equal(t, day("2024-04-01").Add(-time.Microsecond), blocks[2].End)
	assert.Equal(t, domain.GranularityMonth, blocks[0].Period)
}

func TestBlockPeriods_SwappedBounds(t *testing.T) {
	svc := calendar.New()

	blocks, err := svc.BlockPeriods(day("2024-03-10"), day("2024-01-15"), domain.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, day("2024-01-01"), blocks[0].Start)
}

func TestBlockPeriods_WeekAlignsToMonday(t *testing.T) {
	svc := calendar.New()

	// 2024-03-07 is a Thursday
	blocks, err := svc.BlockPeriods(day("2024-03-07"), day("2024-03-07"), domain.GranularityWeek)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, day("2024-03-04"), blocks[0].Start)
	assert.Equal(t, time.Monday, blocks[0].Start.Weekday())
}

func TestBlockPeriods_Alignment(t *testing.T) {
	tests := []struct {
		name        string
		granularity domain.Granularity
		date        string
		wantStart   string
	}{
		{name: "day keeps the date", granularity: domain.GranularityDay, date: "2024-05-17", wantStart: "2024-05-17"},
		{name: "quarter aligns to quarter month", granularity: domain.GranularityQuarter, date: "2024-05-17", wantStart: "2024-04-01"},
		{name: "half year first half", granularity: domain.GranularityHalfYear, date: "2024-05-17", wantStart: "2024-01-01"},
		{name: "half year second half", granularity: domain.GranularityHalfYear, date: "2024-09-02", wantStart: "2024-07-01"},
		{name: "year aligns to january", granularity: domain.GranularityYear, date: "2024-05-17", wantStart: "2024-01-01"},
	}

	svc := calendar.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := svc.BlockPeriods(day(tt.date), day(tt.date), tt.granularity)
			require.NoError(t, err)
			require.NotEmpty(t, blocks)
			assert.Equal(t, day(tt.wantStart), blocks[0].Start)
		})
	}
}

func TestBlockPeriods_ContiguousCoverage(t *testing.T) {
	svc := calendar.New()

	blocks, err := svc.BlockPeriods(day("2024-01-01"), day("2024-12-31"), domain.GranularityQuarter)
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	for i := 1; i < len(blocks); i++ {
		assert.Equal(t, blocks[i-1].End.Add(time.Microsecond), blocks[i].Start,
			"block %d must start where block %d ends", i, i-1)
	}
}

func TestBlockPeriods_BoundariesAreMicrosecondPrecision(t *testing.T) {
	svc := calendar.New()

	blocks, err := svc.BlockPeriods(day("2024-01-15"), day("2024-01-15"), domain.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	// Boundaries must survive storage in a microsecond-precision column
	// unchanged, or cached statistics keyed on them would never match again.
	assert.True(t, blocks[0].Start.Equal(blocks[0].Start.Truncate(time.Microsecond)))
	assert.True(t, blocks[0].End.Equal(blocks[0].End.Truncate(time.Microsecond)))
}

func TestBlockPeriods_UnknownGranularity(t *testing.T) {
	svc := calendar.New()

	_, err := svc.BlockPeriods(day("2024-01-01"), day("2024-01-31"), domain.Granularity("2X"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestPeriodTitle(t *testing.T) {
	tests := []struct {
		name        string
		granularity domain.Granularity
		date        string
		want        string
	}{
		{name: "day", granularity: domain.GranularityDay, date: "2024-03-07", want: "March 7, 2024"},
		{name: "week", granularity: domain.GranularityWeek, date: "2024-03-07", want: "Week 10, 2024"},
		{name: "month", granularity: domain.GranularityMonth, date: "2024-03-07", want: "March 2024"},
		{name: "quarter", granularity: domain.GranularityQuarter, date: "2024-05-17", want: "Q2 2024"},
		{name: "half year", granularity: domain.GranularityHalfYear, date: "2024-09-02", want: "H2 2024"},
		{name: "year", granularity: domain.GranularityYear, date: "2024-03-07", want: "2024"},
		{name: "unknown falls back to iso date", granularity: domain.Granularity("2X"), date: "2024-03-07", want: "2024-03-07"},
	}

	svc := calendar.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PeriodTitle(day(tt.date), tt.granularity))
		})
	}
}

func TestRoutes(t *testing.T) {
	svc := calendar.New()
	start := day("2024-01-01")
	end := day("2024-01-31")

	t.Run("category target", func(t *testing.T) {
		target := domain.OverviewTarget{Kind: domain.TargetCategory, TargetID: "42", Name: "Groceries"}
		assert.Equal(t, "categories/show/42/2024-01-01/2024-01-31", svc.TargetRoute(target, start, end))
	})

	t.Run("tag target", func(t *testing.T) {
		target := domain.OverviewTarget{Kind: domain.TargetTag, TargetID: "7", Name: "vacation"}
		assert.Equal(t, "tags/show/7/2024-01-01/2024-01-31", svc.TargetRoute(target, start, end))
	})

	t.Run("no budget", func(t *testing.T) {
		assert.Equal(t, "budgets/no-budget/2024-01-01/2024-01-31", svc.NoModelRoute(domain.NoBudget, start, end))
	})

	t.Run("no category", func(t *testing.T) {
		assert.Equal(t, "categories/no-category/2024-01-01/2024-01-31", svc.NoModelRoute(domain.NoCategory, start, end))
	})

	t.Run("transaction type", func(t *testing.T) {
		assert.Equal(t, "transactions/withdrawal/2024-01-01/2024-01-31", svc.TransactionTypeRoute("withdrawal", start, end))
	})
}
