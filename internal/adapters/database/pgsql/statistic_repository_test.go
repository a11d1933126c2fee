package pgsql_test

import (
	"testing"
	"time"

	"github.com/fluxledger/period_overview/internal/core/domain"
	"github.com/fluxledger/period_overview/internal/platform/calendar"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Statistic lookups match stored rows on exact Start/End equality, so period
// boundaries must come back from the timestamptz columns unchanged.
func TestPeriodBoundariesSurviveTimestamptz(t *testing.T) {
	cal := calendar.New()
	date, err := time.Parse("2006-01-02", "2024-01-15")
	require.NoError(t, err)

	blocks, err := cal.BlockPeriods(date, date, domain.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	codec := pgtype.NewMap()
	for name, boundary := range map[string]time.Time{
		"start": blocks[0].Start,
		"end":   blocks[0].End,
	} {
		encoded, err := codec.Encode(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, boundary, nil)
		require.NoError(t, err, "encode %s", name)

		var scanned time.Time
		require.NoError(t, codec.Scan(pgtype.TimestamptzOID, pgtype.BinaryFormatCode, encoded, &scanned), "scan %s", name)

		assert.True(t, scanned.Equal(boundary), "%s boundary %s came back as %s", name, boundary, scanned)
	}
}
