package calendar

import (
	"fmt"
	"time"

	"github.com/fluxledger/period_overview/internal/apperrors"
	"github.com/fluxledger/period_overview/internal/core/domain"
	portssvc "github.com/fluxledger/period_overview/internal/core/ports/services"
)

const isoDate = "2006-01-02"

// Service is the default in-process calendar partitioner and presenter.
// Blocks are aligned to natural boundaries (month starts on the 1st, week
// on Monday), so a partitioned range may extend past the requested one.
type Service struct{}

// New creates the default calendar service.
func New() *Service {
	return &Service{}
}

var (
	_ portssvc.CalendarSvc  = (*Service)(nil)
	_ portssvc.PresenterSvc = (*Service)(nil)
)

// BlockPeriods breaks [start, end] into chronological blocks of the given
// granularity. Each block spans [period start, end of last day of period].
// Block ends carry microsecond precision, the finest a timestamptz column
// preserves, so boundaries match exactly after a store round trip.
func (s *Service) BlockPeriods(start, end time.Time, granularity domain.Granularity) ([]domain.PeriodBlock, error) {
	if end.Before(start) {
		start, end = end, start
	}
	current, err := periodStart(start, granularity)
	if err != nil {
		return nil, err
	}

	blocks := make([]domain.PeriodBlock, 0)
	for !current.After(end) {
		next := advance(current, granularity)
		blocks = append(blocks, domain.PeriodBlock{
			Period: granularity,
			Start:  current,
			End:    next.Add(-time.Microsecond),
		})
		current = next
	}
	return blocks, nil
}

// periodStart aligns a date down to the start of its period.
func periodStart(date time.Time, granularity domain.Granularity) (time.Time, error) {
	year, month, day := date.Date()
	switch granularity {
	case domain.GranularityDay:
		return time.Date(year, month, day, 0, 0, 0, 0, date.Location()), nil
	case domain.GranularityWeek:
		monday := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
		for monday.Weekday() != time.Monday {
			monday = monday.AddDate(0, 0, -1)
		}
		return monday, nil
	case domain.GranularityMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, date.Location()), nil
	case domain.GranularityQuarter:
		quarterMonth := month - (month-1)%3
		return time.Date(year, quarterMonth, 1, 0, 0, 0, 0, date.Location()), nil
	case domain.GranularityHalfYear:
		halfMonth := time.January
		if month >= time.July {
			halfMonth = time.July
		}
		return time.Date(year, halfMonth, 1, 0, 0, 0, 0, date.Location()), nil
	case domain.GranularityYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, date.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("cannot partition with granularity %q: %w", granularity, apperrors.ErrConfiguration)
	}
}

// advance moves a period start to the next period start. Granularity has
// been validated by periodStart.
func advance(start time.Time, granularity domain.Granularity) time.Time {
	switch granularity {
	case domain.GranularityDay:
		return start.AddDate(0, 0, 1)
	case domain.GranularityWeek:
		return start.AddDate(0, 0, 7)
	case domain.GranularityMonth:
		return start.AddDate(0, 1, 0)
	case domain.GranularityQuarter:
		return start.AddDate(0, 3, 0)
	case domain.GranularityHalfYear:
		return start.AddDate(0, 6, 0)
	default:
		return start.AddDate(1, 0, 0)
	}
}

// PeriodTitle renders the display title of the period containing date.
func (s *Service) PeriodTitle(date time.Time, granularity domain.Granularity) string {
	switch granularity {
	case domain.GranularityDay:
		return date.Format("January 2, 2006")
	case domain.GranularityWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("Week %d, %d", week, year)
	case domain.GranularityMonth:
		return date.Format("January 2006")
	case domain.GranularityQuarter:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, date.Year())
	case domain.GranularityHalfYear:
		half := 1
		if date.Month() >= time.July {
			half = 2
		}
		return fmt.Sprintf("H%d %d", half, date.Year())
	case domain.GranularityYear:
		return date.Format("2006")
	default:
		return date.Format(isoDate)
	}
}

// TargetRoute builds the route key of a target's period, e.g.
// "categories/show/42/2024-01-01/2024-01-31".
func (s *Service) TargetRoute(target domain.OverviewTarget, start, end time.Time) string {
	return fmt.Sprintf("%s/show/%s/%s/%s", pluralKind(target.Kind), target.TargetID, start.Format(isoDate), end.Format(isoDate))
}

// NoModelRoute builds the route key of a no-model period, e.g.
// "budgets/no-budget/2024-01-01/2024-01-31".
func (s *Service) NoModelRoute(model domain.NoModelKind, start, end time.Time) string {
	plural := string(model) + "s"
	if model == domain.NoCategory {
		plural = "categories"
	}
	return fmt.Sprintf("%s/no-%s/%s/%s", plural, model, start.Format(isoDate), end.Format(isoDate))
}

// TransactionTypeRoute builds the route key of a transaction-type period.
func (s *Service) TransactionTypeRoute(transactionType string, start, end time.Time) string {
	return fmt.Sprintf("transactions/%s/%s/%s", transactionType, start.Format(isoDate), end.Format(isoDate))
}

func pluralKind(kind domain.TargetKind) string {
	switch kind {
	case domain.TargetCategory:
		return "categories"
	default:
		return string(kind) + "s"
	}
}
