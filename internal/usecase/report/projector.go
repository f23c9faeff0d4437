package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simulak/simulak-backend/internal/domain"
)

// Granularity selects the period a simulation's ledger is grouped by
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// Row is one period of a report: the balance movement and activity of a
// day, an ISO week, or a projection month. Rows are pure derivations of the
// simulation data; any consumer may re-derive them without touching the
// aggregate.
type Row struct {
	Period           string          `json:"period"`
	StartDate        time.Time       `json:"startDate"`
	EndDate          time.Time       `json:"endDate"`
	InitialAmount    decimal.Decimal `json:"initialAmount"`
	FinalAmount      decimal.Decimal `json:"finalAmount"`
	Growth           decimal.Decimal `json:"growth"`
	GrowthPercentage decimal.Decimal `json:"growthPercentage"`
	Operations       int             `json:"operations"`
	TotalTransacted  decimal.Decimal `json:"totalTransacted"`
	TotalFees        decimal.Decimal `json:"totalFees"`
}

// Project groups the simulation's ledger into report rows at the requested
// granularity. The same projection serves every dashboard page; per-page
// ad hoc grouping is deliberately not supported.
func Project(sim *domain.Simulation, granularity Granularity) ([]Row, error) {
	switch granularity {
	case GranularityDaily:
		return projectDaily(sim), nil
	case GranularityWeekly:
		return projectWeekly(sim), nil
	case GranularityMonthly:
		return projectMonthly(sim), nil
	default:
		return nil, fmt.Errorf("unknown report granularity %q", granularity)
	}
}

func projectDaily(sim *domain.Simulation) []Row {
	rows := make([]Row, 0, sim.DayCount())
	for mi := range sim.MonthlyData {
		for _, day := range sim.MonthlyData[mi].Days {
			growth := day.FinalAmount.Sub(day.InitialAmount)
			rows = append(rows, Row{
				Period:           day.Date.Format("2006-01-02"),
				StartDate:        day.Date,
				EndDate:          day.Date,
				InitialAmount:    day.InitialAmount,
				FinalAmount:      day.FinalAmount,
				Growth:           growth,
				GrowthPercentage: pct(growth, day.InitialAmount),
				Operations:       len(day.Operations),
				TotalTransacted:  day.TotalTransacted,
				TotalFees:        day.Fees(),
			})
		}
	}
	return rows
}

func projectWeekly(sim *domain.Simulation) []Row {
	var rows []Row
	var current *Row
	currentKey := ""

	for mi := range sim.MonthlyData {
		for _, day := range sim.MonthlyData[mi].Days {
			year, week := day.Date.ISOWeek()
			key := fmt.Sprintf("%d-W%02d", year, week)
			if key != currentKey {
				if current != nil {
					rows = append(rows, *current)
				}
				current = &Row{
					Period:        key,
					StartDate:     day.Date,
					InitialAmount: day.InitialAmount,
				}
				currentKey = key
			}
			current.EndDate = day.Date
			current.FinalAmount = day.FinalAmount
			current.Operations += len(day.Operations)
			current.TotalTransacted = current.TotalTransacted.Add(day.TotalTransacted)
			current.TotalFees = current.TotalFees.Add(day.Fees())
		}
	}
	if current != nil {
		rows = append(rows, *current)
	}

	for i := range rows {
		rows[i].Growth = rows[i].FinalAmount.Sub(rows[i].InitialAmount)
		rows[i].GrowthPercentage = pct(rows[i].Growth, rows[i].InitialAmount)
	}
	return rows
}

func projectMonthly(sim *domain.Simulation) []Row {
	rows := make([]Row, 0, len(sim.MonthlyData))
	for i := range sim.MonthlyData {
		month := &sim.MonthlyData[i]
		if len(month.Days) == 0 {
			continue
		}
		rows = append(rows, Row{
			Period:           month.Days[0].Date.Format("2006-01"),
			StartDate:        month.Days[0].Date,
			EndDate:          month.Days[len(month.Days)-1].Date,
			InitialAmount:    month.InitialAmount,
			FinalAmount:      month.FinalAmount,
			Growth:           month.Growth,
			GrowthPercentage: month.GrowthPercentage,
			Operations:       month.TotalOperations,
			TotalTransacted:  month.TotalTransacted,
			TotalFees:        month.TotalFees,
		})
	}
	return rows
}

// pct returns part/base*100, treating a zero base as 0%
func pct(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Div(base).Mul(decimal.NewFromInt(100))
}
