package service

import (
	"context"
	"time"

	"luminous-ledger/internal/dto"
	"luminous-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	monthlyWindow = 6
	recentLimit   = 5
)

type goalLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error)
}

type StatsService struct {
	txRepo   transactionLister
	goalRepo goalLister
	logger   *zap.Logger
}

func NewStatsService(txRepo transactionLister, goalRepo goalLister, logger *zap.Logger) *StatsService {
	return &StatsService{
		txRepo:   txRepo,
		goalRepo: goalRepo,
		logger:   logger,
	}
}

// summarizeTransactions totals income and expenses by the type tag.
// Sums are accumulated as decimals so that many small float amounts do
// not drift; expense totals are reported as positive magnitudes.
func summarizeTransactions(transactions []*models.Transaction) dto.FinanceSummary {
	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		amount := decimal.NewFromFloat(tx.Amount).Abs()
		if tx.Type == models.TypeIncome {
			income = income.Add(amount)
			continue
		}
		expenses = expenses.Add(amount)
		byCategory[string(tx.Category)] = byCategory[string(tx.Category)].Add(amount)
	}

	summary := dto.FinanceSummary{
		TotalIncome:   income.InexactFloat64(),
		TotalExpenses: expenses.InexactFloat64(),
		Balance:       income.Sub(expenses).InexactFloat64(),
		ByCategory:    make(map[string]float64, len(byCategory)),
	}
	for category, total := range byCategory {
		summary.ByCategory[category] = total.InexactFloat64()
	}
	return summary
}

// monthlySeries buckets the last monthlyWindow months of activity,
// oldest first. Months with no transactions still appear with zeroes.
func monthlySeries(transactions []*models.Transaction, now time.Time) []dto.MonthlyPoint {
	type bucket struct {
		income   decimal.Decimal
		expenses decimal.Decimal
	}

	// Step back from the first of the month: AddDate on a month-end day
	// normalizes (Mar 31 minus one month is Mar 3) and would duplicate
	// and skip months in the window.
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	buckets := make(map[string]*bucket, monthlyWindow)
	months := make([]string, 0, monthlyWindow)
	for i := monthlyWindow - 1; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, -i, 0).Format("2006-01")
		months = append(months, month)
		buckets[month] = &bucket{}
	}

	for _, tx := range transactions {
		b, ok := buckets[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}
		amount := decimal.NewFromFloat(tx.Amount).Abs()
		if tx.Type == models.TypeIncome {
			b.income = b.income.Add(amount)
		} else {
			b.expenses = b.expenses.Add(amount)
		}
	}

	series := make([]dto.MonthlyPoint, 0, monthlyWindow)
	for _, month := range months {
		series = append(series, dto.MonthlyPoint{
			Month:    month,
			Income:   buckets[month].income.InexactFloat64(),
			Expenses: buckets[month].expenses.InexactFloat64(),
		})
	}
	return series
}

func (s *StatsService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	transactions, err := s.txRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := make([]dto.TransactionResponse, 0, recentLimit)
	for _, tx := range transactions {
		if len(recent) == recentLimit {
			break
		}
		recent = append(recent, *transactionResponse(tx))
	}

	goalViews := make([]dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		goalViews = append(goalViews, *goalResponse(goal))
	}

	return &dto.DashboardResponse{
		Summary: summarizeTransactions(transactions),
		Monthly: monthlySeries(transactions, time.Now()),
		Recent:  recent,
		Goals:   goalViews,
	}, nil
}
