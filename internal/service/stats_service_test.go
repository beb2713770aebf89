package service

import (
	"testing"
	"time"

	"luminous-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeTransactions(t *testing.T) {
	summary := summarizeTransactions(sampleTransactions())

	assert.Equal(t, 3000.0, summary.TotalIncome)
	assert.Equal(t, 1700.0, summary.TotalExpenses)
	assert.Equal(t, 1300.0, summary.Balance)
	assert.Equal(t, map[string]float64{
		"housing": 1200,
		"food":    500,
	}, summary.ByCategory)
}

func TestSummarizeTransactions_NoFloatDrift(t *testing.T) {
	transactions := make([]*models.Transaction, 0, 100)
	for i := 0; i < 100; i++ {
		transactions = append(transactions, &models.Transaction{
			Type:     models.TypeExpense,
			Amount:   -0.1,
			Category: models.CategoryFood,
		})
	}

	summary := summarizeTransactions(transactions)
	assert.Equal(t, 10.0, summary.TotalExpenses)
	assert.Equal(t, 10.0, summary.ByCategory["food"])
	assert.Equal(t, -10.0, summary.Balance)
}

func TestSummarizeTransactions_Empty(t *testing.T) {
	summary := summarizeTransactions(nil)
	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.TotalExpenses)
	assert.Zero(t, summary.Balance)
	assert.Empty(t, summary.ByCategory)
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	transactions := []*models.Transaction{
		{Type: models.TypeIncome, Amount: 3000, Category: models.CategorySalary, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeExpense, Amount: -500, Category: models.CategoryFood, Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeExpense, Amount: -200, Category: models.CategoryFood, Date: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)},
		// Outside the window, must be ignored.
		{Type: models.TypeExpense, Amount: -999, Category: models.CategoryFood, Date: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)},
	}

	series := monthlySeries(transactions, now)
	require.Len(t, series, monthlyWindow)

	assert.Equal(t, "2024-01", series[0].Month)
	assert.Equal(t, "2024-06", series[5].Month)

	// Months with no activity still appear, zero-filled.
	assert.Zero(t, series[0].Income)
	assert.Zero(t, series[0].Expenses)

	assert.Equal(t, 200.0, series[3].Expenses)
	assert.Equal(t, 3000.0, series[5].Income)
	assert.Equal(t, 500.0, series[5].Expenses)
}

func TestMonthlySeries_MonthEndWindow(t *testing.T) {
	// Month-end anchors must still produce six distinct consecutive
	// months; naive date arithmetic would collapse short months.
	now := time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)
	transactions := []*models.Transaction{
		{Type: models.TypeExpense, Amount: -150, Category: models.CategoryFood, Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeExpense, Amount: -250, Category: models.CategoryFood, Date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
	}

	series := monthlySeries(transactions, now)
	require.Len(t, series, monthlyWindow)

	months := make([]string, 0, monthlyWindow)
	for _, point := range series {
		months = append(months, point.Month)
	}
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02", "2024-03", "2024-04", "2024-05"}, months)

	assert.Equal(t, 150.0, series[2].Expenses)
	assert.Equal(t, 250.0, series[4].Expenses)
}
