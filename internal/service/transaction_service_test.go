package service

import (
	"testing"

	"luminous-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalAmount(t *testing.T) {
	// The type tag decides the sign, whatever the caller submitted.
	assert.Equal(t, -500.0, canonicalAmount(models.TypeExpense, 500))
	assert.Equal(t, -500.0, canonicalAmount(models.TypeExpense, -500))
	assert.Equal(t, 500.0, canonicalAmount(models.TypeIncome, 500))
	assert.Equal(t, 500.0, canonicalAmount(models.TypeIncome, -500))
}

func TestValidateTransactionInput(t *testing.T) {
	txType, category, date, err := validateTransactionInput("expense", "food", 250, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, models.TypeExpense, txType)
	assert.Equal(t, models.CategoryFood, category)
	assert.Equal(t, "2024-05-01", date.Format(dateLayout))
}

func TestValidateTransactionInput_Errors(t *testing.T) {
	cases := []struct {
		name     string
		txType   string
		category string
		amount   float64
		date     string
		want     error
	}{
		{"unknown type", "transfer", "food", 100, "2024-05-01", ErrInvalidType},
		{"unknown category", "expense", "groceries", 100, "2024-05-01", ErrInvalidCategory},
		{"income category on expense", "expense", "salary", 100, "2024-05-01", ErrInvalidCategory},
		{"expense category on income", "income", "food", 100, "2024-05-01", ErrInvalidCategory},
		{"zero amount", "expense", "food", 0, "2024-05-01", ErrInvalidAmount},
		{"bad date", "expense", "food", 100, "01.05.2024", ErrInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := validateTransactionInput(tc.txType, tc.category, tc.amount, tc.date)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
