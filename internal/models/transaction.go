package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type TransactionCategory string

// Income categories
const (
	CategorySalary      TransactionCategory = "salary"
	CategoryInvestment  TransactionCategory = "investment"
	CategoryBusiness    TransactionCategory = "business"
	CategoryOtherIncome TransactionCategory = "other_income"
)

// Expense categories
const (
	CategoryFood           TransactionCategory = "food"
	CategoryTransportation TransactionCategory = "transportation"
	CategoryHousing        TransactionCategory = "housing"
	CategoryUtilities      TransactionCategory = "utilities"
	CategoryEntertainment  TransactionCategory = "entertainment"
	CategoryShopping       TransactionCategory = "shopping"
	CategoryHealthcare     TransactionCategory = "healthcare"
	CategoryEducation      TransactionCategory = "education"
	CategoryInsurance      TransactionCategory = "insurance"
	CategoryOtherExpense   TransactionCategory = "other_expense"
)

var IncomeCategories = []TransactionCategory{
	CategorySalary, CategoryInvestment, CategoryBusiness, CategoryOtherIncome,
}

var ExpenseCategories = []TransactionCategory{
	CategoryFood, CategoryTransportation, CategoryHousing, CategoryUtilities,
	CategoryEntertainment, CategoryShopping, CategoryHealthcare,
	CategoryEducation, CategoryInsurance, CategoryOtherExpense,
}

func ValidCategory(t TransactionType, c TransactionCategory) bool {
	set := ExpenseCategories
	if t == TypeIncome {
		set = IncomeCategories
	}
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

// Transaction amounts are stored signed: expenses negative, incomes
// positive. The Type tag is the canonical discriminant; the sign is
// derived from it on every write.
type Transaction struct {
	ID          uuid.UUID           `db:"id"`
	UserID      uuid.UUID           `db:"user_id"`
	Type        TransactionType     `db:"type"`
	Amount      float64             `db:"amount"`
	Category    TransactionCategory `db:"category"`
	Title       string              `db:"title"`
	Description string              `db:"description"`
	Date        time.Time           `db:"date"`
	CreatedAt   time.Time           `db:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at"`
}
