package service

import (
	"testing"
	"time"

	"luminous-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReceipt_RoundTrip(t *testing.T) {
	text := `{"amount":1500,"date":"2024-05-01","store_name":"Super","category":"food","items":"groceries"}`

	receipt, err := ParseReceipt(text)
	require.NoError(t, err)

	assert.Equal(t, 1500.0, receipt.Amount)
	assert.Equal(t, "2024-05-01", receipt.Date)
	assert.Equal(t, "Super", receipt.StoreName)
	assert.Equal(t, models.CategoryFood, receipt.Category)
	assert.Equal(t, "groceries", receipt.Items)
}

func TestParseReceipt_Deterministic(t *testing.T) {
	text := `{"amount":1500,"date":"2024-05-01","store_name":"Super","category":"food","items":"groceries"}`

	first, err := ParseReceipt(text)
	require.NoError(t, err)
	second, err := ParseReceipt(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseReceipt_MissingCategoryDefaults(t *testing.T) {
	receipt, err := ParseReceipt(`{"amount":800,"date":"2024-05-01","store_name":"Kiosk"}`)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOtherExpense, receipt.Category)
}

func TestParseReceipt_UnknownCategoryDefaults(t *testing.T) {
	receipt, err := ParseReceipt(`{"amount":800,"category":"groceries"}`)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOtherExpense, receipt.Category)
}

func TestParseReceipt_MissingDateDefaultsToToday(t *testing.T) {
	receipt, err := ParseReceipt(`{"amount":800,"category":"food"}`)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), receipt.Date)
}

func TestParseReceipt_MissingStoreFallsBackToItems(t *testing.T) {
	receipt, err := ParseReceipt(`{"amount":800,"items":"coffee beans"}`)
	require.NoError(t, err)
	assert.Equal(t, "coffee beans", receipt.StoreName)
}

func TestParseReceipt_AmountAsString(t *testing.T) {
	receipt, err := ParseReceipt(`{"amount":"1234.5","category":"food"}`)
	require.NoError(t, err)
	assert.Equal(t, 1234.5, receipt.Amount)
}

func TestParseReceipt_DoubleEncoded(t *testing.T) {
	// The model (or a legacy proxy) may return a JSON string that itself
	// contains JSON.
	text := `"{\"amount\":1500,\"category\":\"food\",\"store_name\":\"Super\"}"`

	receipt, err := ParseReceipt(text)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, receipt.Amount)
	assert.Equal(t, models.CategoryFood, receipt.Category)
	assert.Equal(t, "Super", receipt.StoreName)
}

func TestParseReceipt_CodeFences(t *testing.T) {
	text := "```json\n{\"amount\":42,\"category\":\"food\"}\n```"

	receipt, err := ParseReceipt(text)
	require.NoError(t, err)
	assert.Equal(t, 42.0, receipt.Amount)
}

func TestParseReceipt_Unparseable(t *testing.T) {
	_, err := ParseReceipt("I could not read the receipt, sorry!")
	assert.ErrorIs(t, err, ErrUnparseableModelOutput)

	_, err = ParseReceipt("")
	assert.ErrorIs(t, err, ErrUnparseableModelOutput)
}

func TestNormalizeModelOutput_PlainObject(t *testing.T) {
	raw, err := NormalizeModelOutput(`{"reply":"hello"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"hello"}`, string(raw))
}

func TestExtractField(t *testing.T) {
	assert.Equal(t, "save more", extractField(`{"advice":"save more"}`, "advice"))

	// Free text passes through untouched.
	assert.Equal(t, "just spend less", extractField("just spend less", "advice"))

	// Valid JSON without the field falls back to the raw document.
	assert.Equal(t, `{"other":"x"}`, extractField(`{"other":"x"}`, "advice"))
}

func TestExtractField_BareJSONString(t *testing.T) {
	// The JSON response mode can yield a quoted string instead of an
	// object; the user must never see the quote characters.
	assert.Equal(t, "just save more", extractField(`"just save more"`, "advice"))
	assert.Equal(t, "just save more", extractField("```json\n\"just save more\"\n```", "advice"))
}
