package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanReceipt_EncodesImageAndDecodesResult(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff, 0xe0}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/receipts/scan", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var req struct {
			Image string `json:"image"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), req.Image)

		json.NewEncoder(w).Encode(Receipt{
			Amount:    1500,
			Date:      "2024-05-01",
			StoreName: "Super",
			Category:  "food",
			Items:     "groceries",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "token-123")
	receipt, err := c.ScanReceipt(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, receipt.Amount)
	assert.Equal(t, "food", receipt.Category)
}

func TestScanReceipt_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startedOnce sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedOnce.Do(func() { close(started) })
		<-release
		json.NewEncoder(w).Encode(Receipt{Amount: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, "token")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.ScanReceipt(context.Background(), []byte("slow"))
		assert.NoError(t, err)
	}()

	<-started
	_, err := c.ScanReceipt(context.Background(), []byte("eager"))
	assert.ErrorIs(t, err, ErrRequestInFlight)

	close(release)
	wg.Wait()

	// The guard resets once the first call completes.
	_, err = c.ScanReceipt(context.Background(), []byte("again"))
	assert.NoError(t, err)
}

func TestGuardsAreIndependentPerAction(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/receipts/scan":
			close(started)
			<-release
			json.NewEncoder(w).Encode(Receipt{})
		case "/api/v1/chat":
			json.NewEncoder(w).Encode(map[string][]ChatMessage{"messages": {}})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "token")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := c.ScanReceipt(context.Background(), []byte("slow"))
		assert.NoError(t, err)
	}()

	// A chat turn is allowed while a scan is still in flight.
	<-started
	_, err := c.SendChat(context.Background(), "hello")
	assert.NoError(t, err)

	close(release)
	wg.Wait()
}

func TestSendChat_ReturnsTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hi", req.Message)

		json.NewEncoder(w).Encode(map[string][]ChatMessage{"messages": {
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	messages, err := c.SendChat(context.Background(), "hi")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[1].Content)
}

func TestGenerateAdvice_DecodesSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/advice", r.URL.Path)
		json.NewEncoder(w).Encode(Advice{
			Advice: "cut dining out",
			Summary: Summary{
				TotalIncome:   3000,
				TotalExpenses: 500,
				Balance:       2500,
				ByCategory:    map[string]float64{"food": 500},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	advice, err := c.GenerateAdvice(context.Background(), "balanced_growth")
	require.NoError(t, err)
	assert.Equal(t, "cut dining out", advice.Advice)
	assert.Equal(t, 500.0, advice.Summary.ByCategory["food"])
}

func TestErrorBodyIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "A reply is still being generated"})
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	_, err := c.SendChat(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "A reply is still being generated")
}
