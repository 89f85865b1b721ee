package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string, capture *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		reply := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}))
}

func newTestClient(baseURL string) *ExtractionClient {
	return NewExtractionClient(Config{BaseURL: baseURL, APIKey: "test-key", Model: "test-model"})
}

func TestParseRFPReturnsStructuredFields(t *testing.T) {
	var captured map[string]interface{}
	server := completionServer(t, `{"title":"Office Chairs","requirements":["200 chairs"],"timeline":"2 weeks"}`, &captured)
	defer server.Close()

	client := newTestClient(server.URL)
	structured, err := client.ParseRFP(context.Background(), "We need 200 chairs in 2 weeks")
	require.NoError(t, err)

	assert.Equal(t, "Office Chairs", structured["title"])
	assert.Equal(t, []interface{}{"200 chairs"}, structured["requirements"])

	assert.Equal(t, "test-model", captured["model"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, captured["response_format"])
	assert.Equal(t, 0.0, captured["temperature"])
}

func TestParseVendorReplyParsesTerms(t *testing.T) {
	server := completionServer(t, `{"total_price":5400,"delivery_days":14,"warranty_years":2,"payment_terms":"net 30"}`, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	terms, err := client.ParseVendorReply(context.Background(), "5400 total, two weeks, net 30")
	require.NoError(t, err)

	require.NotNil(t, terms.TotalPrice)
	assert.Equal(t, 5400.0, *terms.TotalPrice)
	require.NotNil(t, terms.DeliveryDays)
	assert.Equal(t, 14, *terms.DeliveryDays)
	require.NotNil(t, terms.PaymentTerms)
	assert.Equal(t, "net 30", *terms.PaymentTerms)
	assert.Nil(t, terms.AdditionalNotes)
}

func TestParseVendorReplyMalformedContent(t *testing.T) {
	server := completionServer(t, "I cannot answer that as JSON.", nil)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ParseVendorReply(context.Background(), "some email")
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestCompleteJSONEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ParseRFP(context.Background(), "text")
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestCompleteJSONUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ParseRFP(context.Background(), "text")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedOutput)
	assert.Contains(t, err.Error(), "429")
}

func TestEvaluateParsesRecommendations(t *testing.T) {
	server := completionServer(t, `{"recommendations":{"5":90,"6":70},"best_vendor_id":5,"reasoning":"best price"}`, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Evaluate(context.Background(), EvaluationInput{Title: "Office Chairs"})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"5": 90, "6": 70}, result.Recommendations)
	require.NotNil(t, result.BestVendorID)
	assert.Equal(t, uint(5), *result.BestVendorID)
	assert.Equal(t, "best price", result.Reasoning)
}

func TestEvaluateMissingRecommendations(t *testing.T) {
	server := completionServer(t, `{"reasoning":"no vendors"}`, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Evaluate(context.Background(), EvaluationInput{Title: "Office Chairs"})
	assert.ErrorIs(t, err, ErrMalformedOutput)
}
