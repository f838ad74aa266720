package aiklyra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConversation = ConversationData{
	"session_1": {
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there!"},
	},
}

// newTestClient points a client at a mock service and counts the requests it
// receives, so validation tests can assert that nothing hit the network.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()

	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	return NewClient("test_api_key", ts.URL, WithHTTPClient(ts.Client())), &requests
}

func TestAnalyseSuccess(t *testing.T) {
	var gotReq *http.Request
	var gotBody AnalysisRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"transition_matrix": [[0.1, 0.9], [0.8, 0.2]],
			"intent_by_cluster": {"0": "greeting", "1": "response"}
		}`))
	})

	result, err := client.Analyse(context.Background(), testConversation)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0.1, 0.9}, {0.8, 0.2}}, result.TransitionMatrix)
	assert.Equal(t, "greeting", result.IntentByCluster[0])
	assert.Equal(t, "response", result.IntentByCluster[1])

	require.NotNil(t, gotReq)
	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/"+AnalyseEndpoint, gotReq.URL.Path)
	assert.Equal(t, "Bearer test_api_key", gotReq.Header.Get("Authorization"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.NotNil(t, gotBody.ConversationData)
	assert.Nil(t, gotBody.MinClusters)
	assert.Nil(t, gotBody.MaxClusters)
}

func TestAnalyseSendsClusterBounds(t *testing.T) {
	var gotBody AnalysisRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transition_matrix": [[1.0]], "intent_by_cluster": {"0": "greeting"}}`))
	})

	_, err := client.Analyse(context.Background(), testConversation,
		WithMinClusters(2), WithMaxClusters(5))
	require.NoError(t, err)

	require.NotNil(t, gotBody.MinClusters)
	require.NotNil(t, gotBody.MaxClusters)
	assert.Equal(t, 2, *gotBody.MinClusters)
	assert.Equal(t, 5, *gotBody.MaxClusters)
}

func TestAnalyseInvalidAPIKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail": "Invalid API Key"}`))
	})

	_, err := client.Analyse(context.Background(), testConversation)

	var keyErr *InvalidAPIKeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "Invalid API Key", keyErr.Detail)
}

func TestAnalyseInsufficientCredits(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail": "Insufficient credits"}`))
	})

	_, err := client.Analyse(context.Background(), testConversation)

	var creditsErr *InsufficientCreditsError
	require.ErrorAs(t, err, &creditsErr)
}

func TestAnalyseMalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"invalid_key": "unexpected_data"}`))
	})

	_, err := client.Analyse(context.Background(), testConversation)

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Contains(t, analysisErr.Message, "transition_matrix")
	assert.Contains(t, analysisErr.Message, "intent_by_cluster")
}

func TestAnalyseServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	})

	_, err := client.Analyse(context.Background(), testConversation)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "Error 500")
}

func TestAnalyseUnprocessableEntity(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": [{"type": "missing", "loc": ["header", "authorization"], "msg": "Field required"}]}`))
	})

	_, err := client.Analyse(context.Background(), testConversation)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "Error 422")
}

func TestAnalyseRejectsNonMapConversationData(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Analyse(context.Background(), []string{"not a map"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "conversation_data")
	assert.Zero(t, *requests)
}

func TestAnalyseRejectsNonPositiveMinClusters(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Analyse(context.Background(), testConversation, WithMinClusters(0))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "positive")
	assert.Zero(t, *requests)
}

func TestAnalyseRejectsNonPositiveMaxClusters(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Analyse(context.Background(), testConversation, WithMaxClusters(-5))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "positive")
	assert.Zero(t, *requests)
}

func TestAnalyseRejectsInvertedClusterBounds(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Analyse(context.Background(), testConversation,
		WithMinClusters(10), WithMaxClusters(5))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "max_clusters")
	assert.Zero(t, *requests)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("key", "http://localhost:8002/")
	assert.Equal(t, "http://localhost:8002", client.BaseURL())
}
