package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/location"
	"github.com/jorget15/UnityAid/routes"
	"github.com/jorget15/UnityAid/store"
	"github.com/jorget15/UnityAid/types"
)

func newTestRouter() (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)

	st := store.New()
	st.Seed(store.DefaultResources())
	return routes.SetupRouter(st, bus.New("stream"), bus.New("a2a"), nil, &location.Extractor{}), st
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostReportCreatesAndReturnsReport(t *testing.T) {
	r, st := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/report",
		`{"description": "Elderly man needs insulin", "lat": 25.77, "lon": -80.19, "urgency": 4}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rep types.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Len(t, rep.ID, 8)
	assert.Equal(t, types.Other, rep.Category)
	assert.Equal(t, 4, rep.Urgency)

	stored, ok := st.GetReport(rep.ID)
	require.True(t, ok)
	assert.Equal(t, "Elderly man needs insulin", stored.Description)
}

func TestPostReportRejectsBadUrgency(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/report",
		`{"description": "Need water", "urgency": 9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "urgency")
}

func TestPostReportRejectsMissingDescription(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/report", `{"urgency": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListResourcesReturnsSeeds(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/resources", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resources []types.Resource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resources))
	require.Len(t, resources, 4)
	assert.Equal(t, "rc1", resources[0].ID)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 0, body["reports"])
	assert.EqualValues(t, 4, body["resources"])
}

func TestMapGeoJSON(t *testing.T) {
	r, _ := newTestRouter()
	doJSON(t, r, http.MethodPost, "/report",
		`{"description": "Flooded street", "lat": 25.7, "lon": -80.2, "urgency": 2}`)

	w := doJSON(t, r, http.MethodGet, "/map.geojson", "")
	require.Equal(t, http.StatusOK, w.Code)

	var fc types.FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 5) // 1 report + 4 resources
}

func TestClassifyConfidentInput(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/classify",
		`{"input": "Person unconscious and not breathing, building collapsed on them"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Classification     types.PriorityResult `json:"classification"`
		NeedsClarification bool                 `json:"needs_clarification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Classification.Priority)
	assert.False(t, body.NeedsClarification)
}

func TestClassifyVagueInputAsksQuestions(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/classify", `{"input": "someone got hurt"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Classification      types.PriorityResult `json:"classification"`
		NeedsClarification  bool                 `json:"needs_clarification"`
		ClarifyingQuestions []string             `json:"clarifying_questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.NeedsClarification)
	assert.NotEmpty(t, body.ClarifyingQuestions)
}

func TestClassifyWithAnswersEscalates(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/classify/answers",
		`{"description": "someone got hurt",
		  "qa_pairs": [{"question": "Are they in immediate danger?", "answer": "Yes, they are unconscious and not breathing"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Classification types.PriorityResult      `json:"classification"`
		Session        types.ConversationSession `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "enhanced_with_qa", body.Classification.Source)
	assert.Greater(t, body.Classification.Priority, 3)
	assert.Equal(t, "someone got hurt", body.Session.OriginalDescription)
	assert.Equal(t, body.Classification.QABoost, body.Session.Boost)
}

func TestClassifyRejectsMissingInput(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/classify", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocatePreview(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/locate",
		`{"text": "Flooding at 1234 SW 8th Street"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var info location.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "pattern_matching", info.Method)
	assert.Contains(t, info.Address, "1234")
}
