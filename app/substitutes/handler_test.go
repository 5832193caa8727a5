package substitutes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutriswap/nutriswap/models"
)

func newSubstitutesRequest(t *testing.T, handler *SubstitutesHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}/substitutes", handler.HandleGet)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleGet(t *testing.T) {
	reference := product(1, models.GradeB, 1)
	reference.Name = "Pain"
	substitute := product(2, models.GradeA, 1)
	substitute.Name = "Pain Complet"
	substitute.Brand = "Boulangerie"

	testCases := []struct {
		name               string
		path               string
		provider           *mockProvider
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Success with one substitute",
			path:               "/products/1/substitutes",
			provider:           newProvider(reference, substitute),
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, uint(1), resp.Reference)
				assert.Len(t, resp.Substitutes, 1)
				assert.Equal(t, "Pain Complet", resp.Substitutes[0].Name)
				assert.Equal(t, "A", resp.Substitutes[0].Grade)
			},
		},
		{
			name:               "No qualifying substitutes",
			path:               "/products/1/substitutes",
			provider:           newProvider(reference),
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Empty(t, resp.Substitutes)
			},
		},
		{
			name:               "Unknown product",
			path:               "/products/99/substitutes",
			provider:           newProvider(reference),
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Non-numeric id",
			path:               "/products/pain/substitutes",
			provider:           newProvider(reference),
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewSubstitutesHandler(NewFinder(tc.provider))
			rec := newSubstitutesRequest(t, handler, tc.path)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
