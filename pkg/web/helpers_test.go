package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	testCases := []struct {
		name       string
		pathValue  string
		expectedID int64
		expectedOK bool
	}{
		{name: "valid id", pathValue: "42", expectedID: 42, expectedOK: true},
		{name: "not a number", pathValue: "abc", expectedOK: false},
		{name: "overflow", pathValue: "99999999999999999999", expectedOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tc.pathValue)
			rr := httptest.NewRecorder()

			// when
			id, ok := ParseID(rr, req, discardLogger(), "id")

			// then
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedID, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.JSONEq(t, `{"error":"Invalid ID: `+tc.pathValue+`"}`, rr.Body.String())
			}
		})
	}
}

func TestRespondJSON_NilPayload(t *testing.T) {
	// given
	rr := httptest.NewRecorder()

	// when
	RespondJSON(rr, discardLogger(), http.StatusNotFound, nil)

	// then
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Empty(t, rr.Header().Get("Content-Type"))
}

type body struct {
	Name  string `json:"name" validate:"required,max=3"`
	Count *int   `json:"count" validate:"required"`
}

func TestDecodeAndValidateBody(t *testing.T) {
	testCases := []struct {
		name         string
		payload      string
		expectedOK   bool
		expectedBody string
	}{
		{name: "valid", payload: `{"name":"abc","count":1}`, expectedOK: true},
		{name: "malformed json", payload: `{"name":`, expectedBody: `{"error":"Invalid request body"}`},
		{
			name:         "field failures",
			payload:      `{"name":"abcd"}`,
			expectedBody: `{"validation_errors":{"Name":"failed on rule: max","Count":"failed on rule: required"}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.payload))
			rr := httptest.NewRecorder()
			var dst body

			// when
			ok := DecodeJSON(rr, req, discardLogger(), &dst) &&
				ValidateBody(rr, req, discardLogger(), validator.New(), dst)

			// then
			assert.Equal(t, tc.expectedOK, ok)
			if !tc.expectedOK {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}
