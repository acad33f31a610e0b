package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/saas_validator/app/display/internal/conf"
)

func TestValidatorClient_Validate(t *testing.T) {
	var got validateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"query":"coffee","recommendations":["go"],"opportunity_score":6,"risk_score":4,"recommendation":"VALIDATE","processing_time":1.2}`))
	}))
	defer ts.Close()

	c := NewValidatorClient(&conf.Validator{Url: ts.URL + "/", Timeout: "5s"})
	res, err := c.Validate(context.Background(), "coffee")
	require.NoError(t, err)

	assert.Equal(t, "coffee", got.Query)
	assert.True(t, got.IncludeTrends)
	assert.Equal(t, 6, res.OpportunityScore)
	assert.Equal(t, []string{"go"}, res.Recommendations)
}

func TestValidatorClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"handled failure", http.StatusOK, `{"success":false,"error":"model failure: timeout","recommendations":[]}`},
		{"bad request", http.StatusBadRequest, `{"error":"query is required"}`},
		{"server error", http.StatusInternalServerError, `boom`},
		{"garbage", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := NewValidatorClient(&conf.Validator{Url: ts.URL}).Validate(context.Background(), "x")
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestValidatorClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewValidatorClient(&conf.Validator{Url: url, Timeout: "1s"}).Validate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
