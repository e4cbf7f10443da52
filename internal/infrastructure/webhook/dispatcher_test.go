package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adesao-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_MappedReferral_PostsSummary(t *testing.T) {
	var got domain.NotificationSummary
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(map[string]string{"110956": srv.URL})
	summary := domain.NotificationSummary{
		Name:       "Alice Souza",
		CPF:        "529.982.247-25",
		Plan:       "VIVO - 20GB",
		ReferralID: "110956",
	}
	require.NoError(t, d.Dispatch(context.Background(), summary))

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Alice Souza", got.Name)
	assert.Equal(t, "529.982.247-25", got.CPF)
	assert.Equal(t, "110956", got.ReferralID)
}

func TestDispatch_UnmappedReferral_Skipped(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	d := NewDispatcher(map[string]string{"110956": srv.URL})
	err := d.Dispatch(context.Background(), domain.NotificationSummary{ReferralID: "999999"})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestDispatch_Non2xx_NotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(map[string]string{"110956": srv.URL})
	err := d.Dispatch(context.Background(), domain.NotificationSummary{ReferralID: "110956"})
	assert.NoError(t, err)
}

func TestDispatch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	d := NewDispatcher(map[string]string{"110956": srv.URL})
	err := d.Dispatch(context.Background(), domain.NotificationSummary{ReferralID: "110956"})
	assert.Error(t, err)
}
