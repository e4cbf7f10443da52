package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adesao-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload() domain.EnrollmentPayload {
	return domain.EnrollmentPayload{
		ReferralID:  "110956",
		CPF:         "52998224725",
		BirthISO:    "1990-06-15",
		Name:        "Alice Souza",
		Email:       "alice@example.com",
		Cell:        "11987654321",
		CEP:         "01310100",
		District:    "Bela Vista",
		City:        "São Paulo",
		State:       "SP",
		Street:      "Avenida Paulista",
		Number:      "1000",
		ChipType:    domain.ChipPhysical,
		PlanID:      "178",
		FreightType: domain.FreightLetter,
	}
}

func TestSubmit_FormFields(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	b := NewBridge(srv.URL, "tok123", time.Millisecond)
	_, err := b.Submit(context.Background(), payload())
	require.NoError(t, err)

	assert.Equal(t, "tok123", form["_token"][0])
	assert.Equal(t, "0", form["status"][0])
	assert.Equal(t, "110956", form["father"][0])
	assert.Equal(t, "Recorrente", form["type"][0])
	assert.Equal(t, "52998224725", form["cpf"][0])
	assert.Equal(t, "1990-06-15", form["birth"][0])
	assert.Equal(t, "", form["phone"][0])
	assert.Equal(t, "11987654321", form["cell"][0])
	assert.Equal(t, "178", form["plan_id"][0])
	assert.Equal(t, "Carta", form["typeFrete"][0])
}

func TestSubmit_CleanBody_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>Cadastro efetuado</html>"))
	}))
	defer srv.Close()

	b := NewBridge(srv.URL, "tok", time.Millisecond)
	outcome, err := b.Submit(context.Background(), payload())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuccess, outcome)
}

func TestSubmit_DuplicateMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>O CPF já está sendo utilizado por outro associado.</html>"))
	}))
	defer srv.Close()

	b := NewBridge(srv.URL, "tok", time.Millisecond)
	outcome, err := b.Submit(context.Background(), payload())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDuplicate, outcome)
}

func TestSubmit_EmptyBody_Unknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := NewBridge(srv.URL, "tok", time.Millisecond)
	outcome, err := b.Submit(context.Background(), payload())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnknown, outcome)
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	b := NewBridge(srv.URL, "tok", time.Millisecond)
	_, err := b.Submit(context.Background(), payload())
	assert.Error(t, err)
}

func TestSubmit_WaitsSettlementWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	settle := 150 * time.Millisecond
	b := NewBridge(srv.URL, "tok", settle)
	start := time.Now()
	_, err := b.Submit(context.Background(), payload())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), settle)
}
