package wire

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"theater-booking/internal/data/repository"
	"theater-booking/internal/notify"
	"theater-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := zap.NewNop()
	app := Wiring(repository.NewMemoryRepository(log), usecase.DefaultLayoutCatalog(), notify.NopPublisher{}, log)
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func firstSessionID() string {
	return repository.DemoSessions()[0].ID
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReservationFlow(t *testing.T) {
	srv := newTestServer(t)
	sessionID := firstSessionID()

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/sessions/"+sessionID+"/seats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var seatMap struct {
		Summary struct {
			Total    int `json:"total"`
			Occupied int `json:"occupied"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &seatMap))
	assert.Equal(t, 206, seatMap.Summary.Total)
	assert.Equal(t, 0, seatMap.Summary.Occupied)

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/reservations/quote", map[string]any{
		"session_id":  sessionID,
		"national_id": "529.982.247-25",
		"seat_codes":  []string{"F1-1", "R1-1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quote struct {
		Total     string `json:"total"`
		Available bool   `json:"available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.Equal(t, "95.00", quote.Total)
	assert.True(t, quote.Available)

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/reservations", map[string]any{
		"session_id":  sessionID,
		"national_id": "529.982.247-25",
		"seat_codes":  []string{"F1-1", "R1-1"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ticket struct {
		ID      string `json:"id"`
		Barcode string `json:"barcode"`
		Total   string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ticket))
	assert.Equal(t, "95.00", ticket.Total)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/tickets/"+ticket.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := http.Get(srv.URL + "/api/tickets/" + ticket.ID + "/barcode.png")
	require.NoError(t, err)
	img.Body.Close()
	assert.Equal(t, http.StatusOK, img.StatusCode)
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))

	resp, env = doJSON(t, http.MethodGet, srv.URL+"/api/customers/52998224725/tickets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, ticket.ID, page.Data[0].ID)

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/api/reservations", map[string]any{
		"session_id":  sessionID,
		"national_id": "11144477735",
		"seat_codes":  []string{"R1-1"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Status)
	assert.Contains(t, string(env.Errors), "R1-1")
}

func TestReservationErrors(t *testing.T) {
	srv := newTestServer(t)
	sessionID := firstSessionID()

	tests := []struct {
		name string
		body any
		want int
	}{
		{"malformed body", "not an object", http.StatusBadRequest},
		{"empty selection", map[string]any{"session_id": sessionID, "national_id": "11144477735", "seat_codes": []string{}}, http.StatusBadRequest},
		{"duplicate seats", map[string]any{"session_id": sessionID, "national_id": "11144477735", "seat_codes": []string{"F1-1", "F1-1"}}, http.StatusBadRequest},
		{"foreign seat", map[string]any{"session_id": sessionID, "national_id": "11144477735", "seat_codes": []string{"Q1-1"}}, http.StatusBadRequest},
		{"unknown session", map[string]any{"session_id": "nope", "national_id": "11144477735", "seat_codes": []string{"F1-1"}}, http.StatusNotFound},
		{"unknown customer", map[string]any{"session_id": sessionID, "national_id": "123", "seat_codes": []string{"F1-1"}}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/reservations", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/reservations/quote", map[string]any{
		"session_id": sessionID, "national_id": "11144477735", "seat_codes": []string{"F1-1", "F1-1"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "validation failed")
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Errors, &fields))
	assert.Contains(t, fields, "SeatCodes")

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/tickets/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/tickets/6f1c1f0e-8d4b-4c43-9a43-6c3d2d9b1a11", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConcurrentReservationsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	sessionID := firstSessionID()

	const attempts = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses = make(map[int]int)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{
				"session_id":  sessionID,
				"national_id": "11144477735",
				"seat_codes":  []string{"P2-7"},
			})
			resp, err := http.Post(srv.URL+"/api/reservations", "application/json", bytes.NewReader(body))
			if err != nil {
				return
			}
			resp.Body.Close()

			mu.Lock()
			statuses[resp.StatusCode]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, statuses[http.StatusCreated])
	assert.Equal(t, attempts-1, statuses[http.StatusConflict])
}
