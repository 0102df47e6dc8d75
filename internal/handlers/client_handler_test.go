package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubClientService struct {
	addResult    *models.Client
	addErr       error
	updateResult *models.Client
	updateErr    error
	deleteErr    error
	adjustResult *models.Client
	adjustErr    error
	listResult   []models.Client
	listErr      error
	history      []models.HistoryEntry
	historyErr   error
	stats        *models.ClientStatistics
	statsErr     error
	lastInput    services.ClientInput
	lastClientID int64
	lastDelta    int
	lastFilter   services.ClientFilter
}

func (s *stubClientService) AddClient(_ context.Context, input services.ClientInput) (*models.Client, error) {
	s.lastInput = input
	return s.addResult, s.addErr
}

func (s *stubClientService) UpdateClient(_ context.Context, clientID int64, input services.ClientInput) (*models.Client, error) {
	s.lastClientID = clientID
	s.lastInput = input
	return s.updateResult, s.updateErr
}

func (s *stubClientService) DeleteClient(_ context.Context, clientID int64) error {
	s.lastClientID = clientID
	return s.deleteErr
}

func (s *stubClientService) AdjustCredits(_ context.Context, clientID int64, delta int) (*models.Client, error) {
	s.lastClientID = clientID
	s.lastDelta = delta
	return s.adjustResult, s.adjustErr
}

func (s *stubClientService) ListFiltered(_ context.Context, filter services.ClientFilter) ([]models.Client, error) {
	s.lastFilter = filter
	return s.listResult, s.listErr
}

func (s *stubClientService) History(_ context.Context, clientID int64) ([]models.HistoryEntry, error) {
	s.lastClientID = clientID
	return s.history, s.historyErr
}

func (s *stubClientService) Statistics(_ context.Context, clientID int64) (*models.ClientStatistics, error) {
	s.lastClientID = clientID
	return s.stats, s.statsErr
}

func newClientApp(service *stubClientService) *fiber.App {
	handler := NewClientHandler(service)
	app := fiber.New()
	app.Post("/api/v1/clients", handler.AddClient)
	app.Put("/api/v1/clients/:id", handler.UpdateClient)
	app.Delete("/api/v1/clients/:id", handler.DeleteClient)
	app.Post("/api/v1/clients/:id/credits", handler.AdjustCredits)
	app.Get("/api/v1/clients", handler.ListClients)
	app.Get("/api/v1/clients/:id/history", handler.GetHistory)
	app.Get("/api/v1/clients/:id/statistics", handler.GetStatistics)
	return app
}

func TestAddClientReturnsCreated(t *testing.T) {
	service := &stubClientService{
		addResult: &models.Client{ID: 1, Name: "Anna", Type: models.ClientTypeSingle, Price: 1000},
	}
	app := newClientApp(service)

	body := `{"name":"Anna","type":"single","price":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastInput.Name != "Anna" || service.lastInput.Type != models.ClientTypeSingle {
		t.Fatalf("unexpected input: %+v", service.lastInput)
	}

	var payload struct {
		Client models.Client `json:"client"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Client.ID != 1 {
		t.Fatalf("expected client id 1, got %d", payload.Client.ID)
	}
}

func TestAddClientRequiresName(t *testing.T) {
	service := &stubClientService{}
	app := newClientApp(service)

	body := `{"type":"single","price":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAddClientMapsDuplicateName(t *testing.T) {
	service := &stubClientService{addErr: services.ErrDuplicateName}
	app := newClientApp(service)

	body := `{"name":"Anna","type":"single","price":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestUpdateClientMapsNotFound(t *testing.T) {
	service := &stubClientService{updateErr: services.ErrNotFound}
	app := newClientApp(service)

	body := `{"name":"Anna","type":"single","price":1000}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/clients/42", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if service.lastClientID != 42 {
		t.Fatalf("expected client id 42, got %d", service.lastClientID)
	}
}

func TestUpdateClientRejectsBadID(t *testing.T) {
	service := &stubClientService{}
	app := newClientApp(service)

	body := `{"name":"Anna","type":"single","price":1000}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/clients/abc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteClientReturnsNoContent(t *testing.T) {
	service := &stubClientService{}
	app := newClientApp(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/clients/3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if service.lastClientID != 3 {
		t.Fatalf("expected client id 3, got %d", service.lastClientID)
	}
}

func TestAdjustCreditsRejectsZeroDelta(t *testing.T) {
	service := &stubClientService{}
	app := newClientApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients/3/credits", strings.NewReader(`{"delta":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAdjustCreditsMapsNegativeBalance(t *testing.T) {
	service := &stubClientService{adjustErr: services.ErrNegativeBalance}
	app := newClientApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients/3/credits", strings.NewReader(`{"delta":-5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if service.lastDelta != -5 {
		t.Fatalf("expected delta -5, got %d", service.lastDelta)
	}
}

func TestListClientsForwardsFilter(t *testing.T) {
	service := &stubClientService{
		listResult: []models.Client{{ID: 1, Name: "Anna"}},
	}
	app := newClientApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients?name=an&status=active&type=module", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastFilter.Name != "an" || service.lastFilter.Status != "active" || service.lastFilter.Type != "module" {
		t.Fatalf("unexpected filter: %+v", service.lastFilter)
	}

	var payload struct {
		Clients []models.Client `json:"clients"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(payload.Clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(payload.Clients))
	}
}

func TestListClientsRejectsUnknownStatus(t *testing.T) {
	service := &stubClientService{}
	app := newClientApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients?status=archived", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetStatisticsReturnsPayload(t *testing.T) {
	service := &stubClientService{
		stats: &models.ClientStatistics{TotalSessions: 4, TotalAmount: 3600},
	}
	app := newClientApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/2/statistics", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Statistics models.ClientStatistics `json:"statistics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Statistics.TotalSessions != 4 || payload.Statistics.TotalAmount != 3600 {
		t.Fatalf("unexpected statistics: %+v", payload.Statistics)
	}
}
