// Package rest implements the row store over a PostgREST-style HTTP API,
// the interface the managed backend exposes publicly. Each operation is a
// single row-level request; filters travel as query-string operators.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"plantsel/internal/models"
	"plantsel/internal/store"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Store struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type Options struct {
	APIKey  string
	Timeout time.Duration
}

func NewStore(baseURL string, options Options) *Store {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  options.APIKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (s *Store) CreateTicket(ctx context.Context, input store.CreateTicketInput) (models.Ticket, error) {
	payload := map[string]any{
		"ticket_code": input.Code,
		"is_admin":    input.IsAdmin,
	}
	if input.OwnerName != "" {
		payload["user_name"] = input.OwnerName
	}

	var rows []models.Ticket
	if err := s.do(ctx, http.MethodPost, "/tickets", nil, payload, &rows); err != nil {
		return models.Ticket{}, err
	}
	if len(rows) == 0 {
		return models.Ticket{}, fmt.Errorf("create ticket: empty response")
	}
	return rows[0], nil
}

func (s *Store) GetTicketByCode(ctx context.Context, code string) (models.Ticket, error) {
	query := url.Values{"ticket_code": {"eq." + code}}
	var rows []models.Ticket
	if err := s.do(ctx, http.MethodGet, "/tickets", query, nil, &rows); err != nil {
		return models.Ticket{}, err
	}
	if len(rows) == 0 {
		return models.Ticket{}, store.ErrTicketNotFound
	}
	return rows[0], nil
}

func (s *Store) GetTicketByID(ctx context.Context, id string) (models.Ticket, error) {
	query := url.Values{"id": {"eq." + id}}
	var rows []models.Ticket
	if err := s.do(ctx, http.MethodGet, "/tickets", query, nil, &rows); err != nil {
		return models.Ticket{}, err
	}
	if len(rows) == 0 {
		return models.Ticket{}, store.ErrTicketNotFound
	}
	return rows[0], nil
}

func (s *Store) UpdateOwnerName(ctx context.Context, id, name string) error {
	query := url.Values{"id": {"eq." + id}}
	return s.do(ctx, http.MethodPatch, "/tickets", query, map[string]any{"user_name": name}, nil)
}

func (s *Store) ListNonAdminTickets(ctx context.Context) ([]models.Ticket, error) {
	query := url.Values{
		"is_admin": {"eq.false"},
		"order":    {"created_at.desc"},
	}
	var rows []models.Ticket
	if err := s.do(ctx, http.MethodGet, "/tickets", query, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	query := url.Values{"id": {"eq." + id}}
	return s.do(ctx, http.MethodDelete, "/tickets", query, nil, nil)
}

func (s *Store) CreatePlant(ctx context.Context, input store.PlantInput) (models.Plant, error) {
	var rows []models.Plant
	if err := s.do(ctx, http.MethodPost, "/plants", nil, plantPayload(input), &rows); err != nil {
		return models.Plant{}, err
	}
	if len(rows) == 0 {
		return models.Plant{}, fmt.Errorf("create plant: empty response")
	}
	return rows[0], nil
}

func (s *Store) ListPlants(ctx context.Context) ([]models.Plant, error) {
	query := url.Values{"order": {"created_at.desc"}}
	var rows []models.Plant
	if err := s.do(ctx, http.MethodGet, "/plants", query, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) UpdatePlant(ctx context.Context, id string, input store.PlantInput) error {
	query := url.Values{"id": {"eq." + id}}
	return s.do(ctx, http.MethodPatch, "/plants", query, plantPayload(input), nil)
}

func (s *Store) DeletePlant(ctx context.Context, id string) error {
	query := url.Values{"id": {"eq." + id}}
	return s.do(ctx, http.MethodDelete, "/plants", query, nil, nil)
}

func (s *Store) AddFavourite(ctx context.Context, ticketID, plantID string) error {
	payload := map[string]any{
		"ticket_id": ticketID,
		"plant_id":  plantID,
	}
	return s.do(ctx, http.MethodPost, "/favourites", nil, payload, nil)
}

func (s *Store) RemoveFavourite(ctx context.Context, ticketID, plantID string) error {
	query := url.Values{
		"ticket_id": {"eq." + ticketID},
		"plant_id":  {"eq." + plantID},
	}
	return s.do(ctx, http.MethodDelete, "/favourites", query, nil, nil)
}

func (s *Store) RemoveFavouritesByTicket(ctx context.Context, ticketID string) error {
	query := url.Values{"ticket_id": {"eq." + ticketID}}
	return s.do(ctx, http.MethodDelete, "/favourites", query, nil, nil)
}

func (s *Store) RemoveFavouritesByPlant(ctx context.Context, plantID string) error {
	query := url.Values{"plant_id": {"eq." + plantID}}
	return s.do(ctx, http.MethodDelete, "/favourites", query, nil, nil)
}

func (s *Store) ListFavourites(ctx context.Context, ticketID string) ([]string, error) {
	query := url.Values{
		"ticket_id": {"eq." + ticketID},
		"select":    {"plant_id"},
	}
	var rows []struct {
		PlantID string `json:"plant_id"`
	}
	if err := s.do(ctx, http.MethodGet, "/favourites", query, nil, &rows); err != nil {
		return nil, err
	}
	plantIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		plantIDs = append(plantIDs, row.PlantID)
	}
	return plantIDs, nil
}

func plantPayload(input store.PlantInput) map[string]any {
	tags := input.ColourTags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"common_name":    input.CommonName,
		"botanical_name": input.BotanicalName,
		"category":       input.Category,
		"sub_category":   input.SubCategory,
		"height":         input.Height,
		"width":          input.Width,
		"image_url":      input.ImageURL,
		"description":    input.Notes,
		"colour_tags":    tags,
	}
}

func (s *Store) do(ctx context.Context, method, path string, query url.Values, payload, result any) error {
	target := s.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	if method == http.MethodPost && result != nil {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return mapStatus(resp)
	}
	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func mapStatus(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	switch resp.StatusCode {
	case http.StatusNotFound:
		return store.ErrTicketNotFound
	case http.StatusConflict:
		// PostgREST reports unique violations as 409.
		return store.ErrCodeTaken
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("row store: %s", msg)
}
