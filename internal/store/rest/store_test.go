package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"plantsel/internal/store"
)

func TestGetTicketByCode(t *testing.T) {
	var gotPath, gotFilter, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFilter = r.URL.Query().Get("ticket_code")
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"t1","ticket_code":"AB12CD34","user_name":"Jo","is_admin":false}]`))
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{APIKey: "secret"})
	ticket, err := st.GetTicketByCode(context.Background(), "AB12CD34")
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if gotPath != "/tickets" {
		t.Fatalf("expected /tickets, got %s", gotPath)
	}
	if gotFilter != "eq.AB12CD34" {
		t.Fatalf("expected eq filter, got %q", gotFilter)
	}
	if gotKey != "secret" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if ticket.ID != "t1" || ticket.OwnerName != "Jo" {
		t.Fatalf("unexpected ticket %+v", ticket)
	}
}

func TestGetTicketByCodeEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{})
	if _, err := st.GetTicketByCode(context.Background(), "GONE2222"); !errors.Is(err, store.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestCreateTicketConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{})
	_, err := st.CreateTicket(context.Background(), store.CreateTicketInput{Code: "AB12CD34"})
	if !errors.Is(err, store.ErrCodeTaken) {
		t.Fatalf("expected ErrCodeTaken, got %v", err)
	}
}

func TestCreatePlantRequestsRepresentation(t *testing.T) {
	var gotPrefer string
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p1","common_name":"Correa","botanical_name":"Correa alba","colour_tags":[]}]`))
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{})
	plant, err := st.CreatePlant(context.Background(), store.PlantInput{
		CommonName:    "Correa",
		BotanicalName: "Correa alba",
		Notes:         "Hardy coastal shrub",
	})
	if err != nil {
		t.Fatalf("create plant: %v", err)
	}
	if gotPrefer != "return=representation" {
		t.Fatalf("expected representation preference, got %q", gotPrefer)
	}
	if gotPayload["description"] != "Hardy coastal shrub" {
		t.Fatalf("notes must travel as description, got %v", gotPayload["description"])
	}
	if _, ok := gotPayload["colour_tags"]; !ok {
		t.Fatalf("colour_tags must always be present in the payload")
	}
	if plant.ID != "p1" {
		t.Fatalf("unexpected plant %+v", plant)
	}
}

func TestListPlantsOrdersNewestFirst(t *testing.T) {
	var gotOrder string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrder = r.URL.Query().Get("order")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p2"},{"id":"p1"}]`))
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{})
	plants, err := st.ListPlants(context.Background())
	if err != nil {
		t.Fatalf("list plants: %v", err)
	}
	if gotOrder != "created_at.desc" {
		t.Fatalf("expected created_at.desc ordering, got %q", gotOrder)
	}
	if len(plants) != 2 || plants[0].ID != "p2" {
		t.Fatalf("unexpected plants %+v", plants)
	}
}

func TestListFavouritesSelectsPlantIDs(t *testing.T) {
	var gotSelect, gotTicket string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSelect = r.URL.Query().Get("select")
		gotTicket = r.URL.Query().Get("ticket_id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"plant_id":"p1"},{"plant_id":"p2"}]`))
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{})
	ids, err := st.ListFavourites(context.Background(), "t1")
	if err != nil {
		t.Fatalf("list favourites: %v", err)
	}
	if gotSelect != "plant_id" {
		t.Fatalf("expected plant_id projection, got %q", gotSelect)
	}
	if gotTicket != "eq.t1" {
		t.Fatalf("expected ticket filter, got %q", gotTicket)
	}
	if len(ids) != 2 || ids[0] != "p1" || ids[1] != "p2" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestRemoveFavouriteFiltersBothColumns(t *testing.T) {
	var gotMethod, gotTicket, gotPlant string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotTicket = r.URL.Query().Get("ticket_id")
		gotPlant = r.URL.Query().Get("plant_id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{})
	if err := st.RemoveFavourite(context.Background(), "t1", "p1"); err != nil {
		t.Fatalf("remove favourite: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", gotMethod)
	}
	if gotTicket != "eq.t1" || gotPlant != "eq.p1" {
		t.Fatalf("expected both row filters, got %q and %q", gotTicket, gotPlant)
	}
}

func TestServerErrorCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`relation does not exist`))
	}))
	defer server.Close()

	st := NewStore(server.URL, Options{})
	_, err := st.ListPlants(context.Background())
	if err == nil {
		t.Fatalf("expected error for 500")
	}
	if got := err.Error(); got != "row store: relation does not exist" {
		t.Fatalf("unexpected error message %q", got)
	}
}
