package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"plantsel/internal/store"
	"plantsel/internal/store/memory"
)

type memorySlot struct {
	code string
}

func (s *memorySlot) Load() string { return s.code }

func (s *memorySlot) Store(code string) error {
	s.code = code
	return nil
}

func (s *memorySlot) Clear() error {
	s.code = ""
	return nil
}

func seedTicket(t *testing.T, st *memory.Store, code, name string) string {
	t.Helper()
	ticket, err := st.CreateTicket(context.Background(), store.CreateTicketInput{
		Code:      code,
		OwnerName: name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return ticket.ID
}

func TestResolveFromAddress(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	seedTicket(t, st, "AB12CD34", "")
	slot := &memorySlot{}
	resolver := NewResolver(st, slot)

	sess, address, err := resolver.Resolve(ctx, "https://plants.example.com/?ticket=AB12CD34")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated session")
	}
	if sess.Ticket.Code != "AB12CD34" {
		t.Fatalf("expected resolved ticket, got %+v", sess.Ticket)
	}
	if !sess.NeedsClaim {
		t.Fatalf("unnamed ticket must prompt for a claim")
	}
	if slot.code != "AB12CD34" {
		t.Fatalf("expected code persisted, slot holds %q", slot.code)
	}
	if want := "https://plants.example.com/"; address != want {
		t.Fatalf("expected code stripped from address, got %q", address)
	}
}

func TestResolveAddressBeatsSlot(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	seedTicket(t, st, "AB12CD34", "Jo")
	seedTicket(t, st, "EF56GH78", "Sam")
	slot := &memorySlot{code: "EF56GH78"}
	resolver := NewResolver(st, slot)

	sess, _, err := resolver.Resolve(ctx, "https://plants.example.com/?ticket=AB12CD34")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sess.Ticket.Code != "AB12CD34" {
		t.Fatalf("address code must win over the slot, got %q", sess.Ticket.Code)
	}
	if slot.code != "AB12CD34" {
		t.Fatalf("expected slot rewritten, holds %q", slot.code)
	}
}

func TestResolveFromSlot(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	seedTicket(t, st, "AB12CD34", "Jo")
	slot := &memorySlot{code: "AB12CD34"}
	resolver := NewResolver(st, slot)

	sess, address, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated session from slot")
	}
	if sess.NeedsClaim {
		t.Fatalf("named ticket must not prompt for a claim")
	}
	if address != "" {
		t.Fatalf("expected address untouched, got %q", address)
	}
}

func TestResolveStaleCodeClearsSlot(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	slot := &memorySlot{code: "GONE2222"}
	resolver := NewResolver(st, slot)

	sess, _, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("stale code must leave the session unauthenticated")
	}
	if slot.code != "" {
		t.Fatalf("expected stale slot cleared, holds %q", slot.code)
	}
}

func TestResolveWithoutCandidate(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(memory.NewStore(), &memorySlot{})

	sess, _, err := resolver.Resolve(ctx, "https://plants.example.com/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("expected unauthenticated session")
	}
}

func TestClaim(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	id := seedTicket(t, st, "AB12CD34", "")
	resolver := NewResolver(st, &memorySlot{code: "AB12CD34"})

	sess, _, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := resolver.Claim(ctx, &sess, "  Jo  "); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if sess.Ticket.OwnerName != "Jo" {
		t.Fatalf("expected trimmed name on session, got %q", sess.Ticket.OwnerName)
	}
	if sess.NeedsClaim {
		t.Fatalf("claimed session must not keep prompting")
	}
	ticket, err := st.GetTicketByID(ctx, id)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if ticket.OwnerName != "Jo" {
		t.Fatalf("expected name persisted, got %q", ticket.OwnerName)
	}

	// Claiming again overwrites the earlier name.
	if err := resolver.Claim(ctx, &sess, "Joanne"); err != nil {
		t.Fatalf("reclaim: %v", err)
	}
	ticket, _ = st.GetTicketByID(ctx, id)
	if ticket.OwnerName != "Joanne" {
		t.Fatalf("expected overwritten name, got %q", ticket.OwnerName)
	}

	// A fresh resolution of the claimed ticket must not prompt again.
	resolved, _, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("re-resolve: %v", err)
	}
	if resolved.NeedsClaim {
		t.Fatalf("claimed ticket must not prompt on a later session")
	}
}

func TestClaimEmptyNameIsNoOp(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	id := seedTicket(t, st, "AB12CD34", "")
	resolver := NewResolver(st, &memorySlot{code: "AB12CD34"})

	sess, _, err := resolver.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := resolver.Claim(ctx, &sess, "   "); err != nil {
		t.Fatalf("empty claim: %v", err)
	}
	ticket, _ := st.GetTicketByID(ctx, id)
	if ticket.OwnerName != "" {
		t.Fatalf("empty claim must not write, got %q", ticket.OwnerName)
	}
}

func TestClaimWithoutSession(t *testing.T) {
	resolver := NewResolver(memory.NewStore(), &memorySlot{})
	sess := Session{}
	if err := resolver.Claim(context.Background(), &sess, "Jo"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
