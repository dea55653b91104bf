package viewer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"welcomecrm/internal/pricing"
	"welcomecrm/internal/proposal"
	"welcomecrm/internal/selection"
)

// --------------------------------------------------
// Mock Store
// --------------------------------------------------

type MockStore struct {
	proposal *proposal.Proposal
	version  *proposal.Version

	upserted []*proposal.ClientSelection
	events   []*proposal.Event

	acceptedTotal   float64
	acceptedVersion string
	markAcceptedRan bool

	viewedIDs []string

	upsertErr       error
	markAcceptedErr error
	markViewedErr   error
	insertEventErr  error
}

func (m *MockStore) GetByPublicToken(ctx context.Context, token string) (*proposal.Proposal, *proposal.Version, error) {
	if m.proposal == nil || m.proposal.PublicToken != token {
		return nil, nil, errors.New("proposal not found")
	}
	return m.proposal, m.version, nil
}

func (m *MockStore) UpsertSelections(ctx context.Context, selections []*proposal.ClientSelection) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = selections
	return nil
}

func (m *MockStore) MarkAccepted(ctx context.Context, proposalID string, total float64, versionID string, at time.Time) error {
	if m.markAcceptedErr != nil {
		return m.markAcceptedErr
	}
	m.markAcceptedRan = true
	m.acceptedTotal = total
	m.acceptedVersion = versionID
	return nil
}

func (m *MockStore) MarkViewed(ctx context.Context, proposalID string) (bool, error) {
	if m.markViewedErr != nil {
		return false, m.markViewedErr
	}
	m.viewedIDs = append(m.viewedIDs, proposalID)
	return true, nil
}

func (m *MockStore) InsertEvent(ctx context.Context, event *proposal.Event) error {
	if m.insertEventErr != nil {
		return m.insertEventErr
	}
	m.events = append(m.events, event)
	return nil
}

// --------------------------------------------------
// FIXTURES
// --------------------------------------------------

// testProposal builds a sent proposal with a cover section, an exclusive
// hotel section (two options) and a lone mandatory flight.
func testProposal() (*proposal.Proposal, *proposal.Version) {
	p := &proposal.Proposal{
		ID:          "prop-1",
		Title:       "Lua de mel em Lisboa",
		PublicToken: "tok-123",
		Status:      "sent",
		Currency:    "BRL",
	}

	hotelRC := func(perNight float64) map[string]any {
		return map[string]any{
			"hotel": map[string]any{
				"hotel_name":      "Hotel",
				"price_per_night": perNight,
				"nights":          float64(3),
			},
		}
	}
	flightRC := map[string]any{
		"flights": map[string]any{
			"legs": []any{
				map[string]any{
					"leg_type": "outbound",
					"options": []any{
						map[string]any{"id": "o1", "price": float64(3000), "is_recommended": true},
					},
				},
			},
		},
	}

	v := &proposal.Version{
		ID:         "ver-1",
		ProposalID: "prop-1",
		Sections: []*proposal.Section{
			{ID: "sec-cover", SectionType: "cover", Title: "Capa"},
			{
				ID:          "sec-hotels",
				SectionType: "hotels",
				Title:       "Hotéis",
				Items: []*proposal.Item{
					{ID: "hotel-a", ItemType: "hotel", IsDefaultSelected: true, RichContent: hotelRC(500)},
					{ID: "hotel-b", ItemType: "hotel", RichContent: hotelRC(900)},
				},
			},
			{
				ID:          "sec-flights",
				SectionType: "flights",
				Title:       "Voos",
				Items: []*proposal.Item{
					{ID: "flight-a", ItemType: "flight", RichContent: flightRC},
				},
			},
		},
	}
	return p, v
}

func testService(store *MockStore) *Service {
	return NewService(store, pricing.NewEngine(nil), nil)
}

func selectedSet() map[string]selection.Selection {
	return map[string]selection.Selection{
		"hotel-a":  {Selected: true, Quantity: 1},
		"flight-a": {Selected: true, Quantity: 1},
	}
}

// --------------------------------------------------
// VALIDATION
// --------------------------------------------------

func TestValidate_ExclusiveSectionNeedsASelection(t *testing.T) {
	_, version := testProposal()
	sections := SellableSections(version.Sections)

	result := Validate(sections, map[string]selection.Selection{
		"flight-a": {Selected: true, Quantity: 1},
	})

	if result.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Errors[0] != `Selecione uma opção em "Hotéis"` {
		t.Errorf("unexpected message: %s", result.Errors[0])
	}
}

func TestValidate_SingleItemSectionsNeverFail(t *testing.T) {
	_, version := testProposal()
	sections := SellableSections(version.Sections)

	// Flight deselected: its section has one item and must not complain.
	result := Validate(sections, map[string]selection.Selection{
		"hotel-a": {Selected: true, Quantity: 1},
	})

	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
}

// --------------------------------------------------
// VIEW BUILDING
// --------------------------------------------------

func TestBuildView_AssemblesPayload(t *testing.T) {
	p, v := testProposal()
	store := &MockStore{proposal: p, version: v}
	service := testService(store)

	view, err := service.BuildView(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Sections) != 2 {
		t.Fatalf("expected cover section dropped, got %d sections", len(view.Sections))
	}
	if !view.Selections["hotel-a"].Selected || view.Selections["hotel-b"].Selected {
		t.Error("expected default hotel selected and sibling not")
	}
	if !view.Selections["flight-a"].Selected {
		t.Error("expected lone mandatory flight selected")
	}

	// Defaults: hotel-a (500 * 3) + flight (3000).
	if view.Totals.TotalPrimary != 4500 {
		t.Errorf("expected initial total 4500, got %v", view.Totals.TotalPrimary)
	}
	if view.SecondaryCurrency != "USD" {
		t.Errorf("expected USD secondary fallback, got %s", view.SecondaryCurrency)
	}
}

func TestBuildView_UnknownToken(t *testing.T) {
	store := &MockStore{}
	service := testService(store)

	if _, err := service.BuildView(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown token")
	}
}

type fakeMedia struct{}

func (fakeMedia) PublicURL(key string) string { return "https://cdn.example.com/" + key }

func TestBuildView_ResolvesStoredMediaKey(t *testing.T) {
	p, v := testProposal()
	key := "proposals/prop-1/cover.jpg"
	p.CoverImageURL = &key

	store := &MockStore{proposal: p, version: v}
	service := NewService(store, pricing.NewEngine(nil), fakeMedia{})

	view, err := service.BuildView(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(view.CoverImageURL, "https://cdn.example.com/") {
		t.Errorf("expected resolved URL, got %s", view.CoverImageURL)
	}

	// Absolute URLs pass through untouched.
	absolute := "https://elsewhere.com/cover.jpg"
	p.CoverImageURL = &absolute
	view, _ = service.BuildView(context.Background(), "tok-123")
	if view.CoverImageURL != absolute {
		t.Errorf("expected passthrough, got %s", view.CoverImageURL)
	}
}

// --------------------------------------------------
// ACCEPTANCE
// --------------------------------------------------

func TestAccept_HappyPath(t *testing.T) {
	p, v := testProposal()
	store := &MockStore{proposal: p, version: v}
	service := testService(store)

	outcome, err := service.Accept(context.Background(), "tok-123", selectedSet(), "chegamos cedo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !outcome.Accepted || outcome.State != StateAccepted {
		t.Fatalf("expected accepted outcome, got %+v", outcome)
	}
	if outcome.Total != 4500 {
		t.Errorf("expected server-side total 4500, got %v", outcome.Total)
	}

	if len(store.upserted) != 2 {
		t.Fatalf("expected 2 selection rows, got %d", len(store.upserted))
	}
	if !store.markAcceptedRan || store.acceptedTotal != 4500 || store.acceptedVersion != "ver-1" {
		t.Errorf("unexpected MarkAccepted call: total=%v version=%s", store.acceptedTotal, store.acceptedVersion)
	}

	if len(store.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(store.events))
	}
	event := store.events[0]
	if event.EventType != "proposal_accepted" {
		t.Errorf("expected proposal_accepted event, got %s", event.EventType)
	}
	if event.Payload["items_count"] != 2 {
		t.Errorf("expected items_count 2, got %v", event.Payload["items_count"])
	}
	if event.Payload["client_notes"] != "chegamos cedo" {
		t.Errorf("expected client notes in payload, got %v", event.Payload["client_notes"])
	}
}

func TestAccept_ValidationStopsBeforeStore(t *testing.T) {
	p, v := testProposal()
	store := &MockStore{proposal: p, version: v}
	service := testService(store)

	// Nothing selected in the exclusive hotel section.
	outcome, err := service.Accept(context.Background(), "tok-123", map[string]selection.Selection{
		"flight-a": {Selected: true, Quantity: 1},
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Accepted {
		t.Fatal("expected rejection")
	}
	if len(outcome.ValidationErrors) != 1 {
		t.Fatalf("expected 1 validation error, got %v", outcome.ValidationErrors)
	}
	if store.upserted != nil || store.markAcceptedRan || len(store.events) != 0 {
		t.Error("validation failure must not touch the store")
	}
}

func TestAccept_StepFailureKeepsEarlierWrites(t *testing.T) {
	p, v := testProposal()
	store := &MockStore{
		proposal:        p,
		version:         v,
		markAcceptedErr: errors.New("db down"),
	}
	service := testService(store)

	outcome, err := service.Accept(context.Background(), "tok-123", selectedSet(), "")
	if err != nil {
		t.Fatalf("load should not fail: %v", err)
	}

	if outcome.Accepted || outcome.State != StateConfirm {
		t.Fatalf("expected confirm state after failure, got %+v", outcome)
	}
	if !strings.HasPrefix(outcome.ErrorMessage, "erro ao atualizar proposta") {
		t.Errorf("expected step-identifying error, got %s", outcome.ErrorMessage)
	}

	// No rollback: step 1 stays committed, steps 2 and 3 never ran.
	if len(store.upserted) != 2 {
		t.Errorf("expected selection rows kept, got %d", len(store.upserted))
	}
	if len(store.events) != 0 {
		t.Errorf("expected no event after failed step 2, got %d", len(store.events))
	}
}

func TestAcceptance_SecondAcceptRejected(t *testing.T) {
	p, v := testProposal()
	store := &MockStore{proposal: p, version: v}

	acceptance := NewAcceptance(store)
	req := AcceptRequest{
		Proposal:   p,
		VersionID:  v.ID,
		Sections:   SellableSections(v.Sections),
		Selections: selectedSet(),
		Total:      4500,
		Currency:   "BRL",
	}

	if err := acceptance.Accept(context.Background(), req); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	if err := acceptance.Accept(context.Background(), req); err == nil || err.Error() != "proposta já aceita" {
		t.Fatalf("expected 'proposta já aceita', got %v", err)
	}

	acceptance.Reset()
	if acceptance.State() != StateConfirm {
		t.Errorf("expected confirm after reset, got %s", acceptance.State())
	}
}

// --------------------------------------------------
// VIEW TRACKING
// --------------------------------------------------

func TestTrackView_RecordsLinkOpened(t *testing.T) {
	p, v := testProposal()
	store := &MockStore{proposal: p, version: v}
	service := testService(store)

	service.TrackView(context.Background(), "prop-1", "Mozilla/5.0")

	if len(store.viewedIDs) != 1 || store.viewedIDs[0] != "prop-1" {
		t.Fatalf("expected MarkViewed for prop-1, got %v", store.viewedIDs)
	}
	if len(store.events) != 1 || store.events[0].EventType != "link_opened" {
		t.Fatalf("expected link_opened event, got %v", store.events)
	}
	if store.events[0].Payload["user_agent"] != "Mozilla/5.0" {
		t.Errorf("expected user agent in payload, got %v", store.events[0].Payload)
	}
}

func TestTrackView_SwallowsErrors(t *testing.T) {
	p, v := testProposal()
	store := &MockStore{
		proposal:      p,
		version:       v,
		markViewedErr: errors.New("db down"),
	}
	service := testService(store)

	// Must not panic and must not write an event after a failed update.
	service.TrackView(context.Background(), "prop-1", "")

	if len(store.events) != 0 {
		t.Errorf("expected no event after status failure, got %d", len(store.events))
	}
}
