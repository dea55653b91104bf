package viewer

import (
	"context"
	"log"
	"strings"
	"time"

	"welcomecrm/internal/core"
	"welcomecrm/internal/pricing"
	"welcomecrm/internal/proposal"
	"welcomecrm/internal/readers"
	"welcomecrm/internal/selection"
)

// MediaResolver turns a stored object key into a public URL.
type MediaResolver interface {
	PublicURL(key string) string
}

type Service struct {
	store  core.ProposalStore
	engine *pricing.Engine
	media  MediaResolver
}

func NewService(store core.ProposalStore, engine *pricing.Engine, media MediaResolver) *Service {
	return &Service{
		store:  store,
		engine: engine,
		media:  media,
	}
}

// --------------------------------------------------
// VIEW PAYLOAD
// --------------------------------------------------

type ProposalView struct {
	ID                string                         `json:"id"`
	Title             string                         `json:"title"`
	Status            string                         `json:"status"`
	Currency          string                         `json:"currency"`
	SecondaryCurrency string                         `json:"secondary_currency"`
	TravelersCount    int                            `json:"travelers_count"`
	CoverImageURL     string                         `json:"cover_image_url,omitempty"`
	VersionID         string                         `json:"version_id"`
	Sections          []SectionView                  `json:"sections"`
	Selections        map[string]selection.Selection `json:"selections"`
	Totals            pricing.Totals                 `json:"totals"`
}

type SectionView struct {
	ID          string     `json:"id"`
	SectionType string     `json:"section_type"`
	Title       string     `json:"title"`
	Items       []ItemView `json:"items"`
}

type ItemView struct {
	ID                string  `json:"id"`
	ItemType          string  `json:"item_type"`
	Title             string  `json:"title"`
	BasePrice         float64 `json:"base_price"`
	IsOptional        bool    `json:"is_optional"`
	IsDefaultSelected bool    `json:"is_default_selected"`

	// Exactly one of these is set for a readable item; Unavailable marks
	// an item none of the readers could parse ("data unavailable" card).
	Hotel       *readers.HotelViewData      `json:"hotel,omitempty"`
	Flights     *readers.FlightsViewData    `json:"flights,omitempty"`
	Experience  *readers.ExperienceViewData `json:"experience,omitempty"`
	Transfer    *readers.TransferViewData   `json:"transfer,omitempty"`
	Insurance   *readers.InsuranceViewData  `json:"insurance,omitempty"`
	Cruise      *readers.CruiseViewData     `json:"cruise,omitempty"`
	Unavailable bool                        `json:"unavailable,omitempty"`

	Options []OptionView `json:"options"`
}

type OptionView struct {
	ID          string  `json:"id"`
	OptionLabel string  `json:"option_label"`
	PriceDelta  float64 `json:"price_delta"`
}

// BuildView loads a proposal by its public token and assembles the full
// viewer payload: normalized items, the derived default selections, and
// the initial totals.
func (s *Service) BuildView(ctx context.Context, token string) (*ProposalView, error) {
	p, version, err := s.store.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}

	sections := SellableSections(version.Sections)
	manager := selection.NewManager(sections)
	selections := manager.Snapshot()

	primary := p.Currency
	if primary == "" {
		primary = "BRL"
	}
	secondary := p.SecondaryCurrency
	if secondary == "" {
		secondary = "USD"
	}

	view := &ProposalView{
		ID:                p.ID,
		Title:             p.Title,
		Status:            p.Status,
		Currency:          primary,
		SecondaryCurrency: secondary,
		TravelersCount:    p.TravelersCount,
		CoverImageURL:     s.resolveMedia(p.CoverImageURL),
		VersionID:         version.ID,
		Selections:        selections,
		Totals:            s.engine.Totals(sections, selections, primary, secondary),
	}

	for _, section := range sections {
		sv := SectionView{
			ID:          section.ID,
			SectionType: section.SectionType,
			Title:       section.Title,
		}
		for _, item := range section.Items {
			sv.Items = append(sv.Items, buildItemView(item))
		}
		view.Sections = append(view.Sections, sv)
	}

	return view, nil
}

// SellableSections drops cover sections and sections with nothing to
// sell from the selection flow.
func SellableSections(sections []*proposal.Section) []*proposal.Section {
	out := make([]*proposal.Section, 0, len(sections))
	for _, section := range sections {
		if section.SectionType == "cover" || len(section.Items) == 0 {
			continue
		}
		out = append(out, section)
	}
	return out
}

func buildItemView(item *proposal.Item) ItemView {
	iv := ItemView{
		ID:                item.ID,
		ItemType:          item.ItemType,
		Title:             item.Title,
		BasePrice:         item.BasePrice,
		IsOptional:        item.IsOptional,
		IsDefaultSelected: item.IsDefaultSelected,
		Options:           make([]OptionView, 0, len(item.Options)),
	}
	for _, opt := range item.Options {
		iv.Options = append(iv.Options, OptionView{
			ID:          opt.ID,
			OptionLabel: opt.OptionLabel,
			PriceDelta:  opt.PriceDelta,
		})
	}

	switch item.ItemType {
	case "hotel":
		iv.Hotel = readers.ReadHotelData(item)
	case "flight":
		iv.Flights = readers.ReadFlightData(item)
	case "experience":
		iv.Experience = readers.ReadExperienceData(item)
	case "transfer":
		iv.Transfer = readers.ReadTransferData(item)
	case "insurance":
		iv.Insurance = readers.ReadInsuranceData(item)
	default:
		iv.Cruise = readers.ReadCruiseData(item)
	}

	iv.Unavailable = iv.Hotel == nil && iv.Flights == nil && iv.Experience == nil &&
		iv.Transfer == nil && iv.Insurance == nil && iv.Cruise == nil
	return iv
}

func (s *Service) resolveMedia(stored *string) string {
	if stored == nil || *stored == "" {
		return ""
	}
	if strings.HasPrefix(*stored, "http://") || strings.HasPrefix(*stored, "https://") {
		return *stored
	}
	if s.media == nil {
		return *stored
	}
	return s.media.PublicURL(*stored)
}

// --------------------------------------------------
// ACCEPTANCE
// --------------------------------------------------

type AcceptOutcome struct {
	Accepted         bool     `json:"accepted"`
	State            string   `json:"state"`
	Total            float64  `json:"total"`
	Currency         string   `json:"currency"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
	ErrorMessage     string   `json:"error,omitempty"`
}

// Accept recomputes the total server-side from the submitted selections
// and runs the acceptance workflow. The returned error is reserved for
// load failures (unknown token); validation and persistence problems are
// reported inside the outcome.
func (s *Service) Accept(
	ctx context.Context,
	token string,
	selections map[string]selection.Selection,
	notes string,
) (*AcceptOutcome, error) {
	p, version, err := s.store.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}

	sections := SellableSections(version.Sections)
	selections = selection.Normalize(selections)

	primary := p.Currency
	if primary == "" {
		primary = "BRL"
	}

	validation := Validate(sections, selections)
	if !validation.IsValid {
		return &AcceptOutcome{
			Accepted:         false,
			State:            StateConfirm,
			Currency:         primary,
			ValidationErrors: validation.Errors,
			ErrorMessage:     validation.Errors[0],
		}, nil
	}

	totals := s.engine.Totals(sections, selections, primary, primary)

	acceptance := NewAcceptance(s.store)
	acceptErr := acceptance.Accept(ctx, AcceptRequest{
		Proposal:   p,
		VersionID:  version.ID,
		Sections:   sections,
		Selections: selections,
		Total:      totals.TotalPrimary,
		Currency:   primary,
		Notes:      notes,
	})

	outcome := &AcceptOutcome{
		Accepted: acceptance.State() == StateAccepted,
		State:    acceptance.State(),
		Total:    totals.TotalPrimary,
		Currency: primary,
	}
	if acceptErr != nil {
		outcome.ErrorMessage = acceptErr.Error()
	}
	return outcome, nil
}

// --------------------------------------------------
// VIEW TRACKING
// --------------------------------------------------

// TrackView flips sent → viewed and appends a link_opened event. It is
// fire-and-forget: tracking must never block or break the viewing
// experience, so every error is swallowed after a log line.
func (s *Service) TrackView(ctx context.Context, proposalID, userAgent string) {
	if _, err := s.store.MarkViewed(ctx, proposalID); err != nil {
		log.Printf("track view: status update failed for %s: %v", proposalID, err)
		return
	}

	payload := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if userAgent != "" {
		payload["user_agent"] = userAgent
	}

	event := &proposal.Event{
		ProposalID: proposalID,
		EventType:  "link_opened",
		Payload:    payload,
	}
	if err := s.store.InsertEvent(ctx, event); err != nil {
		log.Printf("track view: event insert failed for %s: %v", proposalID, err)
	}
}
