package proposal

import "time"

// --------------------------------------------------
// PROPOSAL (LIFECYCLE ENTITY)
// --------------------------------------------------

type Proposal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublicToken string `json:"public_token"`

	// draft | sent | viewed | in_progress | accepted | rejected | expired
	Status string `json:"status"`

	Currency          string `json:"currency"`
	SecondaryCurrency string `json:"secondary_currency"`
	TravelersCount    int    `json:"travelers_count"`

	CoverImageURL   *string `json:"cover_image_url,omitempty"`
	ActiveVersionID *string `json:"active_version_id,omitempty"`

	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
	AcceptedTotal     *float64   `json:"accepted_total,omitempty"`
	AcceptedVersionID *string    `json:"accepted_version_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --------------------------------------------------
// VERSION (IMMUTABLE SNAPSHOT)
// --------------------------------------------------

type Version struct {
	ID            string     `json:"id"`
	ProposalID    string     `json:"proposal_id"`
	VersionNumber int        `json:"version_number"`
	Sections      []*Section `json:"sections"`
	CreatedAt     time.Time  `json:"created_at"`
}

// --------------------------------------------------
// SECTION
// --------------------------------------------------

type Section struct {
	ID        string `json:"id"`
	VersionID string `json:"version_id"`

	// hotels | flights | experiences | transfers | insurance | custom | cover
	SectionType string `json:"section_type"`

	Title    string  `json:"title"`
	Position int     `json:"position"`
	Items    []*Item `json:"items"`
}

// --------------------------------------------------
// ITEM
// --------------------------------------------------

type Item struct {
	ID        string `json:"id"`
	SectionID string `json:"section_id"`

	// hotel | flight | experience | transfer | insurance | cruise | ...
	ItemType string `json:"item_type"`

	Title             string  `json:"title"`
	BasePrice         float64 `json:"base_price"`
	IsOptional        bool    `json:"is_optional"`
	IsDefaultSelected bool    `json:"is_default_selected"`
	ImageURL          *string `json:"image_url,omitempty"`
	Position          int     `json:"position"`

	// Free-form payload written by the proposal builder. Holds the
	// namespaced type-specific data (rich_content.hotel, .flights, ...)
	// or, for older proposals, the flat legacy fields.
	RichContent map[string]any `json:"rich_content"`

	Options []*Option `json:"options"`
}

type Option struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"item_id"`
	OptionLabel string  `json:"option_label"`
	PriceDelta  float64 `json:"price_delta"`
	Position    int     `json:"position"`
}

// --------------------------------------------------
// CLIENT SELECTION (WRITTEN ON ACCEPTANCE)
// --------------------------------------------------

type ClientSelection struct {
	ProposalID string            `json:"proposal_id"`
	ItemID     string            `json:"item_id"`
	Selected   bool              `json:"selected"`
	OptionID   *string           `json:"option_id,omitempty"`
	Metadata   SelectionMetadata `json:"selection_metadata"`
	SelectedAt time.Time         `json:"selected_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type SelectionMetadata struct {
	Quantity  int    `json:"quantity"`
	VersionID string `json:"version_id"`
}

// --------------------------------------------------
// EVENT LOG
// --------------------------------------------------

type Event struct {
	ID         string         `json:"id"`
	ProposalID string         `json:"proposal_id"`
	EventType  string         `json:"event_type"` // link_opened | proposal_accepted | ...
	Payload    map[string]any `json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
}
