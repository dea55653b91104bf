package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// --------------------------------------------------
// LOAD BY PUBLIC TOKEN (VIEWER READ PATH)
// --------------------------------------------------

func (r *Repository) GetByPublicToken(ctx context.Context, token string) (*Proposal, *Version, error) {
	p, err := r.scanProposal(ctx, `
		SELECT
			id, title, public_token, status,
			currency, secondary_currency, travelers_count,
			cover_image_url, active_version_id,
			accepted_at, accepted_total, accepted_version_id,
			created_at, updated_at
		FROM proposals
		WHERE public_token = $1
	`, token)
	if err != nil {
		return nil, nil, err
	}

	if p.ActiveVersionID == nil {
		return nil, nil, errors.New("proposal has no active version")
	}

	version, err := r.loadVersion(ctx, *p.ActiveVersionID)
	if err != nil {
		return nil, nil, err
	}

	return p, version, nil
}

func (r *Repository) GetByID(ctx context.Context, proposalID string) (*Proposal, error) {
	return r.scanProposal(ctx, `
		SELECT
			id, title, public_token, status,
			currency, secondary_currency, travelers_count,
			cover_image_url, active_version_id,
			accepted_at, accepted_total, accepted_version_id,
			created_at, updated_at
		FROM proposals
		WHERE id = $1
	`, proposalID)
}

func (r *Repository) scanProposal(ctx context.Context, query, arg string) (*Proposal, error) {
	var p Proposal
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.Title,
		&p.PublicToken,
		&p.Status,
		&p.Currency,
		&p.SecondaryCurrency,
		&p.TravelersCount,
		&p.CoverImageURL,
		&p.ActiveVersionID,
		&p.AcceptedAt,
		&p.AcceptedTotal,
		&p.AcceptedVersionID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("proposal not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) loadVersion(ctx context.Context, versionID string) (*Version, error) {
	var v Version
	err := r.db.QueryRow(ctx, `
		SELECT id, proposal_id, version_number, created_at
		FROM proposal_versions
		WHERE id = $1
	`, versionID).Scan(&v.ID, &v.ProposalID, &v.VersionNumber, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("version not found")
		}
		return nil, err
	}

	sections, err := r.loadSections(ctx, versionID)
	if err != nil {
		return nil, err
	}
	v.Sections = sections

	return &v, nil
}

func (r *Repository) loadSections(ctx context.Context, versionID string) ([]*Section, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, version_id, section_type, title, position
		FROM proposal_sections
		WHERE version_id = $1
		ORDER BY position
	`, versionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*Section
	byID := make(map[string]*Section)

	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.VersionID, &s.SectionType, &s.Title, &s.Position); err != nil {
			return nil, err
		}
		s.Items = []*Item{}
		sections = append(sections, &s)
		byID[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, versionID, byID); err != nil {
		return nil, err
	}

	return sections, nil
}

func (r *Repository) loadItems(ctx context.Context, versionID string, sections map[string]*Section) error {
	rows, err := r.db.Query(ctx, `
		SELECT
			i.id, i.section_id, i.item_type, i.title,
			i.base_price, i.is_optional, i.is_default_selected,
			i.image_url, i.rich_content, i.position
		FROM proposal_items i
		JOIN proposal_sections s ON s.id = i.section_id
		WHERE s.version_id = $1
		ORDER BY i.position
	`, versionID)
	if err != nil {
		return err
	}
	defer rows.Close()

	itemsByID := make(map[string]*Item)

	for rows.Next() {
		var (
			item    Item
			rawJSON []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.SectionID,
			&item.ItemType,
			&item.Title,
			&item.BasePrice,
			&item.IsOptional,
			&item.IsDefaultSelected,
			&item.ImageURL,
			&rawJSON,
			&item.Position,
		); err != nil {
			return err
		}

		if len(rawJSON) > 0 {
			// A malformed payload leaves RichContent nil; readers treat
			// that as "data unavailable" rather than failing the load.
			_ = json.Unmarshal(rawJSON, &item.RichContent)
		}
		item.Options = []*Option{}

		if section, ok := sections[item.SectionID]; ok {
			section.Items = append(section.Items, &item)
		}
		itemsByID[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return r.loadOptions(ctx, versionID, itemsByID)
}

func (r *Repository) loadOptions(ctx context.Context, versionID string, items map[string]*Item) error {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.item_id, o.option_label, o.price_delta, o.position
		FROM proposal_options o
		JOIN proposal_items i ON i.id = o.item_id
		JOIN proposal_sections s ON s.id = i.section_id
		WHERE s.version_id = $1
		ORDER BY o.position
	`, versionID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var opt Option
		if err := rows.Scan(&opt.ID, &opt.ItemID, &opt.OptionLabel, &opt.PriceDelta, &opt.Position); err != nil {
			return err
		}
		if item, ok := items[opt.ItemID]; ok {
			item.Options = append(item.Options, &opt)
		}
	}
	return rows.Err()
}

// --------------------------------------------------
// ACCEPTANCE WRITES
// --------------------------------------------------

// UpsertSelections writes one row per selected item, keyed by
// (proposal_id, item_id): re-accepting overwrites instead of
// duplicating.
func (r *Repository) UpsertSelections(ctx context.Context, selections []*ClientSelection) error {
	for _, sel := range selections {
		metadata, err := json.Marshal(sel.Metadata)
		if err != nil {
			return err
		}

		_, err = r.db.Exec(ctx, `
			INSERT INTO proposal_client_selections (
				proposal_id, item_id, selected, option_id,
				selection_metadata, selected_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (proposal_id, item_id) DO UPDATE SET
				selected = EXCLUDED.selected,
				option_id = EXCLUDED.option_id,
				selection_metadata = EXCLUDED.selection_metadata,
				selected_at = EXCLUDED.selected_at,
				updated_at = EXCLUDED.updated_at
		`,
			sel.ProposalID,
			sel.ItemID,
			sel.Selected,
			sel.OptionID,
			metadata,
			sel.SelectedAt,
			sel.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) MarkAccepted(ctx context.Context, proposalID string, total float64, versionID string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE proposals
		SET status = 'accepted',
		    accepted_at = $2,
		    accepted_total = $3,
		    accepted_version_id = $4,
		    updated_at = now()
		WHERE id = $1
	`, proposalID, at, total, versionID)
	return err
}

// MarkViewed flips sent → viewed. No row changes when the proposal is
// in any other status.
func (r *Repository) MarkViewed(ctx context.Context, proposalID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE proposals
		SET status = 'viewed', updated_at = now()
		WHERE id = $1 AND status = 'sent'
	`, proposalID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) InsertEvent(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	id := event.ID
	if id == "" {
		id = uuid.New().String()
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO proposal_events (id, proposal_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, id, event.ProposalID, event.EventType, payload)
	return err
}

// --------------------------------------------------
// AGENT READS
// --------------------------------------------------

func (r *Repository) ListEvents(ctx context.Context, proposalID string) ([]*Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, proposal_id, event_type, payload, created_at
		FROM proposal_events
		WHERE proposal_id = $1
		ORDER BY created_at DESC
	`, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			ev      Event
			rawJSON []byte
		)
		if err := rows.Scan(&ev.ID, &ev.ProposalID, &ev.EventType, &rawJSON, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if len(rawJSON) > 0 {
			_ = json.Unmarshal(rawJSON, &ev.Payload)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (r *Repository) ListSelections(ctx context.Context, proposalID string) ([]*ClientSelection, error) {
	rows, err := r.db.Query(ctx, `
		SELECT proposal_id, item_id, selected, option_id,
		       selection_metadata, selected_at, updated_at
		FROM proposal_client_selections
		WHERE proposal_id = $1
		ORDER BY item_id
	`, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []*ClientSelection
	for rows.Next() {
		var (
			sel     ClientSelection
			rawJSON []byte
		)
		if err := rows.Scan(
			&sel.ProposalID,
			&sel.ItemID,
			&sel.Selected,
			&sel.OptionID,
			&rawJSON,
			&sel.SelectedAt,
			&sel.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(rawJSON) > 0 {
			_ = json.Unmarshal(rawJSON, &sel.Metadata)
		}
		selections = append(selections, &sel)
	}
	return selections, rows.Err()
}

func (r *Repository) SaveCoverImage(ctx context.Context, proposalID, url string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE proposals
		SET cover_image_url = $2, updated_at = now()
		WHERE id = $1
	`, proposalID, url)
	return err
}
