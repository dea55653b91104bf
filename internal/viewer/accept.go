package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"welcomecrm/internal/core"
	"welcomecrm/internal/proposal"
	"welcomecrm/internal/selection"
)

// Acceptance states: confirm → submitting → accepted on success, back to
// confirm with an error message on failure. Accepted is terminal until
// Reset.
const (
	StateConfirm    = "confirm"
	StateSubmitting = "submitting"
	StateAccepted   = "accepted"
)

// Acceptance runs the three-step commit: upsert the selected rows,
// update the proposal's accepted snapshot, append the audit event. The
// steps are sequential and there is no rollback, so a mid-flight
// failure leaves earlier steps committed. Retrying is safe because the selection
// upsert is keyed by (proposal_id, item_id).
type Acceptance struct {
	store core.ProposalWriter
	now   func() time.Time

	state   string
	lastErr string
}

func NewAcceptance(store core.ProposalWriter) *Acceptance {
	return &Acceptance{
		store: store,
		now:   time.Now,
		state: StateConfirm,
	}
}

func (a *Acceptance) State() string { return a.state }
func (a *Acceptance) Err() string   { return a.lastErr }

// Reset returns to confirm from either terminal state.
func (a *Acceptance) Reset() {
	a.state = StateConfirm
	a.lastErr = ""
}

type AcceptRequest struct {
	Proposal   *proposal.Proposal
	VersionID  string
	Sections   []*proposal.Section
	Selections map[string]selection.Selection
	Total      float64
	Currency   string
	Notes      string
}

// Accept validates and commits. An invalid selection set surfaces the
// first validation error and never reaches the store.
func (a *Acceptance) Accept(ctx context.Context, req AcceptRequest) error {
	if a.state == StateAccepted {
		return errors.New("proposta já aceita")
	}

	validation := Validate(req.Sections, req.Selections)
	if !validation.IsValid {
		a.lastErr = validation.Errors[0]
		return errors.New(validation.Errors[0])
	}

	a.state = StateSubmitting
	a.lastErr = ""
	now := a.now()

	// 1. Selection rows for the selected items, in section order so the
	// write set is deterministic.
	rows := make([]*proposal.ClientSelection, 0)
	for _, section := range req.Sections {
		for _, item := range section.Items {
			sel, ok := req.Selections[item.ID]
			if !ok || !sel.Selected {
				continue
			}

			quantity := sel.Quantity
			if quantity < 1 {
				quantity = 1
			}
			var optionID *string
			if sel.OptionID != "" {
				id := sel.OptionID
				optionID = &id
			}

			rows = append(rows, &proposal.ClientSelection{
				ProposalID: req.Proposal.ID,
				ItemID:     item.ID,
				Selected:   true,
				OptionID:   optionID,
				Metadata: proposal.SelectionMetadata{
					Quantity:  quantity,
					VersionID: req.VersionID,
				},
				SelectedAt: now,
				UpdatedAt:  now,
			})
		}
	}

	if err := a.store.UpsertSelections(ctx, rows); err != nil {
		return a.fail(fmt.Errorf("erro ao salvar seleções: %w", err))
	}

	// 2. Proposal status + accepted snapshot.
	if err := a.store.MarkAccepted(ctx, req.Proposal.ID, req.Total, req.VersionID, now); err != nil {
		return a.fail(fmt.Errorf("erro ao atualizar proposta: %w", err))
	}

	// 3. Audit event.
	payload := map[string]any{
		"total":       req.Total,
		"currency":    req.Currency,
		"items_count": len(rows),
		"version_id":  req.VersionID,
	}
	if req.Notes != "" {
		payload["client_notes"] = req.Notes
	}
	event := &proposal.Event{
		ProposalID: req.Proposal.ID,
		EventType:  "proposal_accepted",
		Payload:    payload,
	}
	if err := a.store.InsertEvent(ctx, event); err != nil {
		return a.fail(fmt.Errorf("erro ao registrar evento: %w", err))
	}

	a.state = StateAccepted
	return nil
}

func (a *Acceptance) fail(err error) error {
	a.state = StateConfirm
	a.lastErr = err.Error()
	return err
}
