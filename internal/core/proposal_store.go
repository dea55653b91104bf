package core

import (
	"context"
	"time"

	"welcomecrm/internal/proposal"
)

// ProposalReader loads what the public viewer needs.
type ProposalReader interface {
	GetByPublicToken(ctx context.Context, token string) (*proposal.Proposal, *proposal.Version, error)
}

// ProposalWriter covers the acceptance and view-tracking writes. The
// three acceptance calls run sequentially and are not one transaction;
// UpsertSelections must be idempotent on (proposal_id, item_id).
type ProposalWriter interface {
	UpsertSelections(ctx context.Context, selections []*proposal.ClientSelection) error
	MarkAccepted(ctx context.Context, proposalID string, total float64, versionID string, at time.Time) error

	// MarkViewed flips sent → viewed; it reports whether a row changed.
	MarkViewed(ctx context.Context, proposalID string) (bool, error)
	InsertEvent(ctx context.Context, event *proposal.Event) error
}

type ProposalStore interface {
	ProposalReader
	ProposalWriter
}
