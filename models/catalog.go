package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierItem is a published catalog position owned by the seller.
type SupplierItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	FlowerType   string          `json:"flower_type,omitempty"`
	Variety      string          `json:"variety,omitempty"`
	Color        string          `json:"color,omitempty"`
	StemHeightCm int             `json:"stem_height_cm,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Hidden       bool            `json:"hidden"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OfferCandidate is a parsed price-list row awaiting publication.
type OfferCandidate struct {
	ID            string          `json:"id"`
	ImportBatchID string          `json:"import_batch_id"`
	RowIndex      int             `json:"row_index"`
	RawName       string          `json:"raw_name"`
	MatchedItemID *string         `json:"matched_item_id,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
}

// Offer candidate statuses reported by the marketplace.
const (
	CandidateStatusPending   = "pending"
	CandidateStatusPublished = "published"
	CandidateStatusDiscarded = "discarded"
)

// Bulk actions accepted over catalog rows.
const (
	ItemActionDelete = "delete"
	ItemActionHide   = "hide"
	ItemActionShow   = "show"

	CandidateActionPublish = "publish"
	CandidateActionDiscard = "discard"
)

// BulkActionRequest applies one action to a set of rows.
type BulkActionRequest struct {
	Action string   `json:"action" binding:"required"`
	IDs    []string `json:"ids" binding:"required,min=1"`
}

// BulkActionResult reports how many rows the upstream touched.
type BulkActionResult struct {
	Affected int `json:"affected"`
}
