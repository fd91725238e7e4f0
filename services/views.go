package services

import (
	"fmt"
	"time"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/format"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/staging"
)

// Fixed page sizes per view.
const (
	ImportPageSize     = 10
	SuggestionPageSize = 20
	OrderPageSize      = 20
	CatalogPageSize    = 20
)

// Errors inlined into an expanded import row are capped; the remainder is
// reported as a count instead of rendered.
const maxInlineErrors = 10

// PaginationView is the shared pagination block. Show is false when there is
// a single page, in which case no controls are rendered.
type PaginationView struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
	Show       bool `json:"show"`
}

func newPaginationView(page, perPage, total int) PaginationView {
	totalPages := 0
	if total > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return PaginationView{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Show:       totalPages > 1,
	}
}

// ImportErrorsView inlines up to maxInlineErrors parse errors for one
// expanded batch.
type ImportErrorsView struct {
	Messages []string `json:"messages"`
	More     string   `json:"more,omitempty"`
}

// ImportRowView is one row of the import history table. Errors is set only
// on the expanded row, and only when the batch reported parse errors.
type ImportRowView struct {
	ID                   string            `json:"id"`
	Filename             string            `json:"filename"`
	ImportedAt           time.Time         `json:"imported_at"`
	Badge                format.Badge      `json:"badge"`
	RawRowsCount         int               `json:"raw_rows_count"`
	OfferCandidatesCount int               `json:"offer_candidates_count"`
	ParseErrorsCount     int               `json:"parse_errors_count"`
	Expanded             bool              `json:"expanded"`
	Errors               *ImportErrorsView `json:"errors,omitempty"`
}

// ImportListView is the whole import history payload.
type ImportListView struct {
	Rows       []ImportRowView `json:"rows"`
	Pagination PaginationView  `json:"pagination"`
	EmptyState string          `json:"empty_state,omitempty"`
}

func newImportRowView(batch models.ImportBatch) ImportRowView {
	return ImportRowView{
		ID:                   batch.ID,
		Filename:             format.Optional(batch.SourceFilename),
		ImportedAt:           batch.ImportedAt,
		Badge:                format.ImportBadge(batch.Status, batch.ParseErrorsCount),
		RawRowsCount:         batch.RawRowsCount,
		OfferCandidatesCount: batch.OfferCandidatesCount,
		ParseErrorsCount:     batch.ParseErrorsCount,
	}
}

func newImportErrorsView(events []models.ParseEvent, total int) *ImportErrorsView {
	shown := len(events)
	if shown > maxInlineErrors {
		shown = maxInlineErrors
	}

	messages := make([]string, 0, shown)
	for _, ev := range events[:shown] {
		if ev.RowRef != nil && *ev.RowRef != "" {
			messages = append(messages, fmt.Sprintf("Row %s: %s", *ev.RowRef, ev.Message))
		} else {
			messages = append(messages, ev.Message)
		}
	}

	view := &ImportErrorsView{Messages: messages}
	if remainder := total - shown; remainder > 0 {
		view.More = fmt.Sprintf("…and %d more errors", remainder)
	}
	return view
}

// UploadResultView reports a successful upload or retry.
type UploadResultView struct {
	Message string              `json:"message"`
	Batch   *models.ImportBatch `json:"batch,omitempty"`
}

// StagedUploadView is the inspection payload for a retained upload.
type StagedUploadView struct {
	ID          string           `json:"id"`
	Filename    string           `json:"filename"`
	Description string           `json:"description,omitempty"`
	Size        int64            `json:"size"`
	StagedAt    time.Time        `json:"staged_at"`
	Preview     *staging.Preview `json:"preview,omitempty"`
}

func newStagedUploadView(staged *staging.StagedUpload) *StagedUploadView {
	return &StagedUploadView{
		ID:          staged.ID,
		Filename:    staged.Filename,
		Description: staged.Description,
		Size:        staged.Size,
		StagedAt:    staged.StagedAt,
		Preview:     staged.Preview,
	}
}

// ConfidenceView pairs the rendered percentage with its color band.
type ConfidenceView struct {
	Label string      `json:"label"`
	Tone  format.Tone `json:"tone"`
}

// SuggestionRowView is one row of the review table. CanAccept/CanReject are
// false for every terminal status, so no controls are rendered for them.
type SuggestionRowView struct {
	ID           string         `json:"id"`
	ItemRawName  string         `json:"item_raw_name"`
	SupplierName string         `json:"supplier_name"`
	FieldLabel   string         `json:"field_label"`
	Value        string         `json:"value"`
	Confidence   ConfidenceView `json:"confidence"`
	Badge        format.Badge   `json:"badge"`
	CanAccept    bool           `json:"can_accept"`
	CanReject    bool           `json:"can_reject"`
}

// SuggestionListView is the whole review payload.
type SuggestionListView struct {
	Rows       []SuggestionRowView `json:"rows"`
	Status     string              `json:"status"`
	Pagination PaginationView      `json:"pagination"`
	EmptyState string              `json:"empty_state,omitempty"`
}

func newSuggestionRowView(s models.AISuggestion) SuggestionRowView {
	label, tone := format.Confidence(s.Confidence)

	fieldLabel := "—"
	if s.FieldName != nil && *s.FieldName != "" {
		fieldLabel = format.FieldLabel(*s.FieldName)
	}

	actionable := s.AppliedStatus.Actionable()
	return SuggestionRowView{
		ID:           s.ID,
		ItemRawName:  format.Optional(s.ItemRawName),
		SupplierName: format.Optional(s.SupplierName),
		FieldLabel:   fieldLabel,
		Value:        format.Value(s.SuggestedValue),
		Confidence:   ConfidenceView{Label: label, Tone: tone},
		Badge:        format.SuggestionBadge(s.AppliedStatus),
		CanAccept:    actionable,
		CanReject:    actionable,
	}
}

// DecisionResultView reports the server's verdict after accept/reject. The
// applied status comes from the marketplace response, not from what the
// dashboard asked for.
type DecisionResultView struct {
	ID            string               `json:"id"`
	AppliedStatus models.AppliedStatus `json:"applied_status"`
	Badge         format.Badge         `json:"badge"`
	Message       string               `json:"message"`
}

// OrderRowView is one row of the orders table.
type OrderRowView struct {
	ID         string       `json:"id"`
	Number     string       `json:"number"`
	BuyerName  string       `json:"buyer_name"`
	Badge      format.Badge `json:"badge"`
	ItemsCount int          `json:"items_count"`
	Total      string       `json:"total"`
	CreatedAt  time.Time    `json:"created_at"`
}

// OrderListView is the whole orders payload.
type OrderListView struct {
	Rows       []OrderRowView `json:"rows"`
	Pagination PaginationView `json:"pagination"`
	EmptyState string         `json:"empty_state,omitempty"`
}

func newOrderRowView(o models.Order) OrderRowView {
	return OrderRowView{
		ID:         o.ID,
		Number:     o.Number,
		BuyerName:  o.BuyerName,
		Badge:      format.OrderBadge(o.Status),
		ItemsCount: o.ItemsCount,
		Total:      format.Money(o.Total, o.Currency),
		CreatedAt:  o.CreatedAt,
	}
}

// ItemRowView is one row of the published catalog table.
type ItemRowView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	FlowerType   string       `json:"flower_type,omitempty"`
	StemHeightCm int          `json:"stem_height_cm,omitempty"`
	Price        string       `json:"price"`
	Hidden       bool         `json:"hidden"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Badge        format.Badge `json:"badge"`
}

// ItemListView is the catalog payload.
type ItemListView struct {
	Rows       []ItemRowView  `json:"rows"`
	Pagination PaginationView `json:"pagination"`
	EmptyState string         `json:"empty_state,omitempty"`
}

func newItemRowView(it models.SupplierItem) ItemRowView {
	badge := format.Badge{Label: "Visible", Tone: format.TonePositive}
	if it.Hidden {
		badge = format.Badge{Label: "Hidden", Tone: format.ToneNeutral}
	}
	return ItemRowView{
		ID:           it.ID,
		Name:         it.Name,
		FlowerType:   it.FlowerType,
		StemHeightCm: it.StemHeightCm,
		Price:        format.Money(it.Price, it.Currency),
		Hidden:       it.Hidden,
		UpdatedAt:    it.UpdatedAt,
		Badge:        badge,
	}
}

// CandidateRowView is one parsed price-list row awaiting publication.
type CandidateRowView struct {
	ID            string       `json:"id"`
	ImportBatchID string       `json:"import_batch_id"`
	RowIndex      int          `json:"row_index"`
	RawName       string       `json:"raw_name"`
	Matched       bool         `json:"matched"`
	Price         string       `json:"price"`
	Badge         format.Badge `json:"badge"`
}

// CandidateListView is the candidates payload.
type CandidateListView struct {
	Rows       []CandidateRowView `json:"rows"`
	Pagination PaginationView     `json:"pagination"`
	EmptyState string             `json:"empty_state,omitempty"`
}

func newCandidateRowView(cand models.OfferCandidate) CandidateRowView {
	return CandidateRowView{
		ID:            cand.ID,
		ImportBatchID: cand.ImportBatchID,
		RowIndex:      cand.RowIndex,
		RawName:       cand.RawName,
		Matched:       cand.MatchedItemID != nil,
		Price:         format.Money(cand.Price, cand.Currency),
		Badge:         format.CandidateBadge(cand.Status),
	}
}
