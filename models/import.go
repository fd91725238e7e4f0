package models

import "time"

// ImportStatus is the server-side lifecycle stage of a price-list import.
type ImportStatus string

const (
	ImportStatusReceived  ImportStatus = "received"
	ImportStatusParsed    ImportStatus = "parsed"
	ImportStatusPublished ImportStatus = "published"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportBatch is one price-list file submission and its derived parsing
// counters. A published batch with ParseErrorsCount > 0 is the
// "published with warnings" condition and is rendered with a warning badge.
type ImportBatch struct {
	ID                   string       `json:"id"`
	SourceFilename       *string      `json:"source_filename,omitempty"`
	ImportedAt           time.Time    `json:"imported_at"`
	Status               ImportStatus `json:"status"`
	RawRowsCount         int          `json:"raw_rows_count"`
	OfferCandidatesCount int          `json:"offer_candidates_count"`
	ParseErrorsCount     int          `json:"parse_errors_count"`
}

// ParseEvent is a diagnostic record emitted while parsing one import batch.
// Read-only for the dashboard; fetched only when a batch reports errors.
type ParseEvent struct {
	ID            string  `json:"id"`
	ImportBatchID string  `json:"import_batch_id"`
	Severity      string  `json:"severity"`
	RowRef        *string `json:"row_ref,omitempty"`
	Message       string  `json:"message"`
}

// ParseEventSeverityError is the only severity the import view requests.
const ParseEventSeverityError = "error"
