package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/cache"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/staging"
	"go.uber.org/zap"
)

// ImportService defines the import lifecycle operations behind the dashboard.
type ImportService interface {
	List(ctx context.Context, sellerID string, page int, expandedID string) (*ImportListView, *ServiceError)
	Upload(ctx context.Context, sellerID, filename, description string, file io.Reader) (*UploadResultView, *ServiceError)
	RetryStaged(ctx context.Context, sellerID, stagedID string) (*UploadResultView, *ServiceError)
	GetStaged(ctx context.Context, sellerID, stagedID string) (*StagedUploadView, *ServiceError)
	DiscardStaged(ctx context.Context, sellerID, stagedID string) *ServiceError
	Reparse(ctx context.Context, sellerID, batchID string) *ServiceError
	Delete(ctx context.Context, sellerID, batchID string) *ServiceError
}

type importServiceImpl struct {
	marketplace *clients.MarketplaceClient
	cache       *cache.Store
	staged      *staging.Store
	logger      *zap.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(marketplace *clients.MarketplaceClient, cacheStore *cache.Store, staged *staging.Store, logger *zap.Logger) ImportService {
	return &importServiceImpl{
		marketplace: marketplace,
		cache:       cacheStore,
		staged:      staged,
		logger:      logger,
	}
}

type importListPage struct {
	Items []models.ImportBatch `json:"items"`
	Total int                  `json:"total"`
}

type parseEventsPage struct {
	Items []models.ParseEvent `json:"items"`
	Total int                 `json:"total"`
}

// List returns one page of import history. At most one row is expanded; the
// expanded row pulls its parse errors in lazily, and only when the batch
// actually reported errors.
func (s *importServiceImpl) List(ctx context.Context, sellerID string, page int, expandedID string) (*ImportListView, *ServiceError) {
	if page < 1 {
		page = 1
	}

	var listPage importListPage
	cacheKey := fmt.Sprintf("%s:p%d", sellerID, page)
	if !s.cache.Get(ctx, cache.TagImportBatches, cacheKey, &listPage) {
		items, total, err := s.marketplace.ListImports(ctx, sellerID, page, ImportPageSize)
		if err != nil {
			s.logger.Error("Failed to list import batches",
				zap.String("supplier_id", sellerID), zap.Error(err))
			return nil, upstreamError(err, "Failed to load import history")
		}
		listPage = importListPage{Items: items, Total: total}
		s.cache.SetAsync(cache.TagImportBatches, cacheKey, listPage)
	}

	view := &ImportListView{
		Rows:       make([]ImportRowView, 0, len(listPage.Items)),
		Pagination: newPaginationView(page, ImportPageSize, listPage.Total),
	}
	if listPage.Total == 0 {
		view.EmptyState = "No imports yet"
	}

	for _, batch := range listPage.Items {
		row := newImportRowView(batch)
		if batch.ID == expandedID {
			row.Expanded = true
			if batch.ParseErrorsCount > 0 {
				row.Errors = s.loadErrors(ctx, batch.ID)
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

// loadErrors fetches error-severity parse events for one batch. A failure
// here degrades the row to rendering without detail instead of failing the
// whole list.
func (s *importServiceImpl) loadErrors(ctx context.Context, batchID string) *ImportErrorsView {
	var events parseEventsPage
	cacheKey := "events:" + batchID
	if !s.cache.Get(ctx, cache.TagImportBatches, cacheKey, &events) {
		items, total, err := s.marketplace.ListParseEvents(ctx, batchID, models.ParseEventSeverityError, maxInlineErrors)
		if err != nil {
			s.logger.Warn("Failed to load parse events",
				zap.String("batch_id", batchID), zap.Error(err))
			return nil
		}
		events = parseEventsPage{Items: items, Total: total}
		s.cache.SetAsync(cache.TagImportBatches, cacheKey, events)
	}
	return newImportErrorsView(events.Items, events.Total)
}

// Upload stages the file on disk, then forwards it to the marketplace. The
// staged copy survives a failed forward so the operator can retry without
// re-selecting the file.
func (s *importServiceImpl) Upload(ctx context.Context, sellerID, filename, description string, file io.Reader) (*UploadResultView, *ServiceError) {
	staged, err := s.staged.Save(sellerID, filename, description, file)
	if err != nil {
		s.logger.Error("Failed to stage upload",
			zap.String("supplier_id", sellerID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to store the uploaded file"}
	}
	return s.forwardStaged(ctx, staged)
}

// RetryStaged re-sends a retained upload.
func (s *importServiceImpl) RetryStaged(ctx context.Context, sellerID, stagedID string) (*UploadResultView, *ServiceError) {
	staged, svcErr := s.loadStaged(sellerID, stagedID)
	if svcErr != nil {
		return nil, svcErr
	}
	return s.forwardStaged(ctx, staged)
}

// GetStaged returns the metadata for a retained upload.
func (s *importServiceImpl) GetStaged(ctx context.Context, sellerID, stagedID string) (*StagedUploadView, *ServiceError) {
	staged, svcErr := s.loadStaged(sellerID, stagedID)
	if svcErr != nil {
		return nil, svcErr
	}
	return newStagedUploadView(staged), nil
}

// DiscardStaged drops a retained upload without sending it.
func (s *importServiceImpl) DiscardStaged(ctx context.Context, sellerID, stagedID string) *ServiceError {
	staged, svcErr := s.loadStaged(sellerID, stagedID)
	if svcErr != nil {
		return svcErr
	}
	if err := s.staged.Remove(staged.ID); err != nil {
		s.logger.Error("Failed to discard staged upload",
			zap.String("staged_id", staged.ID), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to discard staged upload"}
	}
	s.logger.Info("Staged upload discarded", zap.String("staged_id", staged.ID))
	return nil
}

// Reparse asks the marketplace to re-run parsing on a stored batch and
// invalidates the import list so the counters refresh.
func (s *importServiceImpl) Reparse(ctx context.Context, sellerID, batchID string) *ServiceError {
	if err := s.marketplace.ReparseImport(ctx, batchID); err != nil {
		s.logger.Error("Failed to reparse import batch",
			zap.String("supplier_id", sellerID), zap.String("batch_id", batchID), zap.Error(err))
		return upstreamError(err, "Failed to reparse the import")
	}

	s.cache.Invalidate(ctx, cache.TagImportBatches)
	s.logger.Info("Import batch reparse requested",
		zap.String("supplier_id", sellerID), zap.String("batch_id", batchID))
	return nil
}

// Delete removes a batch. The marketplace cascades to the batch's offer
// candidates, so both regions are invalidated.
func (s *importServiceImpl) Delete(ctx context.Context, sellerID, batchID string) *ServiceError {
	if err := s.marketplace.DeleteImport(ctx, batchID); err != nil {
		s.logger.Error("Failed to delete import batch",
			zap.String("supplier_id", sellerID), zap.String("batch_id", batchID), zap.Error(err))
		return upstreamError(err, "Failed to delete the import")
	}

	s.cache.Invalidate(ctx, cache.TagImportBatches, cache.TagOfferCandidates)
	s.logger.Info("Import batch deleted",
		zap.String("supplier_id", sellerID), zap.String("batch_id", batchID))
	return nil
}

// forwardStaged sends a staged upload to the marketplace. Success removes
// the staged copy and invalidates the import list; failure keeps the copy
// and reports its id so the caller can retry.
func (s *importServiceImpl) forwardStaged(ctx context.Context, staged *staging.StagedUpload) (*UploadResultView, *ServiceError) {
	_, blob, err := s.staged.Open(staged.ID)
	if err != nil {
		s.logger.Error("Failed to open staged upload",
			zap.String("staged_id", staged.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to read staged upload"}
	}

	batch, err := s.marketplace.UploadPriceList(ctx, staged.SupplierID, staged.Filename, staged.Description, blob)
	blob.Close()
	if err != nil {
		s.logger.Error("Price list forward failed, staged copy retained",
			zap.String("staged_id", staged.ID), zap.String("supplier_id", staged.SupplierID), zap.Error(err))
		svcErr := upstreamError(err, "Upload failed. The file was kept so you can retry.")
		svcErr.Details = map[string]interface{}{"staged_id": staged.ID}
		return nil, svcErr
	}

	if err := s.staged.Remove(staged.ID); err != nil && !errors.Is(err, staging.ErrNotFound) {
		s.logger.Warn("Failed to remove staged upload after success",
			zap.String("staged_id", staged.ID), zap.Error(err))
	}

	s.cache.Invalidate(ctx, cache.TagImportBatches)
	s.logger.Info("Price list uploaded",
		zap.String("supplier_id", staged.SupplierID), zap.String("batch_id", batch.ID),
		zap.String("filename", staged.Filename))
	return &UploadResultView{Message: "Price list uploaded", Batch: batch}, nil
}

func (s *importServiceImpl) loadStaged(sellerID, stagedID string) (*staging.StagedUpload, *ServiceError) {
	staged, err := s.staged.Get(stagedID)
	if err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Staged upload not found"}
		}
		s.logger.Error("Failed to read staged upload",
			zap.String("staged_id", stagedID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to read staged upload"}
	}
	// staged uploads are private to the seller that created them
	if staged.SupplierID != sellerID {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Staged upload not found"}
	}
	return staged, nil
}
