// Package staging keeps uploaded price-list files on disk until the
// marketplace has accepted them. A failed forward leaves the staged copy in
// place so the operator can retry without re-selecting the file.
package staging

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no staged upload exists for an id.
var ErrNotFound = errors.New("staged upload not found")

// StagedUpload is the metadata sidecar stored next to each blob.
type StagedUpload struct {
	ID          string    `json:"id"`
	SupplierID  string    `json:"supplier_id"`
	Filename    string    `json:"filename"`
	Description string    `json:"description"`
	Size        int64     `json:"size"`
	StagedAt    time.Time `json:"staged_at"`
	Preview     *Preview  `json:"preview,omitempty"`
}

// Preview is a cheap structural summary of a staged file, shown so the
// operator can sanity-check what was picked up before retrying.
type Preview struct {
	RowCount int      `json:"row_count"`
	Columns  []string `json:"columns"`
}

// Store persists staged uploads under one directory: `{id}.blob` for the
// payload and `{id}.json` for the metadata.
type Store struct {
	dir       string
	retention time.Duration
}

// NewStore creates the staging directory if needed. Retention bounds how long
// a staged upload survives before the sweeper discards it.
func NewStore(dir string, retention time.Duration) (*Store, error) {
	if dir == "" {
		dir = "./data/staged_uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &Store{dir: dir, retention: retention}, nil
}

// Save writes the payload and its metadata sidecar, building a preview for
// formats we can cheaply inspect. Preview failures are not fatal.
func (s *Store) Save(supplierID, filename, description string, file io.Reader) (*StagedUpload, error) {
	id := uuid.New().String()

	blobPath := s.blobPath(id)
	blob, err := os.Create(blobPath)
	if err != nil {
		return nil, fmt.Errorf("failed to persist staged file: %w", err)
	}
	size, err := io.Copy(blob, file)
	if cerr := blob.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(blobPath)
		return nil, fmt.Errorf("failed to persist staged file: %w", err)
	}

	staged := &StagedUpload{
		ID:          id,
		SupplierID:  supplierID,
		Filename:    filename,
		Description: description,
		Size:        size,
		StagedAt:    time.Now().UTC(),
		Preview:     buildPreview(blobPath, filename),
	}

	meta, err := json.Marshal(staged)
	if err != nil {
		os.Remove(blobPath)
		return nil, err
	}
	if err := os.WriteFile(s.metaPath(id), meta, 0o644); err != nil {
		os.Remove(blobPath)
		return nil, fmt.Errorf("failed to persist staged metadata: %w", err)
	}

	return staged, nil
}

// Get loads the metadata for one staged upload.
func (s *Store) Get(id string) (*StagedUpload, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	meta, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var staged StagedUpload
	if err := json.Unmarshal(meta, &staged); err != nil {
		return nil, fmt.Errorf("staged metadata corrupted: %w", err)
	}
	return &staged, nil
}

// Open returns the metadata together with a reader over the payload. The
// caller owns closing the reader.
func (s *Store) Open(id string) (*StagedUpload, io.ReadCloser, error) {
	staged, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := os.Open(s.blobPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return staged, blob, nil
}

// Remove discards a staged upload and its metadata.
func (s *Store) Remove(id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	metaErr := os.Remove(s.metaPath(id))
	blobErr := os.Remove(s.blobPath(id))
	if os.IsNotExist(metaErr) && os.IsNotExist(blobErr) {
		return ErrNotFound
	}
	if metaErr != nil && !os.IsNotExist(metaErr) {
		return metaErr
	}
	if blobErr != nil && !os.IsNotExist(blobErr) {
		return blobErr
	}
	return nil
}

// Sweep removes staged uploads older than the retention window and returns
// how many were discarded.
func (s *Store) Sweep(now time.Time) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		zap.L().Error("failed to scan staging directory", zap.Error(err))
		return 0
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")

		staged, err := s.Get(id)
		if err != nil {
			continue
		}
		if now.Sub(staged.StagedAt) < s.retention {
			continue
		}
		if err := s.Remove(id); err != nil {
			zap.L().Warn("failed to remove expired staged upload",
				zap.String("staged_id", id), zap.Error(err))
			continue
		}
		removed++
	}
	return removed
}

// StartSweeper runs the retention sweep on an interval until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		zap.L().Info("staging sweeper started",
			zap.String("dir", s.dir), zap.Duration("retention", s.retention))
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				zap.L().Info("staging sweeper stopping")
				return
			case <-ticker.C:
				if removed := s.Sweep(time.Now().UTC()); removed > 0 {
					zap.L().Info("expired staged uploads removed", zap.Int("count", removed))
				}
			}
		}
	}()
}

func (s *Store) blobPath(id string) string {
	return filepath.Join(s.dir, id+".blob")
}

func (s *Store) metaPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// validateID rejects anything that is not a UUID so ids can never escape the
// staging directory.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return nil
}

// buildPreview inspects the staged blob when the format allows it. Only the
// first row is treated as columns; everything after counts as data rows.
func buildPreview(path, filename string) *Preview {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return previewDelimited(path)
	case ".xlsx":
		return previewXLSX(path)
	default:
		return nil
	}
}

func previewDelimited(path string) *Preview {
	f, err := os.Open(path)
	if err != nil {
		zap.L().Warn("failed to open staged file for preview", zap.Error(err))
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = sniffDelimiter(path)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}

	rows := 0
	for {
		if _, err := reader.Read(); err != nil {
			break
		}
		rows++
	}

	return &Preview{RowCount: rows, Columns: trimmedColumns(header)}
}

func previewXLSX(path string) *Preview {
	f, err := os.Open(path)
	if err != nil {
		zap.L().Warn("failed to open staged file for preview", zap.Error(err))
		return nil
	}
	defer f.Close()

	book, err := excelize.OpenReader(f)
	if err != nil {
		zap.L().Warn("failed to parse staged workbook for preview", zap.Error(err))
		return nil
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil || len(rows) == 0 {
		return nil
	}

	return &Preview{RowCount: len(rows) - 1, Columns: trimmedColumns(rows[0])}
}

// sniffDelimiter picks the separator that splits the first line most often.
// Price lists arrive with commas, semicolons or tabs depending on the export
// tool.
func sniffDelimiter(path string) rune {
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, _ := f.Read(buf)
	line := string(buf[:n])
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	best, bestCount := ',', strings.Count(line, ",")
	for _, candidate := range []rune{';', '\t'} {
		if count := strings.Count(line, string(candidate)); count > bestCount {
			best, bestCount = candidate, count
		}
	}
	return best
}

func trimmedColumns(header []string) []string {
	cols := make([]string, 0, len(header))
	for _, col := range header {
		col = strings.TrimSpace(col)
		if col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}
