// Package exporter serializes ladder records to flat files.
package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/boardpulse/internal/domain/dto"
	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/logger"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

const exportPerm os.FileMode = 0o644

// FormatFor picks the format from the path extension. Unknown extensions
// export as CSV.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Write serializes recs to path in the format implied by its extension.
//
// Behavior:
//   - Creates the parent directory when missing.
//   - Writes to a temporary file in the same directory and renames it into
//     place, so a failed export never leaves a partial file at path.
func Write(path string, recs []models.LadderRecord) error {
	rows := make([]dto.LadderRow, len(recs))
	for i, r := range recs {
		rows[i] = dto.NewLadderRow(r)
	}

	format := FormatFor(path)
	var encode func(io.Writer, []dto.LadderRow) error
	switch format {
	case FormatXLSX:
		encode = writeXLSX
	case FormatJSON:
		encode = writeJSON
	default:
		encode = writeCSV
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := encode(tmp, rows); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", format, err)
	}
	// CreateTemp opens 0600; exports are ordinary shared files
	if err := tmp.Chmod(exportPerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set export permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}

	logger.L().Info().
		Str("path", path).
		Str("format", string(format)).
		Int("rows", len(rows)).
		Msg("export written")
	return nil
}
