// Package artifact renders monthly timesheet files referenced by
// monthly reports.
package artifact

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/common"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/report"
)

// CSVGenerator writes one CSV timesheet per (student, workspace,
// period) under a base directory and returns the file path as the
// artifact handle.
type CSVGenerator struct {
	baseDir string
}

func NewCSVGenerator(baseDir string) *CSVGenerator {
	return &CSVGenerator{baseDir: baseDir}
}

func (g *CSVGenerator) Generate(ctx context.Context, key report.PairKey, p report.Period, rows []report.ArtifactRow) (string, error) {
	dir := filepath.Join(g.baseDir, fmt.Sprintf("%04d-%02d", p.Year, p.Month))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", common.NewError(common.CodeInternal, "failed to create artifact directory", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", key.StudentID, key.WorkspaceID))

	f, err := os.Create(path)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to create artifact file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "hours", "description"}); err != nil {
		return "", common.NewError(common.CodeInternal, "failed to write artifact header", err)
	}
	for _, row := range rows {
		record := []string{row.Date.Format("2006-01-02"), row.Hours.StringFixed(2), row.Description}
		if err := w.Write(record); err != nil {
			return "", common.NewError(common.CodeInternal, "failed to write artifact row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", common.NewError(common.CodeInternal, "failed to flush artifact", err)
	}
	return path, nil
}
