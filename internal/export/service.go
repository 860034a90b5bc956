package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/amara-obi/docsorter/internal/entity"
)

// Row pairs a document with its analysis and the filename the engine
// proposed for it.
type Row struct {
	SourcePath   string
	ProposedName string
	Analysis     entity.Analysis
}

// Service produces XLSX bytes summarizing a batch run.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildWorkbook returns an XLSX workbook (as bytes) with one row per
// analyzed document.
func (s *Service) BuildWorkbook(rows []Row) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Analyses"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet excelize creates
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Source Path",
		"Proposed Filename",
		"Client",
		"Date",
		"Document Type",
		"Title",
		"Client Confidence",
		"Date Confidence",
		"Type Confidence",
		"Overall Confidence",
		"Source",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	rowIdx := 2
	for _, r := range rows {
		a := r.Analysis
		values := []any{
			r.SourcePath,
			r.ProposedName,
			a.ClientName,
			a.Date,
			a.DocType,
			a.Title,
			round2(a.ClientConfidence),
			round2(a.DateConfidence),
			round2(a.DocTypeConfidence),
			round2(a.OverallConfidence),
			string(a.Source),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
			_ = f.SetCellValue(sheet, cell, v)
		}
		rowIdx++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.workbook.built",
		"rows", len(rows),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
