package dashboard

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zaqqye/evaluasi_backend/internal/scoring"
)

// RankingSheet is the worksheet ExportRanking writes to.
const RankingSheet = "Peringkat"

var rankingHeader = []interface{}{"Peringkat", "Nama", "NIM", "Nilai Akhir"}

// ExportRanking writes entries as a single-sheet xlsx workbook, one row per
// student in rank order under a header row.
func ExportRanking(w io.Writer, subject string, entries []scoring.RankEntry) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", RankingSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := file.SetDocProps(&excelize.DocProperties{
		Title:   "Peringkat Kelas - " + subject,
		Subject: subject,
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	if err := file.SetSheetRow(RankingSheet, "A1", &rankingHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.Rank, e.Name, e.NIM, e.FinalScore}
		if err := file.SetSheetRow(RankingSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := file.SetColWidth(RankingSheet, "B", "B", 28); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
