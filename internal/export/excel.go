// Package export serializes ledger transactions to spreadsheet files.
package export

import (
	"fmt"
	"time"

	"blueeyes-backoffice/internal/domain"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Transacciones"

// Headers is the fixed column set of every transaction export.
var Headers = []string{
	"Fecha", "Tipo", "Cliente", "Item", "Cantidad",
	"Método de Pago", "Monto", "Empleado", "Estado", "Notas",
}

// BuildWorkbook renders a title row, the header row and one row per
// transaction onto a "Transacciones" sheet.
func BuildWorkbook(title string, txs []domain.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, err
	}
	for i, header := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 2, 2, headerStyle)
	}

	for rowIdx := range txs {
		t := &txs[rowIdx]
		values := []any{
			formatDate(t.EffectiveTime()),
			t.TypeLabel(),
			t.ClientName(),
			string(t.Item),
			t.Amount.InexactFloat64(),
			string(t.Payment),
			t.PaymentAmount.InexactFloat64(),
			t.Employee,
			string(t.Status),
			t.Notes,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(path, title string, txs []domain.Transaction) error {
	f, err := BuildWorkbook(title, txs)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// Filename embeds the export kind and an ISO date, matching the names the
// back office has always produced.
func Filename(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, at.UTC().Format("2006-01-02"))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
