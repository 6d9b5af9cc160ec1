package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Rapor"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Render tabloyu tek sayfalık xlsx dosyasına yazar. Satır yoksa sadece
// başlık satırı yazılır.
func Render(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("sayfa adı verilemedi: %w", err)
	}

	headers := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("başlık satırı yazılamadı: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("%d. satır yazılamadı: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel dosyası oluşturulamadı: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName ör: payments_raporu_20250115_093000.xlsx
func FileName(t Type, now time.Time) string {
	return fmt.Sprintf("%s_raporu_%s.xlsx", t, now.Format("20060102_150405"))
}
