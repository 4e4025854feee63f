// Package xlsx は認定の有効期限レポートを Excel ブックとして出力します。
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/xuri/excelize/v2"
)

// ContentType は xlsx の MIME タイプです。
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Vencimientos"

// ExpiringHeader は期限レポートの列見出しです。
var ExpiringHeader = []string{
	"Trabajador",
	"Curso",
	"Fecha de emisión",
	"Fecha de vencimiento",
	"Días restantes",
	"Urgencia",
	"Estado",
}

var columnWidths = []float64{30, 30, 18, 20, 15, 12, 14}

// Source は期限が近い認定の一覧を提供します。
type Source interface {
	ListExpiring(ctx context.Context, in certification.ListExpiringInput) ([]certification.Expiring, error)
}

// Workbook は生成されたブックです。
type Workbook struct {
	Filename string
	Content  []byte
	Rows     int
}

// Exporter は認定の期限レポートを生成します。
type Exporter struct {
	source Source
	clock  common.Clock
}

// NewExporter は Exporter を生成します。
func NewExporter(source Source, clock common.Clock) *Exporter {
	if clock == nil {
		clock = common.SystemClock{}
	}
	return &Exporter{source: source, clock: clock}
}

// ExpiringCertifications は期限が近い認定を 1 行 1 件で書き出します。
func (e *Exporter) ExpiringCertifications(ctx context.Context, in certification.ListExpiringInput) (*Workbook, error) {
	items, err := e.source.ListExpiring(ctx, in)
	if err != nil {
		return nil, err
	}

	content, err := render(items)
	if err != nil {
		return nil, err
	}

	today := common.TruncateDate(e.clock.Now())
	return &Workbook{
		Filename: fmt.Sprintf("certificaciones-por-vencer-%s.xlsx", lifecycle.FormatDate(&today)),
		Content:  content,
		Rows:     len(items),
	}, nil
}

func render(items []certification.Expiring) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FDE9D9"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: create header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &ExpiringHeader); err != nil {
		return nil, fmt.Errorf("xlsx: write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(ExpiringHeader), 1)
	if err != nil {
		return nil, fmt.Errorf("xlsx: header range: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: set header style: %w", err)
	}

	for i, w := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("xlsx: set column width: %w", err)
		}
	}

	for i, item := range items {
		c := item.Certification
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
		row := []any{
			c.WorkerName,
			c.CourseName,
			lifecycle.FormatDate(&c.IssueDate),
			lifecycle.FormatDate(&c.ExpiryDate),
			item.DaysUntil,
			string(item.Window),
			string(c.Status),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
