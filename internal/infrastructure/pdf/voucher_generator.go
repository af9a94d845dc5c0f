// Package pdf genera el comprobante imprimible de un documento de entrada o salida.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título (entrada/salida) │ N° Documento + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTRAPARTE: proveedor o cliente │ BODEGA                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Medicamento | Presentación | P.Unit | Monto  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + estado de auditoría + auditor                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Farmacia-api/internal/application/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 57}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoVoucherGenerator implementa document.VoucherGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

var _ document.VoucherGenerator = (*MarotoVoucherGenerator)(nil)

// GenerateDocumentPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateDocumentPDF(_ context.Context, data document.VoucherData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+data.DocumentID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data))
	m.AddRows(auditRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func title(direction string) string {
	if direction == entity.DirectionOutbound {
		return "COMPROBANTE DE SALIDA"
	}
	return "COMPROBANTE DE ENTRADA"
}

// headerRow: título (izq) y número + fecha (der).
func headerRow(data document.VoucherData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title(data.Direction), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(data.DocumentID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+data.DocDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// partiesRow: contraparte (proveedor o cliente) y bodega.
func partiesRow(data document.VoucherData) core.Row {
	label := "CLIENTE"
	if data.Direction == entity.DirectionInbound {
		label = "PROVEEDOR"
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.Counterparty, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("BODEGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right,
			}),
			text.New(nonEmpty(data.Warehouse, "—"), props.Text{
				Size: 10, Top: 6, Align: align.Right,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Medicamento", 4, align.Left),
		h("Presentación", 3, align.Left),
		h("Unidad", 1, align.Center),
		h("P. Unit.", 1, align.Right),
		h("Monto", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []document.LineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				l.MedicineName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				l.Specification,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(1).Add(text.New(
				nonEmpty(l.UnitName, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				l.UnitPrice,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				l.Amount,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total del documento alineado a la derecha.
func totalRow(data document.VoucherData) core.Row {
	return row.New(10).Add(
		col.New(7),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New(data.TotalAmount, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// auditRow: estado de auditoría, auditor y observaciones.
func auditRow(data document.VoucherData) core.Row {
	estado := map[string]string{
		entity.StatusPending:  "PENDIENTE DE AUDITORÍA",
		entity.StatusApproved: "APROBADO",
		entity.StatusRejected: "RECHAZADO",
	}[data.Status]

	detail := "Estado: " + estado
	if data.Auditor != "" {
		detail += "   |   Auditor: " + data.Auditor
	}
	if data.Remark != "" {
		detail += "   |   Obs: " + data.Remark
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(detail, props.Text{Size: 8, Color: colorGray, Top: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
