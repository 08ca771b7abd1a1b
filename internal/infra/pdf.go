package infra

// pdf.go — thermal receipt-style PDF for a sale, rendered with go-pdf/fpdf.
// Layout: business header, date and customer, the single item line, bold
// total, payment breakdown by channel and the outstanding balance.

import (
	"bytes"
	"fmt"

	"github.com/nplaytv001-byte/vendas-ovos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GerarReciboPDF renders the receipt for a venda and returns the PDF bytes.
// The handler streams them straight to the client; nothing touches disk.
func GerarReciboPDF(venda *model.Venda) ([]byte, error) {
	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Vendas de Ovos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Venda", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venda.Data.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if venda.Cliente != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+venda.Cliente.Nome, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Item ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Band.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1, 5, venda.Produto, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, fmt.Sprintf("%d", venda.Qtd), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "R$ "+venda.Total.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(1)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.5, 6, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 6, "R$ "+venda.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	// ── Payments ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, p := range venda.Pagamentos {
		pdf.CellFormat(contentW*0.5, 4, p.Canal, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 4, "R$ "+p.Valor.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if !venda.Pendente.IsZero() {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(contentW*0.5, 5, "Pendente", "T", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 5, "R$ "+venda.Pendente.StringFixed(2), "T", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: gerar recibo: %w", err)
	}
	return buf.Bytes(), nil
}
