package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
)

// PDF writes the session document as an A4 PDF with a centered title and
// bold section headings.
type PDF struct {
	dir string
}

func (p *PDF) Export(conversationID, fullText string, actionItems, topics []string) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFont("Arial", "", 12)

	pdf.CellFormat(0, 10, fmt.Sprintf("Transcript: %s", conversationID), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	if len(actionItems) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Action Items:", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		for _, item := range actionItems {
			pdf.MultiCell(0, 8, "- "+item, "", "", false)
		}
		pdf.Ln(5)
	}

	if len(topics) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Topics:", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 8, strings.Join(topics, ", "), "", "", false)
		pdf.Ln(10)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Full Transcript:", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, line := range strings.Split(fullText, "\n") {
		pdf.MultiCell(0, 8, line, "", "", false)
	}

	path := filepath.Join(p.dir, fmt.Sprintf("transcript_%s.pdf", conversationID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf file: %w", err)
	}

	log.Info().
		Str("conversation_id", conversationID).
		Str("file", path).
		Msg("Exported PDF")

	return path, nil
}
