// Package export writes a snapshot of tasks and statistics as JSON, CSV or PDF.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"todoview/internal/service"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Snapshot is the exported data.
type Snapshot struct {
	Tasks      []service.Task     `json:"tasks"`
	Statistics service.Statistics `json:"statistics"`
}

// Exporter fetches a fresh snapshot for every export.
type Exporter struct{ svc service.Service }

func NewExporter(svc service.Service) *Exporter { return &Exporter{svc: svc} }

// Export fetches tasks, then statistics, and encodes them in format.
func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(Formats, format) {
		return nil, fmt.Errorf("unknown format %s", format)
	}

	tasks, err := e.svc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := e.svc.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	snap := Snapshot{Tasks: tasks, Statistics: stats}
	if snap.Tasks == nil {
		snap.Tasks = []service.Task{}
	}

	switch format {
	case "json":
		return json.MarshalIndent(snap, "", "  ")
	case "csv":
		return encodeCSV(snap)
	default:
		return encodePDF(snap)
	}
}

func encodeCSV(snap Snapshot) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "description", "completed", "created_at"})
	for _, t := range snap.Tasks {
		_ = w.Write([]string{
			t.ID.String(),
			t.Title,
			t.Description,
			strconv.FormatBool(t.Completed),
			formatTime(t.CreatedAt),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func encodePDF(snap Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Todo List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	s := snap.Statistics
	pdf.Cell(0, 6, fmt.Sprintf("Total: %d   Completed: %d   Incomplete: %d", s.Total, s.Completed, s.Incomplete))
	pdf.Ln(10)

	for _, t := range snap.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Title)
		if created := formatTime(t.CreatedAt); created != "" {
			line += "  (" + created + ")"
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		if strings.TrimSpace(t.Description) != "" {
			pdf.SetX(pdf.GetX() + 8)
			pdf.MultiCell(0, 5, tr(t.Description), "0", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
