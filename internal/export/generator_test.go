package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"menuboard/internal/dateutil"
	"menuboard/internal/planboard"
)

func weekDays(t *testing.T) []planboard.DayPlan {
	t.Helper()
	start, err := dateutil.ParseDay("2025-03-03")
	if err != nil {
		t.Fatal(err)
	}

	days := make([]planboard.DayPlan, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, planboard.NewPlaceholderDay(dateutil.AddDays(start, i)))
	}

	// Tuesday lunch with two dishes, Friday dinner out.
	days[1].Slot(planboard.MealLunch).Entries = []planboard.MenuItemEntry{
		{ID: "a", Name: "Ramen"},
		{ID: "b", Name: "Gyoza"},
	}
	friday := days[4].Slot(planboard.MealDinner)
	friday.IsOutside = true
	friday.OutsideLocation = "Trattoria"

	return days
}

func TestGenerateCSV(t *testing.T) {
	data, err := NewGenerator().Generate(weekDays(t), FormatCSV)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse generated CSV: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("rows = %d, want header + 7 days", len(rows))
	}

	wantHeader := []string{"date", "weekday", "breakfast", "lunch", "dinner"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Fatalf("header = %v, want %v", rows[0], wantHeader)
		}
	}

	tuesday := rows[2]
	if tuesday[0] != "2025-03-04" || tuesday[1] != time.Tuesday.String() {
		t.Errorf("tuesday row = %v", tuesday)
	}
	if tuesday[3] != "Ramen; Gyoza" {
		t.Errorf("tuesday lunch = %q, want %q", tuesday[3], "Ramen; Gyoza")
	}

	friday := rows[5]
	if friday[4] != "out: Trattoria" {
		t.Errorf("friday dinner = %q, want %q", friday[4], "out: Trattoria")
	}

	// Empty slots render as empty cells, not placeholders.
	if monday := rows[1]; monday[2] != "" {
		t.Errorf("empty breakfast = %q, want empty", monday[2])
	}
}

func TestGeneratePDF(t *testing.T) {
	data, err := NewGenerator().Generate(weekDays(t), FormatPDF)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF output")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", data[:5])
	}
}

func TestParseFormat(t *testing.T) {
	if _, err := ParseFormat("pdf"); err != nil {
		t.Error(err)
	}
	if _, err := ParseFormat("csv"); err != nil {
		t.Error(err)
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
