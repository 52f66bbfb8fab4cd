// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-fin-keeper/models"
)

const maxValueWidth = 40

// RenderRecords renders one line per record: its id followed by the other
// fields in name order.
func RenderRecords(entity models.EntityType, recs []models.Record) string {
	var b strings.Builder
	for i, rec := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		id, ok := rec.ID()
		if !ok {
			id = "?"
		}
		b.WriteString("#")
		b.WriteString(id)

		names := make([]string, 0, len(rec))
		for name := range rec {
			if name != "id" {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %s=%s", name, fitText(formatValue(rec[name]), maxValueWidth))
		}
	}

	title := fmt.Sprintf("%s (%d)", strings.ToUpper(entity.String()), len(recs))
	return renderPage(title, b.String(), "")
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		if t == "" {
			return "-"
		}
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
