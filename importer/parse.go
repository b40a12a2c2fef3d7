package importer

import (
	"strconv"
	"strings"
	"time"
)

// itemsRawLimit bounds the free-text item list stored per order.
const itemsRawLimit = 500

// normalizeOrderDate parses a ShootProof order date into ISO form.
// Exports use "Jan 2, 2006" in some reports and "2006-01-02" in others;
// the comma decides which. Anything unparseable is returned verbatim so a
// bad date never fails the row.
func normalizeOrderDate(raw string) string {
	if raw == "" {
		return raw
	}
	layout := "2006-01-02"
	if strings.Contains(raw, ",") {
		layout = "Jan 2, 2006"
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02T15:04:05")
}

// parseAmount parses a currency amount, stripping thousands-separator
// commas. Empty or unparseable values read as 0.0.
func parseAmount(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// countItems counts the newline-separated entries of an items field.
func countItems(items string) int {
	if items == "" {
		return 0
	}
	return len(strings.Split(items, "\n"))
}

// truncateItems bounds the raw items text for storage; empty input stores
// as NULL. The limit counts runes, never splitting a multi-byte character.
func truncateItems(items string) *string {
	if items == "" {
		return nil
	}
	if runes := []rune(items); len(runes) > itemsRawLimit {
		items = string(runes[:itemsRawLimit])
	}
	return &items
}

// isAllDigits reports whether s is non-empty and consists only of ASCII
// digits, matching the source platform's numeric id format.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
