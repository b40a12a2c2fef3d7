package importer

import "strings"

// DeriveFamilyKey maps a surname to the stable key used as the family's
// storage id: lowercased, spaces replaced with underscores, apostrophes
// stripped. No other normalization is applied; two surnames that differ
// only in characters this doesn't touch will collide on the same key.
func DeriveFamilyKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "'", "")
	return key
}

// SurnameFromGallery extracts the owning family's surname from a gallery
// label. Labels are conventionally "First Last" or just "Last", so the last
// whitespace-delimited token is taken. Lossy for multi-word surnames.
func SurnameFromGallery(label string) string {
	parts := strings.Fields(label)
	if len(parts) == 0 {
		return label
	}
	return parts[len(parts)-1]
}
