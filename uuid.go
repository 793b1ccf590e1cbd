package relay

import "fmt"

// Lengths of the two UUID string forms handled by the canonicalizer.
const (
	canonicalUUIDLen = 36
	compactUUIDLen   = 32
)

// CompactUUID converts a canonical hyphenated UUID string to its compact
// 32-character hyphen-free form by removing the four structural hyphens at
// offsets 8, 13, 18 and 23.
//
// The input must be at least 36 characters; anything shorter is a
// programming error (local identifiers come from the object store, never
// from user input) and causes a panic. No hex validation is performed; the
// transform is format-structural only.
func CompactUUID(canonical string) string {
	if len(canonical) < canonicalUUIDLen {
		panic(fmt.Sprintf("relay: local identifier must be a canonical UUID of at least %d characters, got %d (%q)",
			canonicalUUIDLen, len(canonical), canonical))
	}
	return canonical[0:8] + canonical[9:13] + canonical[14:18] + canonical[19:23] + canonical[24:]
}

// ExpandUUID reconstructs the canonical 36-character UUID form from a
// compact 32-character string by inserting hyphens at output offsets 8, 13,
// 18 and 23. The input must be exactly 32 characters; DecodeID guards this
// before calling, so a violation is a programming error and panics. The
// characters are not validated as hex.
func ExpandUUID(compact string) string {
	if len(compact) != compactUUIDLen {
		panic(fmt.Sprintf("relay: compact identifier must be exactly %d characters, got %d",
			compactUUIDLen, len(compact)))
	}
	return compact[0:8] + "-" + compact[8:12] + "-" + compact[12:16] + "-" + compact[16:20] + "-" + compact[20:]
}
