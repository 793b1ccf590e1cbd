package relay

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TagUnknown is the reserved tag for the uninitialized state. It is never
// assigned to a registered type and never dispatchable; real tags start at 1.
const TagUnknown = 0

// ID pairs an object's local identifier with its type tag. Domain objects
// carry an ID and serialize it as the encoded global form at the API
// boundary; the global string itself is never stored.
//
// Example:
//
//	type User struct {
//	    ID   relay.ID `json:"id"`
//	    Name string   `json:"name"`
//	}
//
//	tag, _ := reg.TagFor("User")
//	u := User{ID: relay.ID{Local: localID, Tag: tag}, Name: "Oscar"}
type ID struct {
	// Local is the canonical 36-character UUID form assigned by the object
	// store. Identity is scoped to one type's domain, not global.
	Local string

	// Tag is the type's registry-assigned positive integer tag.
	Tag int
}

// String returns the encoded global identifier. It panics if Local is not a
// well-formed canonical UUID (see EncodeID).
func (id ID) String() string {
	return EncodeID(id.Local, id.Tag)
}

// MarshalJSON emits the encoded global identifier, so objects embedding an
// ID expose the opaque form to clients.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// EncodeID combines a canonical local identifier and a type tag into one
// opaque global identifier: the compact 32-character form of the UUID
// followed by the tag in minimal decimal form. The result is at least 33
// characters for any real (positive) tag.
//
// The local identifier must be a canonical UUID of at least 36 characters.
// Violations panic: encode must only ever be fed identifiers sourced from
// the object store, and silently tolerating a short one would emit corrupted
// identifiers.
func EncodeID(local string, tag int) string {
	return CompactUUID(local) + strconv.Itoa(tag)
}

// DecodedID is the result of splitting a global identifier.
type DecodedID struct {
	// Local is the canonical 36-character UUID reconstructed from the
	// compact prefix.
	Local string

	// Tag is the raw remainder after byte 32, kept verbatim. It is matched
	// against registered tag strings by exact equality, never parsed as a
	// number.
	Tag string
}

// DecodeID reverses EncodeID. Input shorter than the fixed 32-character
// compact prefix yields ErrMalformedID; otherwise the first 32 characters
// are expanded back to canonical UUID form and the remainder becomes the raw
// tag string. The split point is always exactly byte 32 regardless of tag
// length.
func DecodeID(global string) (DecodedID, error) {
	if len(global) < compactUUIDLen {
		return DecodedID{}, fmt.Errorf("%w: %d characters, need at least %d", ErrMalformedID, len(global), compactUUIDLen)
	}
	return DecodedID{
		Local: ExpandUUID(global[:compactUUIDLen]),
		Tag:   global[compactUUIDLen:],
	}, nil
}
