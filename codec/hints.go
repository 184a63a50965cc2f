// Copyright 2026 The Binproto Authors
// SPDX-License-Identifier: Apache-2.0

package codec

// LengthKind is the unit of a cross-field length descriptor.
type LengthKind uint8

const (
	// LengthBytes means the descriptor counts encoded bytes. The
	// target collection re-parses elements from exactly that byte
	// budget.
	LengthBytes LengthKind = iota

	// LengthElements means the descriptor counts elements.
	LengthElements
)

// String returns the unit name.
func (k LengthKind) String() string {
	switch k {
	case LengthBytes:
		return "bytes"
	case LengthElements:
		return "elements"
	default:
		return "unknown"
	}
}

// FieldLength describes the transmitted length of a field, derived
// from a prior sibling field's runtime value.
type FieldLength struct {
	Kind   LengthKind
	Length int
}

// Hints tracks cross-field state during a single aggregate's read or
// write pass: the declared bit width of the field currently being
// processed, and length descriptors set by earlier fields for later
// ones.
//
// One Hints value exists per top-level aggregate call. It is created
// at aggregate entry, threaded by pointer through every field, and
// discarded at exit; it must never be shared across concurrent calls.
// A nil *Hints is valid everywhere one is accepted and behaves as
// "no hints".
type Hints struct {
	fieldWidth uint
	widthSet   bool

	current int
	lengths map[int]FieldLength
}

// NewHints returns a Hints positioned at the first field.
func NewHints() *Hints {
	return &Hints{}
}

// SetFieldWidth declares that the current field is a bit-field of the
// given width. Cleared automatically by NextField.
func (h *Hints) SetFieldWidth(bits uint) {
	h.fieldWidth = bits
	h.widthSet = true
}

// FieldWidth returns the declared bit width of the current field, if
// any.
func (h *Hints) FieldWidth() (uint, bool) {
	if h == nil || !h.widthSet {
		return 0, false
	}
	return h.fieldWidth, true
}

// SetFieldLength records a length descriptor for the field at the
// given index, in the given unit. Called after the length-prefix
// source field has been processed.
func (h *Hints) SetFieldLength(field, length int, kind LengthKind) {
	if h.lengths == nil {
		h.lengths = make(map[int]FieldLength)
	}
	h.lengths[field] = FieldLength{Kind: kind, Length: length}
}

// CurrentFieldLength returns the length descriptor recorded for the
// field currently being processed, if any. A descriptor is only
// visible while its target field is current: it does not leak past
// the NextField boundary.
func (h *Hints) CurrentFieldLength() (FieldLength, bool) {
	if h == nil || h.lengths == nil {
		return FieldLength{}, false
	}
	fl, ok := h.lengths[h.current]
	return fl, ok
}

// NextField advances the field cursor and clears the per-field bit
// width. The descriptor for the field just left, if never consumed,
// becomes unreachable.
func (h *Hints) NextField() {
	delete(h.lengths, h.current)
	h.current++
	h.fieldWidth = 0
	h.widthSet = false
}
