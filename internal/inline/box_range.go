package inline

import "fmt"

// BoxRange is a half-open index range [Start, Start+Len) over a flow's
// box sequence. It is empty when Len == 0.
type BoxRange struct {
	Start uint16
	Len   uint16
}

// EmptyBoxRange returns the zero-length range at index 0.
func EmptyBoxRange() BoxRange { return BoxRange{} }

// End returns the exclusive end index of the range.
func (r BoxRange) End() uint16 { return r.Start + r.Len }

// IsEmpty reports whether the range covers zero boxes.
func (r BoxRange) IsEmpty() bool { return r.Len == 0 }

// NodeRange records which non-leaf element owns which contiguous slice
// of rendered boxes. Node is an opaque handle supplied by the
// box-builder; the core never dereferences it.
type NodeRange struct {
	Node any
	Span BoxRange
}

// ClumpRangeRelation classifies how an element span relates to a clump
// (spec §4.1). Overlap amounts are carried on the two overlap variants.
type ClumpRangeRelation int

const (
	RelEntirelyBefore ClumpRangeRelation = iota
	RelEntirelyAfter
	RelCoincides
	RelContainsClump
	RelContainedByClump
	RelOverlapsClumpStart
	RelOverlapsClumpEnd
)

// RelationOfClumpAndRange classifies the relation between a NodeRange
// span and a clump [clumpStart, clumpEnd] (inclusive), returning the
// overlap amount for the two Overlaps* cases (0 otherwise).
//
// Check order matters and is part of the spec (§4.1, §9 open question 2):
// Coincides must be tested before Contains/ContainedBy, which must be
// tested before the overlap cases, exactly mirroring the original
// relation_of_clump_and_range's literal if-chain.
func RelationOfClumpAndRange(span BoxRange, clumpStart, clumpEnd uint16) (ClumpRangeRelation, uint16) {
	rangeStart := uint32(span.Start)
	rangeEnd := uint32(span.End())
	cs := uint32(clumpStart)
	ce := uint32(clumpEnd)

	switch {
	case rangeEnd < cs:
		return RelEntirelyBefore, 0
	case rangeStart > ce:
		return RelEntirelyAfter, 0
	case rangeStart == cs && rangeEnd == ce:
		return RelCoincides, 0
	case rangeStart <= cs && rangeEnd >= ce:
		return RelContainsClump, 0
	case rangeStart >= cs && rangeEnd <= ce:
		return RelContainedByClump, 0
	case rangeStart < cs && rangeEnd < ce:
		return RelOverlapsClumpStart, uint16(rangeEnd - cs)
	case rangeStart > cs && rangeEnd > ce:
		return RelOverlapsClumpEnd, uint16(ce - rangeStart)
	default:
		panic(fmt.Errorf("%w: span=%+v clumpStart=%d clumpEnd=%d", ErrRelationClassification, span, clumpStart, clumpEnd))
	}
}
