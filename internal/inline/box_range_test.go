package inline

import "testing"

// Fixtures use a clump spanning indices [2, 5] inclusive (4 boxes).
const (
	fixClumpStart uint16 = 2
	fixClumpEnd   uint16 = 5
)

func TestRelationOfClumpAndRange(t *testing.T) {
	tests := []struct {
		name        string
		span        BoxRange
		wantRel     ClumpRangeRelation
		wantOverlap uint16
	}{
		{"entirely before", BoxRange{Start: 0, Len: 1}, RelEntirelyBefore, 0},
		{"entirely after", BoxRange{Start: 6, Len: 1}, RelEntirelyAfter, 0},
		{"contains clump", BoxRange{Start: 0, Len: 8}, RelContainsClump, 0},
		{"contained by clump", BoxRange{Start: 3, Len: 1}, RelContainedByClump, 0},
		{"overlaps clump start", BoxRange{Start: 0, Len: 3}, RelOverlapsClumpStart, 1},
		{"overlaps clump end", BoxRange{Start: 4, Len: 4}, RelOverlapsClumpEnd, 1},
		// This span covers only 3 of the clump's 4 boxes (start==cs,
		// end==ce), one short of true coincidence. It is classified
		// Coincides anyway because the check compares the range's
		// exclusive end against the clump's inclusive end, mirroring the
		// original relation_of_clump_and_range's literal (quirky) if-chain
		// rather than a corrected half-open comparison (spec §4.1, §9 Q2).
		{"coincides (literal off-by-one convention)", BoxRange{Start: 2, Len: 3}, RelCoincides, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rel, overlap := RelationOfClumpAndRange(tc.span, fixClumpStart, fixClumpEnd)
			if rel != tc.wantRel {
				t.Fatalf("relation = %v, want %v", rel, tc.wantRel)
			}
			if overlap != tc.wantOverlap {
				t.Fatalf("overlap = %d, want %d", overlap, tc.wantOverlap)
			}
		})
	}
}

func TestRelationOfClumpAndRangeChecksCoincidesBeforeContains(t *testing.T) {
	// span = clump exactly minus the last box: satisfies BOTH the
	// Coincides condition (start==cs, end==ce) and would also satisfy
	// ContainsClump's condition (start<=cs, end>=ce) since they are
	// numerically identical at this boundary. The documented check order
	// (spec §4.1, §9 Q2) means Coincides must win.
	span := BoxRange{Start: fixClumpStart, Len: fixClumpEnd - fixClumpStart}
	rel, _ := RelationOfClumpAndRange(span, fixClumpStart, fixClumpEnd)
	if rel != RelCoincides {
		t.Fatalf("relation = %v, want RelCoincides (order-dependent)", rel)
	}
}

func TestBoxRangeEndAndIsEmpty(t *testing.T) {
	r := BoxRange{Start: 3, Len: 4}
	if r.End() != 7 {
		t.Fatalf("End() = %d, want 7", r.End())
	}
	if r.IsEmpty() {
		t.Fatal("IsEmpty() = true for non-empty range")
	}
	if !(EmptyBoxRange().IsEmpty()) {
		t.Fatal("EmptyBoxRange() is not empty")
	}
}
