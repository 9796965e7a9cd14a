package inline

import "errors"

// The core's errors are all programming-invariant violations (spec §7),
// not recoverable runtime conditions. ErrUnreachableCoalesce,
// ErrUnknownBoxVariant, and ErrRelationClassification are raised via
// panic and are expected to be recovered at the flow boundary
// (internal/layout/inline_bridge.go) rather than crash the host process;
// ErrSplitContractViolation is logged and handled in place, never
// panicked.
var (
	// ErrUnreachableCoalesce fires when a clump of more than one box is
	// classified non-text; coalescibility is defined as text-only, so
	// this can only happen if that invariant was violated upstream.
	ErrUnreachableCoalesce = errors.New("inline: clump of size > 1 classified as non-text")

	// ErrUnknownBoxVariant fires when width or height assignment
	// encounters a RenderBox kind it doesn't recognize.
	ErrUnknownBoxVariant = errors.New("inline: unknown box variant during width/height assignment")

	// ErrRelationClassification fires when RelationOfClumpAndRange fails
	// to match any case; the case set is exhaustive by construction, so
	// this indicates a malformed BoxRange reached the classifier.
	ErrRelationClassification = errors.New("inline: clump/range relation did not classify")

	// ErrSplitContractViolation is logged, not panicked: split_to_width
	// returned CannotSplit even though the caller had already confirmed
	// CanSplit(); the current line is simply not appended and layout
	// continues (spec §7).
	ErrSplitContractViolation = errors.New("inline: split_to_width returned CannotSplit after CanSplit() true")
)
