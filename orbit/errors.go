package orbit

import "errors"

// Errors
var (
	ErrMalformedGroup     = errors.New("malformed strong generating set")
	ErrIndexOutOfRange    = errors.New("vector index out of range")
	ErrScratchOverflow    = errors.New("scratch set capacity exceeded")
	ErrBadWidth           = errors.New("group degree exceeds vector width")
	ErrBadDepth           = errors.New("depth or part bound out of range")
	ErrBadEvaluation      = errors.New("evaluation does not sum to the group degree")
	ErrBadLiteral         = errors.New("bad vector or permutation literal")
	ErrUnknownGroup       = errors.New("unknown group")
	ErrUnsupportedSetKind = errors.New("unsupported scratch set kind")
)
