package importer

import "errors"

// Sentinel kinds for import errors.
var (
	// ErrUnrecognizedShape: the payload matches none of the accepted
	// batch shapes.
	ErrUnrecognizedShape = errors.New("unrecognized batch payload shape")

	// ErrSchemaViolation: a modern envelope failed schema validation.
	ErrSchemaViolation = errors.New("batch envelope schema violation")
)
