package pbxproj

import "errors"

// Input and graph invariants are unrecoverable once violated: either a
// complete, internally consistent descriptor is produced or nothing is.
var (
	// ErrMissingParam reports an empty required parameter.
	ErrMissingParam = errors.New("required parameter is empty")

	// ErrBadInput reports a parameter or filename that cannot be expressed
	// in the descriptor grammar.
	ErrBadInput = errors.New("malformed input")

	// ErrDuplicateSource reports the same source filename listed twice.
	ErrDuplicateSource = errors.New("duplicate source filename")

	// ErrIdentifierCollision reports two nodes declared under one identifier.
	ErrIdentifierCollision = errors.New("identifier already declared")

	// ErrNotDeclared reports a lookup of an identifier with no declaration.
	ErrNotDeclared = errors.New("identifier not declared")

	// ErrDanglingReference reports a cross-reference to an identifier that
	// has no declaration anywhere in the graph.
	ErrDanglingReference = errors.New("reference to undeclared identifier")

	// ErrDefaultConfiguration reports a configuration list whose default
	// name matches none of its members.
	ErrDefaultConfiguration = errors.New("default configuration not in list")
)
