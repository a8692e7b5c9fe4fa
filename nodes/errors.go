package nodes

import "errors"

var (
	// ErrNodeNotFound indicates a node that is not a direct child of the container.
	ErrNodeNotFound = errors.New("nodes: node not found")

	// ErrInvalidInput indicates edit text that does not parse for the node type.
	ErrInvalidInput = errors.New("nodes: invalid input")

	// ErrReadOnly indicates an edit against a read-only field.
	ErrReadOnly = errors.New("nodes: field is read-only")

	// ErrNoProcess indicates an edit that needs to write memory without an attached process.
	ErrNoProcess = errors.New("nodes: no process to write to")

	// ErrDrawFault wraps a panic recovered while drawing a node.
	ErrDrawFault = errors.New("nodes: draw fault")

	// ErrAlreadyParented indicates a node that is already owned by another parent.
	ErrAlreadyParented = errors.New("nodes: node already has a parent")
)
