// README: Sentinel errors for the road network package.
package roadnet

import "errors"

var (
	// ErrDuplicateNode is returned when a node ID is added twice.
	ErrDuplicateNode = errors.New("node already exists")
	// ErrUnknownNode is returned when an operation references a node ID
	// that was never added to the network.
	ErrUnknownNode = errors.New("node does not exist")
	// ErrNegativeWeight is returned when an edge is added with a negative
	// distance.
	ErrNegativeWeight = errors.New("edge distance cannot be negative")
	// ErrEmptyQueue is returned by ExtractMin on an empty priority queue.
	ErrEmptyQueue = errors.New("priority queue is empty")
)
