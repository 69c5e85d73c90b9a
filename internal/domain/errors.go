package domain

import "errors"

var (
	// ErrMaterialNotFound signals a missing material.
	ErrMaterialNotFound = errors.New("material not found")
	// ErrInvalidQuery signals malformed search parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingUnavailable signals an embedding provider failure or timeout.
	// The orchestrator recovers from it by falling back to lexical search.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrVectorQueryFailed signals a vector backend failure or malformed reply.
	// Recovered the same way as ErrEmbeddingUnavailable.
	ErrVectorQueryFailed = errors.New("vector query failed")
	// ErrSearchBackend signals a material store failure. This is the only
	// retrieval error that reaches the response boundary.
	ErrSearchBackend = errors.New("search backend failed")
)
