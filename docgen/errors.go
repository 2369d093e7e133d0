package docgen

import "errors"

// ErrTypeNotFound is returned when a doc_type is not in the registry.
var ErrTypeNotFound = errors.New("docgen: document type not found")

// ErrDocumentNotFound is returned when a generated document id is unknown or
// its body file is gone.
var ErrDocumentNotFound = errors.New("docgen: document not found")

// ErrInvalidInput is returned when request fields fail validation.
var ErrInvalidInput = errors.New("docgen: invalid input")
