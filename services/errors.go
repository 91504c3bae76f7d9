package services

// ValidationError describes a request that failed structural or referential
// checks (missing fields, path/body mismatch, unresolvable ancestor). It maps
// to a 400 and nothing is written when it is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError describes a request refused because of existing state: a
// duplicate id on create, or active dependents blocking a delete. It maps to
// a 409 and its message enumerates the blocking ids where applicable.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
