package domain

// MutationState is the result of one form submission: either a field-level
// error map, a form-level message, or both. It is created fresh per
// submission and discarded once the client has rendered it.
type MutationState struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
	Success bool                `json:"success,omitempty"`
}
