package domain

// ValidationError holds every message the validator reported for one file
type ValidationError struct {
	Filename string   `json:"filename"`
	Messages []string `json:"messages"`
}

// Message returns the first reported message, or "" if there is none
func (e ValidationError) Message() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

// ValidationReport maps filename to the validator messages for that file.
// Messages are appended in output order; nothing is overwritten.
type ValidationReport map[string][]string

// NewValidationReport creates an empty report
func NewValidationReport() ValidationReport {
	return make(ValidationReport)
}

// Add appends a message for a file. Empty messages are ignored.
func (r ValidationReport) Add(filename, message string) {
	if message == "" {
		return
	}
	r[filename] = append(r[filename], message)
}

// Errors returns the messages recorded for a file
func (r ValidationReport) Errors(filename string) []string {
	return r[filename]
}

// HasErrors reports whether the file has at least one non-empty message
func (r ValidationReport) HasErrors(filename string) bool {
	for _, msg := range r[filename] {
		if msg != "" {
			return true
		}
	}
	return false
}

// Count returns the number of files with errors
func (r ValidationReport) Count() int {
	n := 0
	for name := range r {
		if r.HasErrors(name) {
			n++
		}
	}
	return n
}

// ValidationOutcome is the typed result of a single validator run.
// OK is true when the validator exited cleanly; otherwise ErrorLines holds
// the non-empty lines of its combined output.
type ValidationOutcome struct {
	OK         bool
	ErrorLines []string
}
