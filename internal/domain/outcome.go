package domain

// SubmissionOutcome is the best-effort result of a bridge submission. The
// upstream renders HTML rather than structured JSON, so absence of evidence
// is treated optimistically.
type SubmissionOutcome int

const (
	// OutcomeUnknown means the response could not be inspected; callers
	// treat it as success.
	OutcomeUnknown SubmissionOutcome = iota
	// OutcomeSuccess means the response was inspected and carried no error
	// marker.
	OutcomeSuccess
	// OutcomeDuplicate means the response carried the duplicate-CPF error
	// marker.
	OutcomeDuplicate
)

func (o SubmissionOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}
