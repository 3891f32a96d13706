package record

// Rejection is an asynchronous operation that failed with Reason.
// Reason may be an error, a string, a number or any structured value.
type Rejection struct {
	Reason any
}

// Reject wraps reason into a Rejection.
func Reject(reason any) *Rejection {
	return &Rejection{Reason: reason}
}

// Details is a failure plus the context it happened in.
// Exactly one of Error and Rejection is expected; when both are set, Error
// wins. All context fields are optional.
type Details struct {
	Error     error
	Rejection *Rejection

	UserAgent  string
	RequestURL string
	// State is an application state snapshot attached to the record as-is.
	State any
	// PossibleDuplicate hints that the failure may already have been reported
	// through another path, e.g. several handlers on one async chain.
	PossibleDuplicate *bool
}

// IsEmpty reports whether there is nothing to report.
func (d Details) IsEmpty() bool {
	return d.Error == nil && d.Rejection == nil
}

// Failure returns the value that failed: the error or the rejection.
func (d Details) Failure() any {
	if d.Error != nil {
		return d.Error
	}
	if d.Rejection != nil {
		return d.Rejection
	}
	return nil
}
