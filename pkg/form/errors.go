package form

import "errors"

var (
	// ErrSubmissionInFlight is returned when Submit is called while another
	// submission attempt has not finished.
	ErrSubmissionInFlight = errors.New("form: submission already in flight")
	// ErrSubmitterRequired is returned by New without WithSubmitter.
	ErrSubmitterRequired = errors.New("form: submitter is required")
	// ErrPrompterRequired is returned by New without WithPrompter.
	ErrPrompterRequired = errors.New("form: prompter is required")
	// ErrInvalidCatalog is returned for catalogs with empty or duplicate ids.
	ErrInvalidCatalog = errors.New("form: invalid checkbox catalog")
)
