package models

import "errors"

var (
	// ErrDataUnavailable means a required tabular source file is missing.
	// The flow that needs the data halts until the file is provided.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrValidationFailed means user input was rejected, e.g. an empty
	// participant name on the consent form.
	ErrValidationFailed = errors.New("validation failed")

	// ErrIncompleteSubmission means a questionnaire was submitted without
	// an answer for every question.
	ErrIncompleteSubmission = errors.New("incomplete submission")

	// ErrStageOrder means an action was attempted at the wrong stage of
	// the assessment.
	ErrStageOrder = errors.New("action not allowed at current stage")
)
