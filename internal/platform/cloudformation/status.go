package cloudformation

import "strings"

// Stack statuses the client branches on.
const (
	StatusCreateComplete         = "CREATE_COMPLETE"
	StatusUpdateComplete         = "UPDATE_COMPLETE"
	StatusDeleteComplete         = "DELETE_COMPLETE"
	StatusImportComplete         = "IMPORT_COMPLETE"
	StatusRollbackComplete       = "ROLLBACK_COMPLETE"
	StatusReviewInProgress       = "REVIEW_IN_PROGRESS"
	StatusUpdateRollbackComplete = "UPDATE_ROLLBACK_COMPLETE"
)

// InProgress reports whether status is transitional.
func InProgress(status string) bool {
	return strings.HasSuffix(status, "_IN_PROGRESS") && status != StatusReviewInProgress
}

// Succeeded reports whether status is a successful terminal status.
func Succeeded(status string) bool {
	switch status {
	case StatusCreateComplete, StatusUpdateComplete, StatusDeleteComplete, StatusImportComplete:
		return true
	}
	return false
}

// Failed reports whether status is a terminal failure or rollback.
func Failed(status string) bool {
	return !InProgress(status) && !Succeeded(status) && status != StatusReviewInProgress
}

// replaceable reports whether a stack in status has to be deleted before it
// can be created again. A stack that rolled back its creation accepts no
// updates.
func replaceable(status string) bool {
	return status == StatusRollbackComplete
}
