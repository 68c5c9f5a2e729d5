// ABOUTME: Errors shared by the contact and business lookup clients
package lookup

import "errors"

var (
	// ErrMissingAPIKey means the service credential is not configured
	ErrMissingAPIKey = errors.New("lookup service credential not configured")
	// ErrNotFound means the service answered but found nothing
	ErrNotFound = errors.New("no result found")
	// ErrTimeout means polling gave up before results arrived
	ErrTimeout = errors.New("no results found or search timed out")
)
