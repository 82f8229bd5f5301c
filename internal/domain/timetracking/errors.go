package timetracking

import "errors"

var (
	ErrNoRunningClock      = errors.New("no clock is currently running")
	ErrCurrentUserNotFound = errors.New("could not find a user matching the API credentials")
)
