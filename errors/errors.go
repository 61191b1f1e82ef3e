package errors

import "fmt"

var (
	ErrNotAuthorized   = fmt.Errorf("not authorized")
	ErrNotLoggedIn     = fmt.Errorf("no valid session")
	ErrUsage           = fmt.Errorf("missing or malformed arguments")
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrInvalidUsername = fmt.Errorf("invalid username")
	ErrWrongPassword   = fmt.Errorf("wrong password")
)
