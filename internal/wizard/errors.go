package wizard

import "errors"

// ErrProjectDirNotEmpty is returned when the target directory already has
// files in it.
var ErrProjectDirNotEmpty = errors.New("project directory is not empty")

// Error is a wizard failure carrying the message shown to the user.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func fail(msg string, err error) error {
	return &Error{Message: msg, Err: err}
}

const (
	msgInitFailed    = "Couldn't initialize the project. Please try again."
	msgInstallFailed = "Unable to run the command. Please try again."
	msgDirNotEmpty   = "Error: The project folder is not empty. Please choose a different name or use an empty folder."
)
