package guard

import "errors"

// ProtectedReadMessage is returned to the agent whenever a read is denied.
const ProtectedReadMessage = "Reading .env files is prohibited for security reasons. " +
	"Use environment variables or configuration management instead."

// ErrProtectedRead is the sentinel matched by errors.Is for denied reads.
var ErrProtectedRead = errors.New(ProtectedReadMessage)

// ProtectedReadError is returned when a read of an environment file is attempted.
type ProtectedReadError struct {
	// Tool is the tool identifier of the blocked invocation.
	Tool string
	// Path is the file path exactly as the host supplied it.
	Path string
}

// Error returns the fixed denial message.
func (e *ProtectedReadError) Error() string {
	return ProtectedReadMessage
}

// Unwrap returns ErrProtectedRead.
func (e *ProtectedReadError) Unwrap() error {
	return ErrProtectedRead
}

// IsProtectedRead reports whether err is a denied read.
func IsProtectedRead(err error) bool {
	return errors.Is(err, ErrProtectedRead)
}
