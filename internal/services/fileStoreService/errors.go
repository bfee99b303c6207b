package filestoreservice

import "errors"

var (
	// ErrNotFound is returned when an operation targets a name that is not in the store
	ErrNotFound = errors.New("file not found")
	// ErrNameConflict is returned when an operation would create a second entry with the same name
	ErrNameConflict = errors.New("file name already exists")
	// ErrInvalidName is returned for blank file names
	ErrInvalidName = errors.New("invalid file name")
)

func isConflict(err error) bool {
	return errors.Is(err, ErrNameConflict)
}
