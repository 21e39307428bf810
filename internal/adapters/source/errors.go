package source

import "errors"

// ErrUnavailable reports that the dataset could not be read. The cause is
// wrapped alongside it.
var ErrUnavailable = errors.New("dataset unavailable")
