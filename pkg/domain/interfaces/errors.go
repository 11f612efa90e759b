package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is the common cause of every backend's not-found error. Records
// owned by another owner are reported the same way.
var ErrNotFound = goerr.New("record not found")
