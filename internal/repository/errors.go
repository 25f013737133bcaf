package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is not visible to
// the requesting user. Ownership misses map to it as well so handlers can
// fail closed with a plain 404.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned on unique constraint conflicts that the
// caller should report (registration), as opposed to provisioning
// conflicts which are swallowed.
var ErrAlreadyExists = errors.New("already exists")
