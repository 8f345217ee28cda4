package repository

import "errors"

// ErrConflict is returned when an optimistic-concurrency check fails: the
// row's version changed, or the row vanished, between load and save. The
// caller decides whether that resolves to not-found or a fatal conflict.
var ErrConflict = errors.New("concurrent modification detected")
