package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an occurrence has already been recorded for a
// template and date, or that a resource with the same identity already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the requesting user does not own the resource.
var ErrForbidden = errors.New("forbidden")

// ErrNoOpenAction indicates that no undoable compensating action exists for
// the template in the requested period.
var ErrNoOpenAction = errors.New("no undoable recording found")

// ErrAlreadyUndone indicates that the compensating action has already been
// applied; calling undo again is a no-op failure.
var ErrAlreadyUndone = errors.New("recording already undone")
