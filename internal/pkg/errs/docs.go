// Package errs defines the error vocabulary shared by the domain model,
// the use case handlers, and the adapters.
//
// Every failure mode gets two representations that always travel together:
//
//   - a sentinel variable for classification, matched with errors.Is
//     (ErrObjectNotFound, ErrValueIsInvalid, ErrValueIsOutOfRange,
//     ErrValueIsRequired, ErrVersionIsInvalid)
//   - a struct type carrying the details, matched with errors.As
//     (ObjectNotFoundError, ValueIsInvalidError, and so on)
//
// The struct types unwrap to their sentinel, so callers that only care about
// the class, such as the HTTP status mapping, stay decoupled from callers
// that read the fields. Constructors come in two flavors, with and without
// an underlying cause.
//
// Domain packages build their own errors on top of these: an aggregate's
// "not constructed" error is a ValueIsRequiredError, an out-of-range rating
// is a ValueIsOutOfRangeError, and repositories translate missing rows into
// ObjectNotFoundError.
package errs
