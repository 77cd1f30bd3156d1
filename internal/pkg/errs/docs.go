// Package errs holds the error types shared by the storehouse domain and adapters.
//
// Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrFieldNotValid) with a struct that
// carries the details. Unwrap returns the sentinel, so callers classify with
// errors.Is and read details with errors.As:
//
//	var fieldErr *errs.FieldNotValidError
//	if errors.As(err, &fieldErr) {
//	    log.Printf("rejected field %s", fieldErr.Field)
//	}
package errs
