// Package errs defines the error taxonomy shared by the whole engine.
//
// Every failure mode gets a sentinel (ErrValueIsRequired, ErrObjectNotFound,
// ...) plus a typed struct carrying the offending parameter and an optional
// cause. The typed errors Unwrap to their sentinel, so callers classify with
// errors.Is and read details with errors.As:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.NewHTTPError(http.StatusNotFound, err.Error())
//	}
//
// Adapters and handlers never invent ad-hoc error strings for these cases;
// the HTTP layer maps sentinels to status codes in exactly one place.
package errs
