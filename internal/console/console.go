// Package console holds the two console controllers of the gateway: the
// admin moderation console and the end-user chat console. Controllers keep
// the view state that the rendered pages are built from; all backend
// access goes through the typed client.
package console

import (
	"errors"

	"github.com/songminho/ragconsole/internal/apierr"
	"github.com/songminho/ragconsole/internal/backend"
)

// failureText turns a backend call failure into the message shown in a
// console region. Structured (non-2xx) responses go through the apierr
// normalizer with the call site's fallback; transport failures surface
// their raw string form.
func failureText(err error, fallback string) string {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		return apierr.Format(apierr.Parse(statusErr.Payload, fallback))
	}
	return err.Error()
}

func isStatusError(err error) bool {
	var statusErr *backend.StatusError
	return errors.As(err, &statusErr)
}
