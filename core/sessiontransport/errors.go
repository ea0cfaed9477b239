package sessiontransport

import "errors"

// ErrNoToken is returned when no token cookie is present in the request.
var ErrNoToken = errors.New("sessiontransport: no token")
