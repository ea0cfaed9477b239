package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/zoptal/authkit/core/auth"
)

// writeError renders an error as the uniform JSON envelope with the status
// its code maps to. Non-service errors are masked by NewEnvelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	envelope := auth.NewEnvelope(nil, err)

	status := http.StatusInternalServerError
	if envelope.Error != nil {
		status = envelope.Error.Code.HTTPStatus()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}
