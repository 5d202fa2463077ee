package server

import (
	"context"
	"net/http"

	"github.com/go-sod/kdrange/internal/httputil"
)

type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth reports ok until ctx is done.
func HandleHealth(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctx.Err() != nil {
			httputil.RespJSONError(w, http.StatusServiceUnavailable, "shutting down")
			return
		}
		httputil.RespJSON(r.Context(), w, healthResponse{Status: "ok"})
	})
}
