package httputil

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-sod/kdrange/internal/byteutil"
	"github.com/go-sod/kdrange/internal/logging"
)

func DecodeErr(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		syntaxErr      *json.SyntaxError
		unmarshalError *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		RespBadRequest(ctx, w, "malformed json at position %v", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		RespBadRequest(ctx, w, "malformed json")
	case errors.As(err, &unmarshalError):
		RespBadRequest(ctx, w, "invalid value %v at position %v", unmarshalError.Field, unmarshalError.Offset)
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		RespBadRequest(ctx, w, "unknown field %s", fieldName)
	case errors.Is(err, io.EOF):
		RespBadRequest(ctx, w, "body must not be empty")
	case err.Error() == "http: request body too large":
		RespJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
	default:
		RespInternalError(ctx, w, "failed to decode json %v", err)
	}
}

// DecodeJSON checks method and content type and decodes the body into v,
// writing the error response itself. It reports whether decoding succeeded.
func DecodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, maxBodyBytes int64, v interface{}) bool {
	logger := logging.FromContext(ctx)
	if r.Method != http.MethodPost {
		logger.Debugf("method %v is not allowed", r.Method)
		RespJSONError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %v is not allowed", r.Method))
		return false
	}
	if t := r.Header.Get("content-type"); !strings.HasPrefix(t, "application/json") {
		logger.Debugf("content-type %q is not application/json", t)
		RespJSONError(w, http.StatusUnsupportedMediaType, "content-type is not application/json")
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		DecodeErr(ctx, w, err)
		return false
	}
	return true
}

// RespBadRequest writes a 400 JSON error. The message is formatted like
// fmt.Sprintf and escaped on encoding, so it may carry user input.
func RespBadRequest(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.FromContext(ctx).Debug(msg)
	RespJSONError(w, http.StatusBadRequest, msg)
}

// RespInternalError logs the formatted detail and writes a generic 500 JSON
// error.
func RespInternalError(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	logging.FromContext(ctx).Errorf(format, args...)
	RespJSONError(w, http.StatusInternalServerError, "internal error")
}

func RespJSONError(w http.ResponseWriter, code int, msg string) {
	bytes, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: msg})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(bytes)
}

func RespJSON(ctx context.Context, w http.ResponseWriter, v interface{}) {
	buf := byteutil.GetBuffer()
	defer byteutil.PutBuffer(buf)
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		RespInternalError(ctx, w, "failed to encode output json %v", err)
		return
	}
	// Encode terminates the document with a newline.
	buf.Truncate(buf.Len() - 1)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// RequireBearer rejects requests not carrying the bearer token. An empty
// token disables the check.
func RequireBearer(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	expected := []byte("Bearer " + token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), expected) != 1 {
			logging.FromContext(r.Context()).Debugf("unauthorized request to %s", r.URL.Path)
			RespJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
