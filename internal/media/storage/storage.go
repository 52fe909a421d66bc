package storage

import (
	"context"
	"io"
	"net/http"
)

// Store persists uploaded media under flat generated names and serves them
// back.
type Store interface {
	Save(ctx context.Context, name string, body io.ReadSeeker, size int64, contentType string) error
	// Serve writes the named object to w, or returns ErrNotFound without
	// writing anything.
	Serve(w http.ResponseWriter, r *http.Request, name string) error
}
