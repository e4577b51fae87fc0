package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. A missing body decodes as {}.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request payload", common.ErrValidation)
	}
	return nil
}
