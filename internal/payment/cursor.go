package payment

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodeCursor packs the sort-key position of a page boundary into an
// opaque token: Base64 URL-safe (no padding) over "<epoch-millis>:<id>".
func EncodeCursor(createdAt time.Time, id int64) string {
	raw := fmt.Sprintf("%d:%d", createdAt.UnixMilli(), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor reverses EncodeCursor. Any malformed token degrades to
// (nil, nil), meaning "start from the beginning", so a retry with a
// stale or garbled cursor is always safe.
func DecodeCursor(token string) (*time.Time, *int64) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, nil
	}

	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return nil, nil
	}

	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, nil
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, nil
	}

	createdAt := time.UnixMilli(millis).UTC()
	return &createdAt, &id
}
