package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

func errInvalidParam(name string) error {
	return fmt.Errorf("invalid %s parameter", name)
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected RFC 3339 or YYYY-MM-DD", v)
	}
	return t, nil
}

// parseLimit reads the optional ?limit= parameter. Zero means "use the
// service default".
func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errInvalidParam("limit")
	}
	return n, nil
}
