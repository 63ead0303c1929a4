package handlers

import (
	"errors"
	"regexp"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// parsePaginationParams turns the raw page/limit query values into offsets,
// falling back to the defaults when a value is absent.
func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(defaultPage)
	if pageStr != "" {
		parsed, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || parsed < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
		page = parsed
	}

	limit := int64(defaultLimit)
	if limitStr != "" {
		parsed, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || parsed < 1 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		limit = parsed
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit, nil
}

// regexEscape neutralises metacharacters so user input only ever matches as
// a literal substring.
func regexEscape(s string) string {
	return regexp.QuoteMeta(s)
}
