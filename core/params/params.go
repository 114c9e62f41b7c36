package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// QueryParams is the common pagination envelope for list endpoints.
type QueryParams struct {
	Page  int
	Limit int
}

func FromContext(c echo.Context) QueryParams {
	p := QueryParams{Page: 1, Limit: defaultLimit}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p QueryParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
