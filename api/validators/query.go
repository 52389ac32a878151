package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/listing"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseListingParams reads the shared table query parameters. Column
// whitelisting happens in the repositories; this only shapes the input.
func ParseListingParams(r *http.Request) (listing.Params, error) {
	page, err := ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return listing.Params{}, err
	}
	perPage, err := ParseQueryInt(r, "per_page", listing.DefaultPerPage, 1, listing.MaxPerPage)
	if err != nil {
		return listing.Params{}, err
	}

	q := r.URL.Query()
	return listing.Params{
		Page:          page,
		PerPage:       perPage,
		SortColumn:    strings.TrimSpace(q.Get("sort")),
		SortDirection: strings.TrimSpace(q.Get("direction")),
		Search:        strings.TrimSpace(q.Get("search")),
	}, nil
}
