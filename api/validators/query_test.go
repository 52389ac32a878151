package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListingParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/sales", nil)
	params, err := ParseListingParams(r)
	require.NoError(t, err)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 25, params.PerPage)
	assert.Empty(t, params.SortColumn)
}

func TestParseListingParamsReadsQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/sales?page=3&per_page=50&sort=amount&direction=desc&search=card", nil)
	params, err := ParseListingParams(r)
	require.NoError(t, err)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.PerPage)
	assert.Equal(t, "amount", params.SortColumn)
	assert.Equal(t, "desc", params.SortDirection)
	assert.Equal(t, "card", params.Search)
}

func TestParseListingParamsRejectsBadPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/sales?page=zero", nil)
	_, err := ParseListingParams(r)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	r = httptest.NewRequest("GET", "/api/v1/sales?per_page=5000", nil)
	_, err = ParseListingParams(r)
	require.Error(t, err)
}
