package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixtureRow struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
	City string `gorm:"column:city"`
}

func (fixtureRow) TableName() string { return "fixture_rows" }

func setupListingDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE fixture_rows (id INTEGER PRIMARY KEY, name TEXT, city TEXT)`).Error)

	rows := []fixtureRow{
		{ID: 1, Name: "Amira", City: "Cairo"},
		{ID: 2, Name: "Basim", City: "Alexandria"},
		{ID: 3, Name: "Carmen", City: "Cairo"},
		{ID: 4, Name: "Dalia", City: "Giza"},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func TestNormalizeClampsInputs(t *testing.T) {
	p := Normalize(Params{Page: -3, PerPage: 5000, SortDirection: "DESC "})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "desc", p.SortDirection)

	p = Normalize(Params{})
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, "asc", p.SortDirection)
}

func TestApplySearchFiltersAcrossColumns(t *testing.T) {
	db := setupListingDB(t)
	opts := Options{SearchColumns: []string{"name", "city"}}

	var rows []fixtureRow
	q := ApplySearch(db.Model(&fixtureRow{}), Normalize(Params{Search: "cai"}), opts)
	require.NoError(t, q.Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestApplyOrderingRejectsUnknownColumn(t *testing.T) {
	db := setupListingDB(t)
	opts := Options{SortColumns: []string{"name"}}

	_, err := ApplyOrdering(db.Model(&fixtureRow{}), Normalize(Params{SortColumn: "password"}), opts)
	require.Error(t, err)
}

func TestApplyOrderingSortsAndPages(t *testing.T) {
	db := setupListingDB(t)
	opts := Options{SortColumns: []string{"name"}, DefaultSort: "id ASC"}
	params := Normalize(Params{SortColumn: "name", SortDirection: "desc", Page: 1, PerPage: 2})

	q, err := ApplyOrdering(db.Model(&fixtureRow{}), params, opts)
	require.NoError(t, err)

	var rows []fixtureRow
	require.NoError(t, q.Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "Dalia", rows[0].Name)
	assert.Equal(t, "Carmen", rows[1].Name)
}

func TestNewPageComputesTotals(t *testing.T) {
	page := NewPage([]fixtureRow{}, 5, Normalize(Params{PerPage: 2}))
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(5), page.Total)

	page = NewPage([]fixtureRow{}, 0, Normalize(Params{PerPage: 2}))
	assert.Equal(t, 1, page.TotalPages)
}
