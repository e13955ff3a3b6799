package echoapi

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core"
)

func bindOrdering(t *testing.T, ordering string) *Ordering {
	t.Helper()
	params := url.Values{}
	if ordering != "" {
		params.Set(orderingParam, ordering)
	}
	req := httptest.NewRequest("GET", "/?"+params.Encode(), nil)
	ctx := echo.New().NewContext(req, httptest.NewRecorder())

	ord := new(Ordering)
	ord.Bind(ctx)
	return ord
}

func TestOrdering_Bind(t *testing.T) {
	t.Run("fields with direction prefixes", func(t *testing.T) {
		ord := bindOrdering(t, "name,-created_at")
		assert.Equal(t, []core.DBOrdering{
			{Field: "name", Ascending: true},
			{Field: "created_at", Ascending: false},
		}, ord.Orderings)
	})

	t.Run("absent parameter binds nothing", func(t *testing.T) {
		ord := bindOrdering(t, "")
		assert.Nil(t, ord.Orderings)
	})

	t.Run("non-snake-case fields are dropped", func(t *testing.T) {
		ord := bindOrdering(t, "(select pg_sleep(10)),name drop,-name,name--")
		assert.Equal(t, []core.DBOrdering{
			{Field: "name", Ascending: false},
		}, ord.Orderings)
	})
}
