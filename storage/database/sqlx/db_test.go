package sqlxrepos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name     string
		ordering []core.DBOrdering
		want     string
	}{
		{name: "no ordering falls back", want: " ORDER BY index_number ASC"},
		{
			name:     "allowlisted field ascending",
			ordering: []core.DBOrdering{{Field: "name", Ascending: true}},
			want:     " ORDER BY name ASC",
		},
		{
			name:     "allowlisted field descending",
			ordering: []core.DBOrdering{{Field: "created_at"}},
			want:     " ORDER BY created_at DESC",
		},
		{
			name: "multiple fields joined in request order",
			ordering: []core.DBOrdering{
				{Field: "name", Ascending: true},
				{Field: "total_amount_paid"},
			},
			want: " ORDER BY name ASC, total_amount_paid DESC",
		},
		{
			name:     "unknown field never reaches the query text",
			ordering: []core.DBOrdering{{Field: "(SELECT pg_sleep(10))", Ascending: true}},
			want:     " ORDER BY index_number ASC",
		},
		{
			name: "unknown field dropped next to a valid one",
			ordering: []core.DBOrdering{
				{Field: "name; DROP TABLE student", Ascending: true},
				{Field: "name", Ascending: true},
			},
			want: " ORDER BY name ASC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderClause(tt.ordering, studentOrderColumns, "index_number ASC")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderClause_paymentColumns(t *testing.T) {
	got := orderClause(
		[]core.DBOrdering{{Field: "amount"}, {Field: "pg_sleep(10)"}},
		paymentOrderColumns, "created_at DESC",
	)
	assert.Equal(t, " ORDER BY amount DESC", got)
}
