package core

// DBOrdering is one requested sort field; repositories map Field through
// their own column allowlists before it reaches any query text.
type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
