package query

// CollectionQuery searches collections. It accepts only the shared filters
// and has no query-level constraints.
type CollectionQuery struct {
	base[*CollectionQuery]
}

// NewCollectionQuery returns an empty collection query.
func NewCollectionQuery() *CollectionQuery {
	q := &CollectionQuery{}
	q.base = newBase(q, KindCollections, nil)
	return q
}

// Apply sets parameters by name.
func (q *CollectionQuery) Apply(params map[string]any) *CollectionQuery {
	return q.apply(params, nil)
}
