package telemetry

// lookupBudget caps geolocation lookups within a single run. It is open while
// used < limit and closes for good once the limit is reached.
type lookupBudget struct {
	used  int
	limit int
}

func newLookupBudget(limit int) *lookupBudget {
	return &lookupBudget{limit: limit}
}

// take consumes one lookup, reporting false when the budget is closed.
func (b *lookupBudget) take() bool {
	if !b.open() {
		return false
	}
	b.used++
	return true
}

func (b *lookupBudget) open() bool {
	return b.used < b.limit
}
