package autocomplete

// fireMsg is delivered when a scheduled search's delay has elapsed.
// It is ignored unless ticket is still the pending one.
type fireMsg struct {
	id     int64
	ticket uint64
}

// resultsMsg carries a finished search back onto the update loop
type resultsMsg[T any] struct {
	id      int64
	seq     uint64
	term    string
	results []T
	err     error
}
