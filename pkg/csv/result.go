package csv

// CellResult is the outcome of looking up one cell during a column scan.
// Err is nil when Value holds the cell; otherwise Value is empty and Err
// says why. An empty Value with a nil Err is a real empty cell.
type CellResult struct {
	Value string
	Err   error
}

// OK reports whether the lookup found a cell.
func (r CellResult) OK() bool {
	return r.Err == nil
}

// Get returns the cell and whether it was found.
func (r CellResult) Get() (string, bool) {
	return r.Value, r.Err == nil
}

func found(v string) CellResult {
	return CellResult{Value: v}
}

func missing(err error) CellResult {
	return CellResult{Err: err}
}
