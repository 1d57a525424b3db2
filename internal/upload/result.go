package upload

// Result is the per-file outcome report every upload processor
// returns. Errors preserve spreadsheet row order; each entry reads
// "Row N: cause" where N is the 1-based row number including the
// header. Duplicates is only populated by the schedule processor.
type Result struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
	Duplicates   []string `json:"duplicates,omitempty"`
}

func (r *Result) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.ErrorCount++
}

// fatal replaces any partial progress with a single aggregate error.
func fatal(msg string) Result {
	return Result{ErrorCount: 1, Errors: []string{msg}}
}
