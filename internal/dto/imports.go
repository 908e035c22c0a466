package dto

// ImportRowError records why one row of an import failed.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportScheduleResponse summarizes a bulk import. Partial success is
// expected: Created+Failed equals the number of rows submitted, not
// the number scanned.
type ImportScheduleResponse struct {
	Scanned int              `json:"scanned"`
	Matched int              `json:"matched"`
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}
