package views

import "time"

// Status is the snapshot shown on the admin dashboard: where the manifest
// comes from and what the last read of it looked like.
type Status struct {
	Source    string       // manifest URL or local database path
	LastFetch time.Time    // zero until the first successful read
	LastError string       // most recent fetch error, empty when healthy
	Pages     []PageStatus // one entry per page-key, sorted
}

// PageStatus summarizes one manifest slice.
type PageStatus struct {
	Key   string // page-key; "" is the site root
	Cards int
}
