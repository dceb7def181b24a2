package genesis

import "time"

// TimestampISO renders the block time as a UTC instant with millisecond
// precision, e.g. 2021-05-03T00:00:00.000Z. Block times are whole seconds,
// so the milliseconds are always zero; the fixed width keeps output
// machine-friendly.
func (r Result) TimestampISO() string {
	return time.Unix(r.BlockTime, 0).UTC().Format("2006-01-02T15:04:05.000Z")
}

// TimestampHuman renders the block time for people, locale-independent,
// always UTC.
func (r Result) TimestampHuman() string {
	return time.Unix(r.BlockTime, 0).UTC().Format("Mon, 02 Jan 2006 15:04:05 MST")
}
