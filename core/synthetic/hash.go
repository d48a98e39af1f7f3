// Package synthetic derives stable mock metrics from entity identifiers.
//
// No analytics backend exists yet; activity gaps, study time and the like are
// computed from a rolling hash of the entity's identifying fields so the same
// key always yields the same value. Swap MetricsProvider for a real data
// source when one lands.
package synthetic

import "time"

// NowFunc anchors date derivation; mockable in tests.
var NowFunc = time.Now

// Hash computes a rolling polynomial hash of s: h = h*31 + code(c) mod 2^32.
// The recurrence is a frozen contract; derived values must stay stable
// across processes and releases.
func Hash(s string) uint32 {
	var h uint32
	for _, r := range s {
		h = h*31 + uint32(r)
	}
	return h
}

// StableRandom maps seed to a float in [0, 1).
func StableRandom(seed string) float64 {
	return float64(Hash(seed)%1000) / 1000
}

// DateFromHash returns a timestamp up to daysBack days before now, with the
// day offset and time of day both derived from the seed.
func DateFromHash(seed string, daysBack int) time.Time {
	if daysBack <= 0 {
		daysBack = 1
	}
	h := Hash(seed)
	day := NowFunc().AddDate(0, 0, -int(h%uint32(daysBack)))
	minutes := int(h % 1440)
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}
