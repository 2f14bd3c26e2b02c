// Package period maps billing cadences and clock readings to canonical
// quota periods.
//
// A quota counter lives in a bucket identified by a Period (month or
// year) and a Key derived from the current UTC time ("2025-03" or
// "2025"). The mapping is deliberately lossy: only yearly billing
// produces yearly buckets, everything else resets monthly, so a
// quarterly plan still gets monthly quota resets.
//
// All functions are pure; the same inputs always produce the same
// outputs.
package period
