// Package court holds the crawler's domain model: raw listing slots, merged
// free intervals, and the booking request.
//
// Reconciliation turns the half-hour rows published by the ZHS listing into
// contiguous per-court free intervals and decides whether any of them fully
// contains the requested time window. Conflicting availability for the same
// court and time always resolves to not-free, so the crawler never books into
// an ambiguous slot.
package court
