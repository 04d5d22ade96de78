// Package storage writes run artifacts to disk: the JSON report of the final
// search cycle and the .ics confirmation of a successful booking.
package storage
