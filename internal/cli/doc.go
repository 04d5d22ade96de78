// Package cli is the input boundary of the crawler: it parses and validates
// the command-line flags into a booking request and wires the scraper,
// booker, notifiers, and storage into the polling watcher.
package cli
