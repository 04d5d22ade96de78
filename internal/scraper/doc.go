// Package scraper provides HTTP fetching and HTML parsing for the ZHS court
// listing.
//
// The listing is paginated and server-rendered: page 1 is the reservation
// root, pages 2 and up hold one table.areaPeriods per court with half-hour
// availability cells. The scraper fetches one page per call and reports when
// the pagination is exhausted so the orchestrator can stop enumerating.
package scraper
