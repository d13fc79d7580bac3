// Package scraper provides HTTP fetching and HTML table extraction for race calendar pages.
//
// The scraper package fetches a calendar page, checks that it is the expected page
// (a "Calendar" page title, a year selector and a table.basic with the columns
// Date, Date, Race, Winner, Class) and converts each table row into race records.
// Any deviation from that structure fails the whole extraction; no partial results
// are returned.
package scraper
