// Package calendar turns scraped classes into an iCalendar feed.
//
// One VEVENT is emitted per class. Event UIDs are the class IDs, so importing
// a regenerated file updates events in place instead of duplicating them.
package calendar
