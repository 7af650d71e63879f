// Package portal drives the Studomatic student portal: the login postback and
// the week-by-week schedule postbacks.
//
// Each request in the protocol must echo the WebForms state extracted from the
// response before it. The package keeps that state as an explicit value passed
// from step to step: Login and FetchSchedule only thread it between the pure
// helpers WeekForm and ParseWeek, which tests can drive with fixed pages.
package portal
