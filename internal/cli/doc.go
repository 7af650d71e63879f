// Package cli implements the command-line interface for vern-raspored.
//
// The root command logs in to the VERN student portal, walks the weekly
// schedule for the requested number of weeks, and writes the classes to
// <username>.ics. Missing credentials are prompted for on the terminal; the
// password prompt does not echo. Everything besides the four flags comes from
// the config package.
package cli
