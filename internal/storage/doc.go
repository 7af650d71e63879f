// Package storage writes generated calendars to disk.
//
// Each user's calendar is stored as <owner>.ics in the output directory and is
// replaced on every run. Stdout is a drop-in sink for dry runs.
package storage
