// Package schedule provides the class record scraped from the Studomatic weekly schedule.
//
// A Class is one occurrence of a lecture or exercise: where and when it happens, who
// teaches it and how many 45-minute units it lasts. Each class gets a deterministic
// UUIDv5 identifier derived from its date, time, location and name, so the same
// schedule scraped twice yields the same calendar UIDs.
package schedule
