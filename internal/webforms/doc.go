// Package webforms emulates the client side of ASP.NET WebForms postbacks.
//
// Every WebForms page embeds hidden inputs (__VIEWSTATE, __EVENTVALIDATION,
// __VIEWSTATEGENERATOR) that the server expects to receive back on the next
// request. The package extracts those fields into an immutable State value,
// builds postback forms from a State, and parses response bodies that are
// served in legacy single-byte charsets such as windows-1250.
package webforms
