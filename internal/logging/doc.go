// Package logging implements jcagen.Logger.
//
// ConsoleLogger prefixes verbose, warning and error lines and writes them to
// stderr or a given writer under a mutex. NullLogger drops every message.
package logging
