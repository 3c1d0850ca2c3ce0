// Package schedule computes concrete future trigger instants for recurring
// alarms. It is pure: no clock access, no I/O — the current instant is
// always an argument.
package schedule
