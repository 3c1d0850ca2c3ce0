// Package timer implements the delivery.Scheduler contract with in-process
// timers. It backs the CLI host, where the operating system's notification
// service is replaced by a handler the host installs once at startup.
package timer
