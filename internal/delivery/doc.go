// Package delivery defines the contract between the alarm registry and the
// notification delivery collaborator: schedule requests, cancellation by
// opaque handle, and the payload carried to the user.
package delivery
