// Package alarms implements persistence for the alarm list.
//
// The list is serialized as a JSON document of storage records keyed under a
// single fixed key, with two interchangeable backends: a plain file and a
// SQLite key/value table. Both expose the Repository interface the registry
// depends on and report a missing list as ErrNotFound.
package alarms
