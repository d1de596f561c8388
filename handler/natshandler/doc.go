// Package natshandler publishes log entries to a NATS subject, one
// message per entry, formatted as JSON by default.
//
// Use Dial to let the handler own its connection, or New to publish
// through an existing *nats.Conn (or any Publisher). With LevelSubjects
// set, entries go to "<subject>.<level>" so subscribers can filter by
// severity with wildcards such as "logs.*".
package natshandler
