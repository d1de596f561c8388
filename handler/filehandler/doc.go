// Package filehandler writes formatted log entries to a file.
//
// Rotation is delegated to lumberjack: the file is rotated when it
// reaches MaxSizeMB, old files are pruned by MaxBackups and MaxAgeDays and
// optionally gzipped. RotateInterval adds periodic rotation on top.
//
// With ProcessLock set, each record is written and flushed under an
// flock so that several processes can append to one file without
// interleaving partial lines.
//
// NewFileHandler returns a SyncFileHandler or, when Async is set, an
// AsyncFileHandler backed by a handler.AsyncQueue.
package filehandler
