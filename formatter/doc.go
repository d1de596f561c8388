// Package formatter defines how log entries are serialized into bytes.
//
// Formatter returns a []byte; WriterFormatter writes straight to an
// io.Writer; BufferFormatter appends into a caller-owned bytes.Buffer.
// Handlers look for the richer interfaces once, at construction time.
//
// TextFormatter renders one human-readable line per entry. JSONFormatter
// renders one JSON object per line; its fixed keys can be renamed through
// Config.Keys. Both use a pooled bytes.Buffer and Append-style functions
// (time.AppendFormat, strconv.AppendInt) to stay allocation-free on the
// common path. Buffers larger than 64 KiB are not returned to the pool.
package formatter
