// Package core defines the shared types used across nlogstream.
//
// Level orders severities from DebugLevel to PanicLevel. NotSetLevel sits
// below all of them and marks a disabled destination: nothing is logged
// at NotSetLevel, and a stream bound to it drops every fragment.
//
// Entry represents a single log event. Entries are pooled via sync.Pool;
// get one with GetEntry and hand it back with PutEntry once the handler
// has consumed it.
//
// Field encodes values into fixed-size numeric slots (Int64, Float64)
// wherever possible so that int, bool and time.Time values never escape
// to the heap. The Any slot is a fallback and allocates.
package core
