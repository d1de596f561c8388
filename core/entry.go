package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry is one log record on its way from a logger to handlers. Entries
// handed to a Handler are only valid for the duration of the call unless
// the handler copies them.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []Field
	Caller  CallerInfo
}

// CallerInfo locates the call site that produced an entry. Defined is
// false when no caller was captured.
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

const pooledFieldCap = 8

var entryPool = sync.Pool{
	New: func() any {
		return &Entry{Fields: make([]Field, 0, pooledFieldCap)}
	},
}

// GetEntry takes an empty entry from the pool and stamps it with the
// current time.
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	return e
}

// PutEntry clears e and returns it to the pool. Nil is ignored.
func PutEntry(e *Entry) {
	if e != nil {
		e.Reset()
		entryPool.Put(e)
	}
}

// Reset clears the entry while keeping the Fields backing array.
func (e *Entry) Reset() {
	*e = Entry{Fields: e.Fields[:0]}
}

// Fill populates the entry from its parts. Logger fields come before
// call-site fields.
func (e *Entry) Fill(t time.Time, level Level, msg string, loggerFields, callFields []Field, caller CallerInfo) {
	e.Time, e.Level, e.Message, e.Caller = t, level, msg, caller
	e.Fields = append(append(e.Fields[:0], loggerFields...), callFields...)
}

// Clone returns a pooled deep copy of e that the caller owns.
func (e *Entry) Clone() *Entry {
	c := entryPool.Get().(*Entry)
	c.Fill(e.Time, e.Level, e.Message, e.Fields, nil, e.Caller)
	return c
}

// GetCaller describes the frame skip levels up the stack, counting
// GetCaller itself as 0.
func GetCaller(skip int) CallerInfo {
	var pcs [1]uintptr
	if runtime.Callers(skip+1, pcs[:]) == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}
