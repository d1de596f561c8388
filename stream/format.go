package stream

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// formatState is the padding state of one message. It is reset whenever
// the stream flushes.
type formatState struct {
	width int
	fill  rune
	left  bool
}

func newFormatState() formatState {
	return formatState{fill: ' '}
}

// appendValue appends the default text form of v to dst.
func appendValue(dst []byte, v any) []byte {
	switch x := v.(type) {
	case nil:
		return append(dst, "<nil>"...)
	case string:
		return append(dst, x...)
	case []byte:
		return append(dst, x...)
	case bool:
		return strconv.AppendBool(dst, x)
	case int:
		return strconv.AppendInt(dst, int64(x), 10)
	case int8:
		return strconv.AppendInt(dst, int64(x), 10)
	case int16:
		return strconv.AppendInt(dst, int64(x), 10)
	case int32:
		return strconv.AppendInt(dst, int64(x), 10)
	case int64:
		return strconv.AppendInt(dst, x, 10)
	case uint:
		return strconv.AppendUint(dst, uint64(x), 10)
	case uint8:
		return strconv.AppendUint(dst, uint64(x), 10)
	case uint16:
		return strconv.AppendUint(dst, uint64(x), 10)
	case uint32:
		return strconv.AppendUint(dst, uint64(x), 10)
	case uint64:
		return strconv.AppendUint(dst, x, 10)
	case float32:
		return strconv.AppendFloat(dst, float64(x), 'g', -1, 32)
	case float64:
		return strconv.AppendFloat(dst, x, 'g', -1, 64)
	default:
		// error, fmt.Stringer and everything else go through fmt, which
		// also copes with nil receivers and panicking String methods.
		return fmt.Append(dst, x)
	}
}

// appendPadded appends rendered to dst, padded with fill up to width runes.
func appendPadded(dst, rendered []byte, st formatState) []byte {
	pad := st.width - utf8.RuneCount(rendered)
	if pad <= 0 {
		return append(dst, rendered...)
	}
	if st.left {
		dst = append(dst, rendered...)
	}
	for i := 0; i < pad; i++ {
		dst = utf8.AppendRune(dst, st.fill)
	}
	if !st.left {
		dst = append(dst, rendered...)
	}
	return dst
}
