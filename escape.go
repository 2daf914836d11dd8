package vtcurses

import (
	"strconv"
	"strings"
)

// sequenceSeparator joins the byte values of an accumulated escape sequence
// into a lookup key, ie. ESC [ A becomes "27-91-65".
const sequenceSeparator = "-"

// escapeSequences maps accumulated escape sequences to composite keys.
// The accumulation skips bytes that were already seen, so ESC [ 3 ; 3 ~
// (Alt-Delete) is looked up as ESC [ 3 ; ~.
var escapeSequences = map[string]KeyCode{
	// Arrows
	"27-91-65": KeyUp,
	"27-91-66": KeyDown,
	"27-91-67": KeyRight,
	"27-91-68": KeyLeft,
	"27-79-65": KeyUp,
	"27-79-66": KeyDown,
	"27-79-67": KeyRight,
	"27-79-68": KeyLeft,

	// Navigation
	"27-91-72":     KeyHome,
	"27-91-70":     KeyEnd,
	"27-79-72":     KeyHome,
	"27-79-70":     KeyEnd,
	"27-91-49-126": KeyHome,
	"27-91-52-126": KeyEnd,
	"27-91-50-126": KeyInsert,
	"27-91-51-126": KeyDelete,
	"27-91-53-126": KeyPageUp,
	"27-91-54-126": KeyPageDown,
	"27-91-90":     KeyShiftTab,
	"27-127":       KeyCtrlBackspace,

	// Function keys
	"27-79-80":        KeyF1,
	"27-79-81":        KeyF2,
	"27-79-82":        KeyF3,
	"27-79-83":        KeyF4,
	"27-91-49-50-126": KeyF2, // rxvt, ESC [ 1 1 ~ for F1 reads as Home
	"27-91-49-51-126": KeyF3,
	"27-91-49-52-126": KeyF4,
	"27-91-49-53-126": KeyF5,
	"27-91-49-55-126": KeyF6,
	"27-91-49-56-126": KeyF7,
	"27-91-49-57-126": KeyF8,
	"27-91-50-48-126": KeyF9,
	"27-91-50-49-126": KeyF10,
	"27-91-50-51-126": KeyF11,
	"27-91-50-52-126": KeyF12,

	// Ctrl combinations
	"27-91-49-59-53-65":  KeyCtrlUp,
	"27-91-49-59-53-66":  KeyCtrlDown,
	"27-91-49-59-53-67":  KeyCtrlRight,
	"27-91-49-59-53-68":  KeyCtrlLeft,
	"27-91-49-59-53-72":  KeyCtrlHome,
	"27-91-49-59-53-70":  KeyCtrlEnd,
	"27-91-51-59-53-126": KeyCtrlDelete,

	// Shift combinations
	"27-91-49-59-50-65":  KeyShiftUp,
	"27-91-49-59-50-66":  KeyShiftDown,
	"27-91-49-59-50-67":  KeyShiftRight,
	"27-91-49-59-50-68":  KeyShiftLeft,
	"27-91-51-59-50-126": KeyShiftDelete,

	// Alt combinations
	"27-91-49-59-51-65": KeyAltUp,
	"27-91-49-59-51-66": KeyAltDown,
	"27-91-49-59-51-67": KeyAltRight,
	"27-91-49-59-51-68": KeyAltLeft,
	"27-91-51-59-126":   KeyAltDelete,
}

// sequenceKey returns the lookup key for the given byte values
func sequenceKey(seq []int) string {
	var sb strings.Builder
	for i, b := range seq {
		if i > 0 {
			sb.WriteString(sequenceSeparator)
		}
		sb.WriteString(strconv.Itoa(b))
	}
	return sb.String()
}

// lookupSequence resolves an accumulated escape sequence to a composite key
func lookupSequence(seq []int) (KeyCode, bool) {
	code, ok := escapeSequences[sequenceKey(seq)]
	return code, ok
}

// accumulate appends b to seq unless seq already holds it, mirroring how
// the reader collects the bytes that follow an ESC.
func accumulate(seq []int, b int) []int {
	for _, seen := range seq {
		if seen == b {
			return seq
		}
	}
	return append(seq, b)
}
