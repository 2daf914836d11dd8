package vtcurses

import "strconv"

// KeyCode is a logical key press. Values 0-255 are the bytes read from the
// terminal, values from 256 and up are composite keys resolved from escape
// sequences. The numbering follows curses where curses has a name for the key.
type KeyCode int

// Err is returned by Getch when no key is available.
const Err KeyCode = -1

// Plain bytes with a name
const (
	KeyCtrlA    KeyCode = 1
	KeyCtrlC    KeyCode = 3
	KeyCtrlE    KeyCode = 5
	KeyCtrlH    KeyCode = 8
	KeyTab      KeyCode = 9
	KeyEnter    KeyCode = 10
	KeyCtrlK    KeyCode = 11
	KeyReturn   KeyCode = 13
	KeyCtrlW    KeyCode = 23
	KeyCtrlX    KeyCode = 24
	KeyEscape   KeyCode = 27
	KeySpace    KeyCode = 32
	KeyDEL      KeyCode = 127
	KeyLastByte KeyCode = 255
)

// Composite keys
const (
	KeyInterrupt     KeyCode = 257
	KeyDown          KeyCode = 258
	KeyUp            KeyCode = 259
	KeyLeft          KeyCode = 260
	KeyRight         KeyCode = 261
	KeyHome          KeyCode = 262
	KeyBackspace     KeyCode = 263
	KeyF1            KeyCode = 265
	KeyF2            KeyCode = 266
	KeyF3            KeyCode = 267
	KeyF4            KeyCode = 268
	KeyF5            KeyCode = 269
	KeyF6            KeyCode = 270
	KeyF7            KeyCode = 271
	KeyF8            KeyCode = 272
	KeyF9            KeyCode = 273
	KeyF10           KeyCode = 274
	KeyF11           KeyCode = 275
	KeyF12           KeyCode = 276
	KeyDelete        KeyCode = 330
	KeyInsert        KeyCode = 331
	KeyShiftDown     KeyCode = 336
	KeyShiftUp       KeyCode = 337
	KeyPageDown      KeyCode = 338
	KeyPageUp        KeyCode = 339
	KeyShiftTab      KeyCode = 353
	KeyEnd           KeyCode = 360
	KeyShiftDelete   KeyCode = 383
	KeyShiftLeft     KeyCode = 393
	KeyShiftRight    KeyCode = 402
	KeyResize        KeyCode = 410
	KeyCtrlBackspace KeyCode = 504
	KeyCtrlDelete    KeyCode = 519
	KeyAltDelete     KeyCode = 522
	KeyAltDown       KeyCode = 523
	KeyCtrlDown      KeyCode = 525
	KeyCtrlEnd       KeyCode = 536
	KeyCtrlHome      KeyCode = 541
	KeyAltLeft       KeyCode = 548
	KeyCtrlLeft      KeyCode = 550
	KeyAltRight      KeyCode = 563
	KeyAltUp         KeyCode = 564
	KeyCtrlRight     KeyCode = 565
	KeyCtrlUp        KeyCode = 566
)

// Modifiers, as decoded from console key events
const (
	ModNone  = 0
	ModCtrl  = 1 << 0
	ModAlt   = 1 << 1
	ModShift = 1 << 2
)

var keyNames = map[KeyCode]string{
	Err:              "ERR",
	KeyTab:           "⇥",
	KeyEnter:         "⏎",
	KeyReturn:        "⏎",
	KeyEscape:        "ESC",
	KeySpace:         "␣",
	KeyDEL:           "⌫",
	KeyInterrupt:     "INT",
	KeyDown:          "↓",
	KeyUp:            "↑",
	KeyLeft:          "←",
	KeyRight:         "→",
	KeyHome:          "⇱",
	KeyEnd:           "⇲",
	KeyBackspace:     "⌫",
	KeyDelete:        "⌦",
	KeyInsert:        "⎀",
	KeyPageUp:        "⇞",
	KeyPageDown:      "⇟",
	KeyShiftTab:      "S-⇥",
	KeyShiftUp:       "S-↑",
	KeyShiftDown:     "S-↓",
	KeyShiftLeft:     "S-←",
	KeyShiftRight:    "S-→",
	KeyShiftDelete:   "S-⌦",
	KeyResize:        "RESIZE",
	KeyCtrlBackspace: "C-⌫",
	KeyCtrlDelete:    "C-⌦",
	KeyAltDelete:     "M-⌦",
	KeyCtrlUp:        "C-↑",
	KeyCtrlDown:      "C-↓",
	KeyCtrlLeft:      "C-←",
	KeyCtrlRight:     "C-→",
	KeyCtrlHome:      "C-⇱",
	KeyCtrlEnd:       "C-⇲",
	KeyAltUp:         "M-↑",
	KeyAltDown:       "M-↓",
	KeyAltLeft:       "M-←",
	KeyAltRight:      "M-→",
}

// String returns a short human readable name for the key
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= KeyF1 && k <= KeyF12:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	case k > 0 && k < 32:
		return "C-" + string(rune('a'+k-1))
	case k > 32 && k < 127:
		return string(rune(k))
	}
	return "c:" + strconv.Itoa(int(k))
}

// IsComposite reports whether the key was synthesized from an escape
// sequence or a signal, rather than being a single input byte.
func (k KeyCode) IsComposite() bool {
	return k > KeyLastByte
}
