package vtcurses

import (
	"fmt"
	"io"
	"strings"

	"github.com/xyproto/env/v2"
)

const (
	cursorHome         = "\033[H"
	cursorHomeTemplate = "\033[%d;%dH"
	showCursor         = "\033[?25h"
	hideCursor         = "\033[?25l"
	enterAltScreen     = "\033[?1049h"
	leaveAltScreen     = "\033[?1049l"
	pushTitle          = "\033[22t"
	popTitle           = "\033[23t"
	titleTemplate      = "\033]0;%s\007"
	attributeTemplate  = "\033[%sm"
)

// NoColor is the escape sequence for resetting all terminal attributes
const NoColor string = "\033[0m"

// UnderTMUX reports whether the process is running inside a TMUX session
func UnderTMUX() bool {
	return env.Has("TMUX")
}

// UnderScreen reports whether the process is running inside a GNU Screen session
func UnderScreen() bool {
	return env.Has("STY")
}

// UnderZellij reports whether the process is running inside a Zellij session
func UnderZellij() bool {
	return env.Has("ZELLIJ")
}

// Multiplexed is true when running inside any known terminal multiplexer
func Multiplexed() bool {
	return UnderTMUX() || UnderScreen() || UnderZellij()
}

// moveTo returns the sequence that places the cursor at row y, column x (0,0 is top-left)
func moveTo(y, x int) string {
	return fmt.Sprintf(cursorHomeTemplate, y+1, x+1)
}

// setTitle returns the sequence that sets the window title.
// Control characters would end the OSC string early, so they are dropped.
func setTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, title)
	return fmt.Sprintf(titleTemplate, title)
}

// enterSequence is written when a session starts
func enterSequence(altScreen bool, title string) string {
	var sb strings.Builder
	if altScreen {
		sb.WriteString(enterAltScreen)
	}
	sb.WriteString(cursorHome)
	if title != "" {
		sb.WriteString(pushTitle)
		sb.WriteString(setTitle(title))
	}
	return sb.String()
}

// leaveSequence is written when a session ends
func leaveSequence(altScreen bool, title string) string {
	var sb strings.Builder
	sb.WriteString(NoColor)
	if altScreen {
		sb.WriteString(leaveAltScreen)
	}
	if title != "" {
		sb.WriteString(popTitle)
	}
	sb.WriteString(showCursor)
	return sb.String()
}

// writeAll writes the complete byte slice, retrying on partial writes
func writeAll(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		if n <= 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}
