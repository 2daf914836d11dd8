//go:build windows

package vtcurses

import (
	"os/exec"
	"strconv"
	"strings"
)

// queryConsoleSize asks PowerShell, and then "mode con", for the size of
// the console. It is used when the console screen buffer can not be read,
// for instance when the output is redirected.
func queryConsoleSize() (int, int, bool) {
	cmd := exec.Command("powershell", "-NoProfile", "-Command", "(Get-Host).UI.RawUI.WindowSize.Height; (Get-Host).UI.RawUI.WindowSize.Width")
	if output, err := cmd.Output(); err == nil {
		lines := strings.Fields(string(output))
		if len(lines) == 2 {
			height, err1 := strconv.Atoi(lines[0])
			width, err2 := strconv.Atoi(lines[1])
			if err1 == nil && err2 == nil && width > 0 && height > 0 {
				return height, width, true
			}
		}
	}
	if output, err := exec.Command("cmd", "/c", "mode", "con").Output(); err == nil {
		return parseModeCon(string(output))
	}
	return 0, 0, false
}
