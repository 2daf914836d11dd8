package main

import (
	"fmt"
	"os"

	"github.com/mgutz/ansi"
	"github.com/xyproto/vtcurses"
)

func main() {
	err := vtcurses.Wrapper(func(s *vtcurses.Session, stdscr *vtcurses.Window) error {
		if err := stdscr.Clear(); err != nil {
			return err
		}
		stdscr.Addstr(0, 0, "Press keys. Press ESC twice to exit.", vtcurses.AttrBold)
		escCount := 0
		row := 2
		for escCount < 2 {
			key, err := stdscr.GetKey()
			if err != nil {
				return err
			}
			switch key {
			case vtcurses.KeyEscape:
				escCount++
			case vtcurses.KeyInterrupt:
				return nil
			default:
				escCount = 0
			}
			height, _ := stdscr.Getmaxyx()
			if row >= height {
				stdscr.Clear()
				row = 0
			}
			stdscr.Addstr(row, 0, fmt.Sprintf("%-8s %d", key, int(key)), vtcurses.AttrNormal)
			row++
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, ansi.Color(err.Error(), "red"))
		os.Exit(1)
	}
}
