package main

import (
	"fmt"
	"os"

	"github.com/mgutz/ansi"
	"github.com/xyproto/vtcurses"
)

var colors = []vtcurses.Color{
	vtcurses.ColorRed,
	vtcurses.ColorGreen,
	vtcurses.ColorYellow,
	vtcurses.ColorBlue,
	vtcurses.ColorMagenta,
	vtcurses.ColorCyan,
}

const (
	boxHeight = 4
	boxWidth  = 22
)

func main() {
	err := vtcurses.Wrapper(func(s *vtcurses.Session, stdscr *vtcurses.Window) error {
		stdscr.CursSet(0)
		if err := stdscr.Clear(); err != nil {
			return err
		}
		height, width := stdscr.Getmaxyx()
		for i, c := range colors {
			pair := i + 1
			if err := s.InitPair(pair, c, vtcurses.ColorDefault); err != nil {
				return err
			}
			y, x := 1+i*2, 2+i*6
			if y+boxHeight >= height || x+boxWidth > width {
				break
			}
			win, err := s.NewWindow(boxHeight, boxWidth, y, x)
			if err != nil {
				return err
			}
			attr, err := s.ColorPair(pair)
			if err != nil {
				return err
			}
			win.Attrset(attr)
			win.Clear()
			if err := win.Box(); err != nil {
				return err
			}
			win.Addstr(1, 2, fmt.Sprintf("pair %d: %s", pair, c), vtcurses.AttrBold)
			win.Hline(2, 1, 0, boxWidth-2)
			win.Refresh()
		}
		stdscr.Addstr(height-1, 0, "Press any key to exit", vtcurses.AttrStandout)
		stdscr.Getch()
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, ansi.Color(err.Error(), "red"))
		os.Exit(1)
	}
}
