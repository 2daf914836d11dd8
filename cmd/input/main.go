package main

import (
	"fmt"
	"os"

	"github.com/mgutz/ansi"
	"github.com/xyproto/vtcurses"
)

func main() {
	var (
		text     string
		accepted bool
	)
	err := vtcurses.Wrapper(func(s *vtcurses.Session, stdscr *vtcurses.Window) error {
		if err := stdscr.Clear(); err != nil {
			return err
		}
		stdscr.Addstr(0, 0, "Type some text. Enter accepts, ESC cancels.", vtcurses.AttrBold)
		_, width := stdscr.Getmaxyx()
		win, err := s.NewWindow(3, min(width, 40), 2, 0)
		if err != nil {
			return err
		}
		tb, err := vtcurses.NewTextbox(win, "")
		if err != nil {
			return err
		}
		text, accepted, err = tb.Edit()
		return err
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, ansi.Color(err.Error(), "red"))
		os.Exit(1)
	}
	if !accepted {
		fmt.Println(ansi.Color("cancelled", "yellow"))
		return
	}
	fmt.Printf("You wrote: %s\n", ansi.Color(text, "green+b"))
}
