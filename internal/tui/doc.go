// Package tui provides the terminal form for archguide.
//
// The form mirrors a two-column web form: a city input, a building input and
// a submit action. Submitting runs one lookup as a bubbletea command while a
// spinner is shown; the answer appears in a scrollable area below the form.
//
// Usage:
//
//	program, _ := tui.NewFormProgram(handler)
//	go func() {
//	    // after a config reload
//	    program.Send(tui.HandlerReloadedMsg{Fetcher: newHandler})
//	}()
//	_, err := program.Run()
//
// Keys: Tab/Shift+Tab switch fields, Enter submits, ↑/↓ and PgUp/PgDn
// scroll the answer, Esc clears the form, Ctrl+C quits.
package tui
