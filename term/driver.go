// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/driver.go
// Summary: Driver interface the screen renders through.

package term

import "github.com/gdamore/tcell/v2"

// ScreenDriver is the slice of terminal capability the Screen needs. It is
// satisfied by the tcell adapter in production and by stubs in tests.
type ScreenDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	HideCursor()
	Show()
	Sync()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}
