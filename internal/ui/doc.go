// Package ui is the IDE-style portfolio screen built on Bubble Tea.
//
// Core abstractions:
//   - View: a panel or modal with its own model, update, view (Elm-style)
//   - Panel: a bounded region within a layout that hosts a View
//   - Layout: arranges panels (IDELayout: explorer, editor, terminal, copilot)
//   - FocusManager: tracks and rotates focus across visible panels
//   - Overlay: modal views (theme picker, command palette) with a dismiss key
//   - KeybindRegistry/KeyHandler: global shortcuts and the SPC leader menu
//
// Long-running work (assistant replies, resume download) runs in tea.Cmds;
// the GitHub poller pushes FeedUpdatedMsg through Program.Send.
package ui
