package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/dgnsrekt/studypace/document"
)

type documentReloadedMsg struct {
	doc *document.Document
	err error
}

type watchErrMsg struct {
	err error
}

// watchFileCmd blocks until path changes on disk, then reloads it. The
// watcher is one-shot; the Update loop re-arms it after every reload.
func watchFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return watchErrMsg{err}
		}
		defer w.Close() //nolint:errcheck

		if err := w.Add(path); err != nil {
			return watchErrMsg{err}
		}

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return watchErrMsg{fsnotify.ErrClosed}
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					doc, err := document.Load(path)
					return documentReloadedMsg{doc: doc, err: err}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return watchErrMsg{fsnotify.ErrClosed}
				}
				return watchErrMsg{err}
			}
		}
	}
}
