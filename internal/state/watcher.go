package state

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/forgetful/internal/pathutil"
)

// NotesFileChangedMsg is sent when another program rewrote the notes file.
type NotesFileChangedMsg struct {
	Path string
}

type NotesWatcherErrMsg struct {
	Err error
}

// NotesWatcher reports changes to a single notes file. Writes recognised by
// ownWrite are ignored.
type NotesWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	ownWrite func([]byte) bool
	done     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	onChange func(string)
	onClose  func()
}

func NewNotesWatcher(path string, ownWrite func([]byte) bool) (*NotesWatcher, error) {
	normalized := pathutil.NormalizePath(path)
	if normalized == "" {
		return nil, errors.New("notes path cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &NotesWatcher{
		watcher:  w,
		path:     normalized,
		ownWrite: ownWrite,
		done:     make(chan struct{}),
	}

	// The directory is watched because atomic saves replace the file.
	if err := w.Add(filepath.Dir(normalized)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until the next relevant change.
// Re-issue it after every message to keep listening.
func (w *NotesWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}
				if w.isOwnWrite() {
					continue
				}

				if fn := w.changeHook(); fn != nil {
					fn(w.path)
				}
				return NotesFileChangedMsg{Path: w.path}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return NotesWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *NotesWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return pathutil.SamePath(event.Name, w.path)
}

func (w *NotesWatcher) isOwnWrite() bool {
	if w.ownWrite == nil {
		return false
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		return false
	}
	return w.ownWrite(data)
}

func (w *NotesWatcher) changeHook() func(string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onChange
}

func (w *NotesWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		w.mu.Lock()
		onClose := w.onClose
		w.mu.Unlock()
		if onClose != nil {
			onClose()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives the notes path whenever an
// external change is detected.
func (w *NotesWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *NotesWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onClose = fn
	w.mu.Unlock()
}
