package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ivtomov/task-manager/internal/system"
	"github.com/ivtomov/task-manager/internal/ui"
)

// Follow renders the current content of path and then every line appended to
// it until ctx is done. The file may not exist yet. Truncation restarts from
// the beginning.
func Follow(ctx context.Context, w io.Writer, path string, p *ui.Palette, pattern string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch log file: %w", err)
	}
	defer watcher.Close()

	// watch the directory so creation and replacement are seen too
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	t := &tail{path: path, w: w, p: p, pattern: pattern}
	if err := t.poll(); err != nil {
		return err
	}
	want := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != want {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if err := t.poll(); err != nil {
					return err
				}
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				t.reset()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			system.Logger.Warn("watch error", "err", err)
		}
	}
}

// tail remembers how far into the file it has rendered.
type tail struct {
	path    string
	w       io.Writer
	p       *ui.Palette
	pattern string
	offset  int64
	partial []byte
}

func (t *tail) reset() {
	t.offset = 0
	t.partial = nil
}

func (t *tail) poll() error {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read log file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.Size() < t.offset {
		t.reset()
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	t.offset += int64(len(b))

	buf := append(t.partial, b...)
	var lines []string
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, string(bytes.TrimSuffix(buf[:i], []byte("\r"))))
		buf = buf[i+1:]
	}
	t.partial = append([]byte(nil), buf...)
	if len(lines) == 0 {
		return nil
	}
	return Render(t.w, lines, t.p, t.pattern)
}
