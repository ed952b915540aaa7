package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/usdfixtures/scenegen/core"
	"github.com/spaghettifunk/usdfixtures/scenegen/descriptor"
)

// BuildResult reports one descriptor (re)build.
type BuildResult struct {
	Descriptor string
	Output     string
	Err        error
}

// Watcher rebuilds descriptor fixtures whenever a descriptor file under the
// watched directory is created or written.
type Watcher struct {
	descriptorDir string
	outputDir     string

	mutex sync.Mutex
	last  map[string]BuildResult

	fsnotify  *fsnotify.Watcher
	isStarted bool
	isClosed  bool
	results   chan BuildResult
	done      chan struct{}
	stopped   chan struct{}
}

func NewWatcher(descriptorDir, outputDir string) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		descriptorDir: descriptorDir,
		outputDir:     outputDir,
		last:          make(map[string]BuildResult),
		fsnotify:      fsWatch,
		results:       make(chan BuildResult, 64),
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}, nil
}

// Start builds every descriptor already present, then watches for changes in
// the background until Close.
func (w *Watcher) Start() error {
	if w.isClosed {
		return errors.New("watcher already closed")
	}
	if w.isStarted {
		return errors.New("watcher already started")
	}
	if err := w.watchRecursive(w.descriptorDir); err != nil {
		return err
	}
	w.isStarted = true
	go w.start()
	core.LogInfo("watching %s for fixture descriptors", w.descriptorDir)
	return nil
}

// Results delivers build outcomes. Results are dropped when nobody reads them.
func (w *Watcher) Results() <-chan BuildResult {
	return w.results
}

// Last returns the most recent build result for a descriptor path.
func (w *Watcher) Last(path string) (BuildResult, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	r, ok := w.last[path]
	return r, ok
}

// Close stops watching and waits for the background loop to exit.
func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	if !w.isStarted {
		return w.fsnotify.Close()
	}
	close(w.done)
	<-w.stopped
	return nil
}

func (w *Watcher) start() {
	defer close(w.stopped)
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			w.handleEvent(e)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			w.logWatchError(err)

		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

func (w *Watcher) logWatchError(err error) {
	core.LogError("watching %s: %s", w.descriptorDir, err)
}

func (w *Watcher) handleEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := w.watchRecursive(e.Name); err != nil {
				core.LogError("cannot watch %s: %s", e.Name, err)
			}
		}
		return
	}
	if !descriptor.IsDescriptorFile(e.Name) {
		return
	}
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		w.build(e.Name)
	}
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.forget(e.Name)
	}
}

// watchRecursive adds dir and all sub-directories to the watch list and builds
// the descriptors found along the way.
func (w *Watcher) watchRecursive(dir string) error {
	return filepath.Walk(dir, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.fsnotify.Add(walkPath)
		}
		if descriptor.IsDescriptorFile(walkPath) {
			w.build(walkPath)
		}
		return nil
	})
}

func (w *Watcher) build(path string) {
	r := BuildResult{Descriptor: path}
	d, err := descriptor.Load(path)
	if err == nil {
		r.Output, err = descriptor.Build(d, w.outputDir)
	}
	r.Err = err

	if err != nil {
		core.LogError("rebuild of %s failed: %s", path, err)
	} else {
		core.LogInfo("rebuilt %s from %s", r.Output, path)
	}

	w.mutex.Lock()
	w.last[path] = r
	w.mutex.Unlock()

	select {
	case w.results <- r:
	default:
		core.LogWarn("dropping build result for %s", path)
	}
}

func (w *Watcher) forget(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	delete(w.last, path)
}
