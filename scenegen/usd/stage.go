package usd

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spaghettifunk/usdfixtures/scenegen/core"
)

// layerMagic starts every text layer; files that do not begin with it are
// not overwritten.
const layerMagic = "#usda"

// Stage is an in-memory scene bound to the file it will be saved to.
type Stage struct {
	path   string
	prims  map[string]*Prim
	roots  []*Prim
	order  []*Prim
	sealed bool
}

// CreateNew binds an empty stage to path. The destination is checked up front:
// its directory must exist and be writable, and an existing file there must
// be an empty file or a text layer.
func CreateNew(path string) (*Stage, error) {
	path = filepath.Clean(path)
	if err := checkDestination(path); err != nil {
		return nil, err
	}
	if err := checkWritable(filepath.Dir(path)); err != nil {
		return nil, &DestinationError{Path: path, Reason: "directory is not writable", Err: err}
	}
	core.LogDebug("created stage for %s", path)
	return &Stage{
		path:  path,
		prims: make(map[string]*Prim),
	}, nil
}

// Path is the destination the stage saves to.
func (s *Stage) Path() string {
	return s.path
}

// DefinePrim creates a prim of kind at path. The parent must already be
// defined unless path is a root prim.
func (s *Stage) DefinePrim(path string, kind PrimKind) (*Prim, error) {
	if s.sealed {
		return nil, ErrStageSealed
	}
	parentPath, name, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if _, exists := s.prims[path]; exists {
		return nil, &PathError{Path: path, Reason: "already defined"}
	}

	p := newPrim(s, path, name, kind)
	if parentPath == pathDelimiter {
		s.roots = append(s.roots, p)
	} else {
		parent, ok := s.prims[parentPath]
		if !ok {
			return nil, &PathError{Path: path, Reason: "parent " + parentPath + " is not defined"}
		}
		parent.children = append(parent.children, p)
	}
	s.prims[path] = p
	s.order = append(s.order, p)
	return p, nil
}

// PrimAtPath returns the prim defined at path, or nil.
func (s *Stage) PrimAtPath(path string) *Prim {
	return s.prims[path]
}

// Prims returns every prim in definition order.
func (s *Stage) Prims() []*Prim {
	return append([]*Prim(nil), s.order...)
}

// Export writes the stage as a text layer. It produces the exact bytes Save
// puts on disk.
func (s *Stage) Export(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeLayer(bw, s.roots); err != nil {
		return err
	}
	return bw.Flush()
}

// Save writes the layer to a temporary sibling file and renames it over the
// destination. On failure the destination is left untouched. A stage can be
// saved once; afterwards it is sealed.
func (s *Stage) Save() error {
	if s.sealed {
		return ErrStageSealed
	}
	if err := checkDestination(s.path); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		return err
	}

	dir, base := filepath.Split(s.path)
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		_ = os.Remove(tmp)
		return &DestinationError{Path: s.path, Reason: "cannot write layer", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &DestinationError{Path: s.path, Reason: "cannot replace destination", Err: err}
	}

	s.sealed = true
	core.LogDebug("saved %s (%d prims, %d bytes)", s.path, len(s.order), buf.Len())
	return nil
}

func checkDestination(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &DestinationError{Path: path, Reason: "cannot stat destination", Err: err}
	}
	if info.IsDir() {
		return &DestinationError{Path: path, Reason: "is a directory"}
	}
	if !info.Mode().IsRegular() {
		return &DestinationError{Path: path, Reason: "is not a regular file"}
	}
	if info.Size() == 0 {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return &DestinationError{Path: path, Reason: "cannot read existing file", Err: err}
	}
	defer f.Close()

	head := make([]byte, len(layerMagic))
	if _, err := io.ReadFull(f, head); err != nil || string(head) != layerMagic {
		return &DestinationError{Path: path, Reason: "holds a file that is not a text layer"}
	}
	return nil
}

// checkWritable creates and removes a uniquely named file in dir.
func checkWritable(dir string) error {
	name := filepath.Join(dir, "."+uuid.NewString()+".check")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(name)
}
