// Package pathcomp feeds filesystem candidates to a path-entry field. It
// resolves the directory part of the active text and injects that
// directory's listing into the field's extended candidate pool.
package pathcomp

import (
	"os"
	"strings"

	"github.com/kobzarvs/qline/internal/field"
	"github.com/kobzarvs/qline/internal/logger"
)

// maxCandidates caps one directory listing; huge directories would drown
// the match list otherwise.
const maxCandidates = 100

// Split separates input into its directory part (trailing separator kept)
// and the partial entry name being typed.
func Split(input string) (dir, partial string) {
	idx := strings.LastIndexByte(input, '/')
	if idx < 0 {
		return "", input
	}
	return input[:idx+1], input[idx+1:]
}

// Candidates lists the entries of input's directory as full paths, prefix
// filtered by the partial name, directories marked with a trailing
// separator. Unreadable or missing directories yield nothing.
func Candidates(input string) []string {
	dir, partial := Split(input)
	ents, err := os.ReadDir(readDirArg(dir))
	if err != nil {
		return nil
	}
	var out []string
	for _, ent := range ents {
		name := ent.Name()
		if !strings.HasPrefix(name, partial) {
			continue
		}
		if ent.IsDir() {
			name += "/"
		}
		out = append(out, dir+name)
		if len(out) == maxCandidates {
			break
		}
	}
	return out
}

func readDirArg(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// Decorator tracks which directory's listing currently sits in the pool and
// swaps it as the active text moves between directories. It implements
// field.Decorator.
type Decorator struct {
	dir    string
	loaded bool
}

func New() *Decorator {
	return &Decorator{}
}

func (d *Decorator) OnChange(active string, c *field.Completion) {
	dir, _ := Split(active)
	if d.loaded && dir == d.dir {
		return
	}
	if d.loaded {
		if d.dir == "" {
			c.ClearExtendedPool()
		} else {
			c.ShrinkPool(d.dir)
		}
		d.loaded = false
	}
	d.dir = dir
	info, err := os.Stat(readDirArg(dir))
	if err != nil || !info.IsDir() {
		return
	}
	cands := Candidates(dir)
	if len(cands) == 0 {
		return
	}
	logger.Debug("path pool swapped", "dir", dir, "candidates", len(cands))
	c.ExtendPool(cands)
	d.loaded = true
}
