package browse

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"loupe/internal/category"
	"loupe/internal/doc"
	"loupe/internal/logging"
	"loupe/internal/logging/events"
	"loupe/internal/pix"
)

// filesystem lists a plain directory. Dotfiles are hidden; entries whose
// metadata cannot be read are skipped individually so one bad entry never
// blanks the folder.
type filesystem struct {
	parentSlot
	sortState
	dir  string
	rows []Row
}

func newFilesystem(dir string) *filesystem {
	return &filesystem{dir: dir, rows: readDirectory(dir)}
}

// CurrentDir returns a filesystem backend over the working directory.
func CurrentDir() Backend {
	cwd, err := os.Getwd()
	if err != nil {
		logging.Error(err)
		cwd = string(filepath.Separator)
	}
	return newFilesystem(cwd)
}

func readDirectory(dir string) []Row {
	entries, err := os.ReadDir(dir)
	if err != nil {
		events.Listing.Failed(dir, err)
		return nil
	}
	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			events.Listing.Skip(dir, name, err)
			continue
		}
		cat := category.Determine(name, entry.IsDir())
		rows = append(rows, NewRow(cat, name, uint64(info.Size()), info.ModTime()))
	}
	return rows
}

func (f *filesystem) Kind() Kind      { return KindFilesystem }
func (f *filesystem) Path() string    { return f.dir }
func (f *filesystem) List() []Row     { return f.rows }
func (f *filesystem) Ref() BackendRef { return BackendRef{Kind: KindFilesystem, Path: f.dir} }

func (f *filesystem) ItemRef(c Cursor) ItemRef { return NameRef(c.Row.Name) }

func (f *filesystem) Enter(c Cursor) (Backend, bool) {
	full := filepath.Join(f.dir, c.Row.Name)
	if c.Row.Category == category.Video {
		launchVideo(full)
		return nil, false
	}
	if !c.Row.Category.IsContainer() {
		return nil, false
	}
	return New(full), true
}

func (f *filesystem) Leave() (Backend, Target, bool) {
	if parent, target, ok := f.take(); ok {
		return parent, target, true
	}
	return leaveToDir(f.dir)
}

func (f *filesystem) Image(c Cursor, p ImageParams) Content {
	ref := MakeReference(f, c)
	full := filepath.Join(f.dir, c.Row.Name)
	if c.Row.Category == category.Image {
		return loadImageContent(ref, c.Row.Name, func() ([]byte, error) {
			return os.ReadFile(full)
		})
	}
	return Content{Ref: ref, Surface: placeholderCard(c.Row)}
}

func (f *filesystem) Render(ItemRef, doc.PageMode, pix.Zoom, pix.Rect) (*pix.Surface, bool) {
	return nil, false
}

// Reload re-reads the directory from disk.
func (f *filesystem) Reload() Backend {
	reloaded := newFilesystem(f.dir)
	reloaded.parentSlot = f.parentSlot
	reloaded.sortState = f.sortState
	f.parentSlot = parentSlot{parent: None()}
	return reloaded
}

func launchVideo(path string) {
	cmd := exec.Command("mpv", path, "--fullscreen=yes")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		logging.Error(err)
		return
	}
	go func() { _ = cmd.Wait() }()
}

// loadImageContent decodes an image lazily supplied by read. SVG trees are
// passed through for asynchronous rasterization; raster formats decode
// immediately; failures fall back to an error card.
func loadImageContent(ref Reference, name string, read func() ([]byte, error)) Content {
	data, err := read()
	if err != nil {
		logging.Error(err)
		return Content{Ref: ref, Surface: pix.TextCard("image", err.Error(), pix.ErrorCardColors())}
	}
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".svg") || strings.HasSuffix(lower, ".svgz") {
		icon, err := pix.ParseSVG(name, data)
		if err != nil {
			logging.Error(err)
			return Content{Ref: ref, Surface: pix.TextCard("image", err.Error(), pix.ErrorCardColors())}
		}
		return Content{Ref: ref, SVG: icon}
	}
	surface, err := pix.DecodeBytes(data)
	if err != nil {
		logging.Error(err)
		return Content{Ref: ref, Surface: pix.TextCard("image", err.Error(), pix.ErrorCardColors())}
	}
	return Content{Ref: ref, Surface: surface}
}

func placeholderCard(row Row) *pix.Surface {
	colors := pix.NeutralCardColors()
	switch row.Category {
	case category.Folder:
		colors = pix.FolderCardColors()
	case category.Archive:
		colors = pix.ArchiveCardColors()
	}
	return pix.TextCard(row.Category.String(), row.Name, colors)
}
