// Package category classifies rows by filename, without looking at file
// contents. Archive/document/image/video detection is purely extension based;
// favorite and trash markers are the ".hi."/".lo." infixes in the filename.
package category

import (
	"path/filepath"
	"strings"
)

// Type is the content category of a listing row.
type Type uint32

const (
	Folder Type = iota
	Archive
	Image
	Video
	Document
	Unsupported
)

var archiveExt = map[string]bool{
	".zip": true, ".rar": true, ".mar": true,
}

var documentExt = map[string]bool{
	".pdf": true, ".epub": true,
}

var imageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".jfif": true, ".gif": true, ".svg": true,
	".svgz": true, ".webp": true, ".heic": true, ".avif": true, ".pcx": true,
	".png": true, ".bmp": true,
}

var videoExt = map[string]bool{
	".webm": true, ".mkv": true, ".flv": true, ".vob": true, ".ogv": true,
	".ogg": true, ".mov": true, ".avi": true, ".wmv": true, ".mp4": true,
	".m4v": true, ".mpg": true, ".mpeg": true, ".3gp": true,
}

// Determine classifies a path. isDir wins over any extension.
func Determine(path string, isDir bool) Type {
	if isDir {
		return Folder
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case archiveExt[ext]:
		return Archive
	case documentExt[ext]:
		return Document
	case imageExt[ext]:
		return Image
	case videoExt[ext]:
		return Video
	}
	return Unsupported
}

func (t Type) String() string {
	switch t {
	case Folder:
		return "folder"
	case Archive:
		return "archive"
	case Image:
		return "image"
	case Video:
		return "video"
	case Document:
		return "document"
	}
	return "not supported"
}

// Short returns the three-letter column label for the category.
func (t Type) Short() string {
	switch t {
	case Folder:
		return "dir"
	case Archive:
		return "arc"
	case Image:
		return "img"
	case Video:
		return "vid"
	case Document:
		return "doc"
	}
	return "---"
}

// Icon returns the icon identifier carried on listing rows.
func (t Type) Icon() string {
	switch t {
	case Folder:
		return "lp-folder"
	case Archive:
		return "lp-box"
	case Image:
		return "lp-image"
	case Video:
		return "lp-video"
	case Document:
		return "lp-doc"
	}
	return "lp-unknown"
}

// IsContainer reports whether rows of this category can be entered.
func (t Type) IsContainer() bool {
	return t == Folder || t == Archive || t == Document
}

// Preference is the favorite/trash marker encoded in a filename.
type Preference uint32

const (
	Normal Preference = iota
	Favorite
	Trash
)

// PreferenceOf reads the ".hi."/".lo." infix marker from a filename.
func PreferenceOf(name string) Preference {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, ".hi."):
		return Favorite
	case strings.Contains(lower, ".lo."):
		return Trash
	}
	return Normal
}

func (p Preference) String() string {
	switch p {
	case Favorite:
		return "favorite"
	case Trash:
		return "trash"
	}
	return "normal"
}
