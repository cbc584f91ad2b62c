package browse

import "fmt"

// TargetKind discriminates the Target variants.
type TargetKind int

const (
	TargetFirst TargetKind = iota
	TargetName
	TargetIndex
)

// Target is a container-agnostic description of "which row", used to restore
// selection across enter/leave round trips and re-listing. Values are
// comparable, so restoring is a value search rather than a positional one.
type Target struct {
	Kind  TargetKind
	Name  string
	Index uint64
}

// First selects no specific row; lookups fall back to the first visible one.
func First() Target { return Target{Kind: TargetFirst} }

// ByName addresses a row in a name-addressed container.
func ByName(name string) Target { return Target{Kind: TargetName, Name: name} }

// ByIndex addresses a row in an ordinal-addressed container.
func ByIndex(index uint64) Target { return Target{Kind: TargetIndex, Index: index} }

func (t Target) String() string {
	switch t.Kind {
	case TargetName:
		return fmt.Sprintf("name(%s)", t.Name)
	case TargetIndex:
		return fmt.Sprintf("index(%d)", t.Index)
	}
	return "first"
}

// ItemRef addresses one item inside a specific backend, using the addressing
// scheme native to that backend kind.
type ItemRef struct {
	Name    string
	Index   uint64
	ByIndex bool
}

// NameRef builds a name-addressed item reference.
func NameRef(name string) ItemRef { return ItemRef{Name: name} }

// IndexRef builds an ordinal-addressed item reference.
func IndexRef(index uint64) ItemRef { return ItemRef{Index: index, ByIndex: true} }

// BackendRef identifies a backend by kind and path, enough to reconstruct it.
type BackendRef struct {
	Kind Kind
	Path string
}

// Reference names one piece of content across the whole nested hierarchy.
// In-flight render requests carry it so replies can be attributed even after
// the user navigated elsewhere.
type Reference struct {
	Backend BackendRef
	Item    ItemRef
}

// Target converts the reference to the Target variant native to the
// referenced backend kind: name-addressed containers yield Name targets,
// ordinal-addressed containers yield Index targets, everything else First.
func (r Reference) Target() Target {
	switch r.Backend.Kind {
	case KindFilesystem, KindRar:
		return ByName(r.Item.Name)
	case KindZip, KindMar, KindDocument:
		return ByIndex(r.Item.Index)
	}
	return First()
}
