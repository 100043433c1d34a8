package blocks

import "fmt"

// Kind discriminates the two external identifier dialects.
type Kind string

const (
	// KindID is the legacy numeric form (block id + data value).
	KindID Kind = "id"
	// KindName is the namespaced string form, e.g. "minecraft:stone".
	KindName Kind = "name"
)

// Identity is an external block identifier as decoded from a schematic file.
// It is immutable and produced only by the decoder; Source carries the
// originating filename for logging.
type Identity struct {
	Kind   Kind
	ID     int
	Data   int
	Name   string
	Source string
}

func NumericIdentity(id, data int, source string) Identity {
	return Identity{Kind: KindID, ID: id, Data: data, Source: source}
}

func NameIdentity(name, source string) Identity {
	return Identity{Kind: KindName, Name: name, Source: source}
}

func (i Identity) String() string {
	switch i.Kind {
	case KindID:
		return fmt.Sprintf("%d:%d", i.ID, i.Data)
	case KindName:
		return i.Name
	default:
		return "<invalid>"
	}
}
