package blocks

import (
	"log"
	"strings"
)

// hardDefault is the end of every fallback chain. Resolution is total: no
// input, however malformed, escapes without a canonical id.
const hardDefault = "stone"

// Resolver maps external block identities onto the canonical palette.
// It is bound to a palette snapshot and is safe for concurrent use; a palette
// refresh means constructing a new Resolver.
type Resolver struct {
	pal   *Palette
	chain []strategy
	log   *log.Logger
}

// strategy is one tier of the substitution chain: given a mapped-but-maybe-
// absent canonical id, either produce a palette member or pass.
type strategy func(p *Palette, id string) (string, bool)

func NewResolver(p *Palette, logger *log.Logger) *Resolver {
	return &Resolver{
		pal: p,
		chain: []strategy{
			exactMatch,
			categorySibling,
			globalDefault,
			firstAvailable,
		},
		log: logger,
	}
}

// Resolve maps an external identity to a canonical type id. It never fails:
// unknown or malformed identities resolve through the fallback chain and
// bottom out at the hard default.
func (r *Resolver) Resolve(id Identity) string {
	switch id.Kind {
	case KindName:
		return r.resolveName(id)
	case KindID:
		return r.resolveNumeric(id)
	default:
		return hardDefault
	}
}

func (r *Resolver) resolveName(id Identity) string {
	name := strings.TrimSpace(strings.ToLower(id.Name))
	if name == "" {
		return hardDefault
	}
	// Strip any namespace prefix ("minecraft:stone" -> "stone").
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	if name == "air" {
		return Air
	}
	mapped, ok := legacyNames[name]
	if !ok {
		r.logf("unknown block name %q (%s), using default", id.Name, id.Source)
		mapped = hardDefault
	}
	return r.ensure(mapped)
}

func (r *Resolver) resolveNumeric(id Identity) string {
	if id.ID < 0 || id.Data < 0 {
		return hardDefault
	}
	mapped, ok := legacyIDData[[2]int{id.ID, id.Data}]
	if !ok {
		mapped, ok = legacyIDs[id.ID]
	}
	if !ok {
		r.logf("unknown block id %d:%d (%s), using default", id.ID, id.Data, id.Source)
		mapped = hardDefault
	}
	if mapped == Air {
		return Air
	}
	return r.ensure(mapped)
}

// ensure runs the substitution chain: the table may map to a type the
// current palette no longer carries.
func (r *Resolver) ensure(id string) string {
	for _, s := range r.chain {
		if out, ok := s(r.pal, id); ok {
			return out
		}
	}
	return hardDefault
}

func (r *Resolver) logf(format string, args ...any) {
	if r.log != nil {
		r.log.Printf("resolver: "+format, args...)
	}
}

func exactMatch(p *Palette, id string) (string, bool) {
	if p.Has(id) {
		return id, true
	}
	return "", false
}

func categorySibling(p *Palette, id string) (string, bool) {
	cat, ok := categoryOf[id]
	if !ok {
		return "", false
	}
	for _, sib := range categories[cat] {
		if sib != id && p.Has(sib) {
			return sib, true
		}
	}
	return "", false
}

func globalDefault(p *Palette, _ string) (string, bool) {
	for _, d := range globalDefaults {
		if p.Has(d) {
			return d, true
		}
	}
	return "", false
}

func firstAvailable(p *Palette, _ string) (string, bool) {
	if first := p.First(); first != Air {
		return first, true
	}
	return "", false
}
