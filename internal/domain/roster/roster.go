// Package roster holds group lineups and the alumnae relation between groups.
package roster

import "strings"

// Group is a named lineup in canonical order.
type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Edge links a base group to the pseudo-group holding its alumnae.
type Edge struct {
	Base    string `json:"base"`
	Alumnae string `json:"alumnae"`
}

// Roster is an immutable set of groups with explicit alumnae edges.
type Roster struct {
	groups   []Group
	byName   map[string]int
	baseOf   map[string]string   // alumnae -> base
	alumnae  map[string][]string // base -> alumnae, in group order
	edges    []Edge
	suffix   string
	explicit map[string]string
}

// New builds a Roster from groups in canonical order. Duplicate group names
// keep the first occurrence. Edges are resolved once here.
func New(groups []Group, opts ...Option) *Roster {
	r := &Roster{
		byName:   make(map[string]int, len(groups)),
		baseOf:   make(map[string]string),
		alumnae:  make(map[string][]string),
		suffix:   DefaultAlumnaeSuffix,
		explicit: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, g := range groups {
		if g.Name == "" {
			continue
		}
		if _, dup := r.byName[g.Name]; dup {
			continue
		}
		members := make([]string, len(g.Members))
		copy(members, g.Members)
		r.byName[g.Name] = len(r.groups)
		r.groups = append(r.groups, Group{Name: g.Name, Members: members})
	}

	for _, g := range r.groups {
		base, ok := r.explicit[g.Name]
		if !ok && r.suffix != "" && strings.HasSuffix(g.Name, r.suffix) {
			base, ok = strings.TrimSuffix(g.Name, r.suffix), true
		}
		if !ok || base == "" {
			continue
		}
		r.baseOf[g.Name] = base
		r.alumnae[base] = append(r.alumnae[base], g.Name)
		r.edges = append(r.edges, Edge{Base: base, Alumnae: g.Name})
	}
	return r
}

// Groups returns all groups in canonical order.
func (r *Roster) Groups() []Group {
	out := make([]Group, len(r.groups))
	copy(out, r.groups)
	return out
}

// Len returns the number of groups.
func (r *Roster) Len() int { return len(r.groups) }

// Members returns the lineup of a group.
func (r *Roster) Members(name string) ([]string, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.groups[i].Members, true
}

// Edges returns every alumnae edge in group order.
func (r *Roster) Edges() []Edge {
	out := make([]Edge, len(r.edges))
	copy(out, r.edges)
	return out
}

// Alumnae returns the alumnae groups of base.
func (r *Roster) Alumnae(base string) []string {
	return r.alumnae[base]
}

// Resolve maps a selected group to the base group whose performances it
// covers. Alumnae groups resolve to their base. Unknown groups return false.
func (r *Roster) Resolve(selected string) (string, bool) {
	if base, ok := r.baseOf[selected]; ok {
		return base, true
	}
	if _, ok := r.byName[selected]; ok {
		return selected, true
	}
	return "", false
}

// Bases returns every group name that owns performances: all non-alumnae
// groups plus bases referenced only by an alumnae edge.
func (r *Roster) Bases() []string {
	seen := make(map[string]struct{}, len(r.groups))
	out := make([]string, 0, len(r.groups))
	add := func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	for _, g := range r.groups {
		if base, ok := r.baseOf[g.Name]; ok {
			add(base)
			continue
		}
		add(g.Name)
	}
	return out
}

// Combined returns the base lineup followed by its alumnae lineups. It is
// the tie-break order for every ranking scoped to base.
func (r *Roster) Combined(base string) []string {
	members, _ := r.Members(base)
	out := make([]string, 0, len(members))
	out = append(out, members...)
	for _, a := range r.alumnae[base] {
		am, _ := r.Members(a)
		out = append(out, am...)
	}
	return out
}
