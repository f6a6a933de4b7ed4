package graph

import (
	"sort"

	"github.com/knakk/rdf"
)

// Graph is a set of triples with subject and object indexes. It is not safe
// for concurrent mutation; each pipeline stage owns the graph exclusively
// during its turn.
type Graph struct {
	triples map[string]rdf.Triple
	bySubj  map[string]map[string]struct{}
	byObj   map[string]map[string]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		triples: make(map[string]rdf.Triple),
		bySubj:  make(map[string]map[string]struct{}),
		byObj:   make(map[string]map[string]struct{}),
	}
}

func termKey(t rdf.Term) string {
	return t.Serialize(rdf.NTriples)
}

func tripleKey(t rdf.Triple) string {
	return t.Serialize(rdf.NTriples)
}

// Add inserts a triple. Returns false if the triple was already present.
func (g *Graph) Add(t rdf.Triple) bool {
	key := tripleKey(t)
	if _, ok := g.triples[key]; ok {
		return false
	}
	g.triples[key] = t

	sk := termKey(t.Subj)
	if g.bySubj[sk] == nil {
		g.bySubj[sk] = make(map[string]struct{})
	}
	g.bySubj[sk][key] = struct{}{}

	ok := termKey(t.Obj)
	if g.byObj[ok] == nil {
		g.byObj[ok] = make(map[string]struct{})
	}
	g.byObj[ok][key] = struct{}{}
	return true
}

// AddAll inserts a batch of triples and returns how many were new.
func (g *Graph) AddAll(triples []rdf.Triple) int {
	added := 0
	for _, t := range triples {
		if g.Add(t) {
			added++
		}
	}
	return added
}

// Remove deletes a triple. Returns false if the triple was absent.
func (g *Graph) Remove(t rdf.Triple) bool {
	key := tripleKey(t)
	if _, ok := g.triples[key]; !ok {
		return false
	}
	delete(g.triples, key)

	sk := termKey(t.Subj)
	delete(g.bySubj[sk], key)
	if len(g.bySubj[sk]) == 0 {
		delete(g.bySubj, sk)
	}
	ok2 := termKey(t.Obj)
	delete(g.byObj[ok2], key)
	if len(g.byObj[ok2]) == 0 {
		delete(g.byObj, ok2)
	}
	return true
}

// Has reports whether the triple is present.
func (g *Graph) Has(t rdf.Triple) bool {
	_, ok := g.triples[tripleKey(t)]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns all triples in deterministic (serialized) order.
func (g *Graph) Triples() []rdf.Triple {
	keys := make([]string, 0, len(g.triples))
	for k := range g.triples {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]rdf.Triple, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.triples[k])
	}
	return out
}

func (g *Graph) collect(keys map[string]struct{}) []rdf.Triple {
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	out := make([]rdf.Triple, 0, len(sorted))
	for _, k := range sorted {
		out = append(out, g.triples[k])
	}
	return out
}

// WithSubject returns all triples whose subject equals the given term.
func (g *Graph) WithSubject(s rdf.Subject) []rdf.Triple {
	return g.collect(g.bySubj[termKey(s)])
}

// WithObject returns all triples whose object equals the given term.
func (g *Graph) WithObject(o rdf.Object) []rdf.Triple {
	return g.collect(g.byObj[termKey(o)])
}

// Objects returns the objects of all (s, p, ?) triples.
func (g *Graph) Objects(s rdf.Subject, p rdf.Predicate) []rdf.Object {
	pk := termKey(p)
	var out []rdf.Object
	for _, t := range g.WithSubject(s) {
		if termKey(t.Pred) == pk {
			out = append(out, t.Obj)
		}
	}
	return out
}

// FirstLiteral returns the first literal value of (s, p, ?), if any.
func (g *Graph) FirstLiteral(s rdf.Subject, p rdf.Predicate) (string, bool) {
	for _, o := range g.Objects(s, p) {
		if o.Type() == rdf.TermLiteral {
			return o.String(), true
		}
	}
	return "", false
}

// SubjectsWithType returns the IRI subjects typed as the given class.
func (g *Graph) SubjectsWithType(class rdf.IRI) []rdf.IRI {
	classKey := termKey(class)
	typeKey := termKey(RDFType)

	var out []rdf.IRI
	seen := make(map[string]struct{})
	for _, t := range g.collect(g.byObj[classKey]) {
		if termKey(t.Pred) != typeKey {
			continue
		}
		iri, ok := t.Subj.(rdf.IRI)
		if !ok {
			continue
		}
		if _, dup := seen[iri.String()]; dup {
			continue
		}
		seen[iri.String()] = struct{}{}
		out = append(out, iri)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// TypeCounts returns a count of entities per rdf:type local name.
func (g *Graph) TypeCounts() map[string]int {
	typeKey := termKey(RDFType)
	counts := make(map[string]int)
	for _, t := range g.triples {
		if termKey(t.Pred) != typeKey || t.Obj.Type() != rdf.TermIRI {
			continue
		}
		counts[localName(t.Obj.String())]++
	}
	return counts
}

func localName(uri string) string {
	for i := len(uri) - 1; i >= 0; i-- {
		if uri[i] == '/' || uri[i] == '#' {
			return uri[i+1:]
		}
	}
	return uri
}
