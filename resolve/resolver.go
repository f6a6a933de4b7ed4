// Package resolve finds occupation entities that denote the same real-world
// job across frameworks, using exact normalized-label matching plus fuzzy
// string similarity, and groups them with a disjoint-set so membership is
// transitive and unique.
package resolve

import (
	"log/slog"
	"sort"

	"github.com/knakk/rdf"

	"github.com/dechivo/skillgraph/graph"
)

// DefaultThreshold is the minimum similarity for a fuzzy match.
const DefaultThreshold = 0.85

// Occupation is one occupation entity as seen in a single framework.
type Occupation struct {
	Framework   string   `json:"framework"`
	URI         string   `json:"uri"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	AltLabels   []string `json:"alt_labels,omitempty"`
}

// GroupKind distinguishes how a duplicate group was found.
type GroupKind string

const (
	// GroupExact groups were joined only by identical normalized labels.
	GroupExact GroupKind = "exact"
	// GroupFuzzy groups involve at least one similarity-scored pair.
	GroupFuzzy GroupKind = "fuzzy"
)

// Group is one set of occupation entities treated as a single real-world
// job. Confidence is 1.0 for exact groups, otherwise the weakest similarity
// that joined the group.
type Group struct {
	Key        string       `json:"key"`
	Label      string       `json:"label"`
	Kind       GroupKind    `json:"kind"`
	Confidence float64      `json:"confidence"`
	Members    []Occupation `json:"members"`
}

// Resolver matches occupation entities across frameworks.
type Resolver struct {
	threshold float64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold overrides the fuzzy similarity threshold.
func WithThreshold(t float64) Option {
	return func(r *Resolver) {
		if t > 0 && t <= 1 {
			r.threshold = t
		}
	}
}

// NewResolver creates a resolver with the default threshold.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CollectOccupations extracts the per-framework occupation inventory from
// the aggregate graph: every labeled subject carrying the framework's
// occupation type, with description and alternate labels when present.
// Skills, technologies and other entity classes stay out of the inventory
// so a shared label like "Python" never collapses a skill into a job.
func CollectOccupations(g *graph.Graph) map[string][]Occupation {
	byFramework := make(map[string][]Occupation)

	for _, fw := range graph.Frameworks {
		for _, subj := range g.SubjectsWithType(fw.OccupationType) {
			label, ok := g.FirstLiteral(subj, graph.RDFSLabel)
			if !ok || label == "" {
				continue
			}
			occ := Occupation{
				Framework: fw.Key,
				URI:       subj.String(),
				Label:     label,
			}
			if desc, ok := g.FirstLiteral(subj, graph.DCTermsDescription); ok {
				occ.Description = desc
			}
			for _, alt := range g.Objects(subj, graph.SKOSAltLabel) {
				if alt.Type() == rdf.TermLiteral {
					occ.AltLabels = append(occ.AltLabels, alt.String())
				}
			}
			byFramework[fw.Key] = append(byFramework[fw.Key], occ)
		}
	}

	for key := range byFramework {
		occs := byFramework[key]
		sort.Slice(occs, func(i, j int) bool { return occs[i].URI < occs[j].URI })
	}
	return byFramework
}

// Resolve runs the exact pass then the fuzzy pass over the remaining
// entities and returns the duplicate groups (size >= 2) plus a report.
// Matched pairs are merged with union-find so every entity belongs to
// exactly one group.
func (r *Resolver) Resolve(byFramework map[string][]Occupation) ([]Group, *Report) {
	// Flatten in framework load order for deterministic representatives.
	var occs []Occupation
	for _, fw := range graph.Frameworks {
		occs = append(occs, byFramework[fw.Key]...)
	}

	uf := newUnionFind(len(occs))
	confidence := make([]float64, len(occs))
	fuzzyJoined := make([]bool, len(occs))
	for i := range confidence {
		confidence[i] = 1.0
	}

	merge := func(a, b int, conf float64, fuzzy bool) {
		ra, rb := uf.find(a), uf.find(b)
		minConf := confidence[ra]
		if confidence[rb] < minConf {
			minConf = confidence[rb]
		}
		if conf < minConf {
			minConf = conf
		}
		joined := fuzzyJoined[ra] || fuzzyJoined[rb] || fuzzy
		uf.union(a, b)
		root := uf.find(a)
		confidence[root] = minConf
		fuzzyJoined[root] = joined
	}

	inExact := r.exactPass(occs, merge)
	fuzzyPairs := r.fuzzyPass(occs, uf, merge, inExact)

	groups := buildGroups(occs, uf, confidence, fuzzyJoined)

	report := newReport(byFramework, groups, fuzzyPairs)
	slog.Info("entity resolution complete",
		slog.Int("occupations", len(occs)),
		slog.Int("duplicate_groups", len(groups)),
		slog.Int("exact_groups", report.ExactGroups),
		slog.Int("fuzzy_groups", report.FuzzyGroups))

	return groups, report
}

// exactPass indexes every normalized label (primary and alternates) and
// unions the members of any key spanning more than one framework. Returns
// the set of entity indexes captured by an exact key.
func (r *Resolver) exactPass(occs []Occupation, merge func(a, b int, conf float64, fuzzy bool)) []bool {
	index := make(map[string][]int)
	for i, occ := range occs {
		keys := []string{Normalize(occ.Label)}
		for _, alt := range occ.AltLabels {
			keys = append(keys, Normalize(alt))
		}
		seen := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			index[key] = append(index[key], i)
		}
	}

	inExact := make([]bool, len(occs))
	for _, members := range index {
		frameworks := make(map[string]struct{})
		for _, i := range members {
			frameworks[occs[i].Framework] = struct{}{}
		}
		if len(frameworks) < 2 {
			continue
		}
		for _, i := range members[1:] {
			merge(members[0], i, 1.0, false)
		}
		for _, i := range members {
			inExact[i] = true
		}
	}
	return inExact
}

// fuzzyPass scores primary labels pairwise across framework pairs for
// entities the exact pass did not capture. Quadratic across framework
// pairs; acceptable at the target scale of tens of thousands of entities.
func (r *Resolver) fuzzyPass(occs []Occupation, uf *unionFind, merge func(a, b int, conf float64, fuzzy bool), inExact []bool) int {
	byFramework := make(map[string][]int)
	for i, occ := range occs {
		if inExact[i] {
			continue
		}
		byFramework[occ.Framework] = append(byFramework[occ.Framework], i)
	}

	matches := 0
	for a := 0; a < len(graph.Frameworks); a++ {
		for b := a + 1; b < len(graph.Frameworks); b++ {
			left := byFramework[graph.Frameworks[a].Key]
			right := byFramework[graph.Frameworks[b].Key]
			for _, i := range left {
				for _, j := range right {
					if uf.sameSet(i, j) {
						continue
					}
					sim := Similarity(occs[i].Label, occs[j].Label)
					if sim >= r.threshold && sim < 1.0 {
						merge(i, j, sim, true)
						matches++
					}
				}
			}
		}
	}
	return matches
}

func buildGroups(occs []Occupation, uf *unionFind, confidence []float64, fuzzyJoined []bool) []Group {
	memberships := make(map[int][]int)
	for i := range occs {
		root := uf.find(i)
		memberships[root] = append(memberships[root], i)
	}

	var groups []Group
	for root, members := range memberships {
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)
		group := Group{
			Label:      occs[members[0]].Label,
			Key:        Normalize(occs[members[0]].Label),
			Kind:       GroupExact,
			Confidence: confidence[root],
		}
		if fuzzyJoined[root] {
			group.Kind = GroupFuzzy
		}
		for _, i := range members {
			group.Members = append(group.Members, occs[i])
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}
