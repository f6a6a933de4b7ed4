package graph

import (
	"strings"

	"github.com/knakk/rdf"
)

// Framework describes one source taxonomy contributing documents to the
// unified graph.
type Framework struct {
	// Key is the short identifier used for datasets and directories.
	Key string
	// Name is the human-readable provenance value stored in the graph.
	Name string
	// Dir is the directory under the data root holding the turtle documents.
	Dir string
	// Namespace is the identifier prefix for entities of this framework.
	Namespace string
	// OccupationType is the rdf:type IRI for occupation entities.
	OccupationType rdf.IRI
}

// Frameworks lists the four source taxonomies in load order.
var Frameworks = []Framework{
	{
		Key:            "ca",
		Name:           "Canada OASIS",
		Dir:            "ca_turtle",
		Namespace:      NSCanada,
		OccupationType: MustIRI(NSCanada + "oasis/Occupation"),
	},
	{
		Key:            "esco",
		Name:           "ESCO",
		Dir:            "esco_turtle",
		Namespace:      NSESCO,
		OccupationType: MustIRI(NSESCO + "Occupation"),
	},
	{
		Key:            "onet",
		Name:           "O*NET",
		Dir:            "onet_turtle",
		Namespace:      NSONet,
		OccupationType: MustIRI(NSONet + "Occupation"),
	},
	{
		Key:            "sg",
		Name:           "Singapore",
		Dir:            "sg_turtle",
		Namespace:      NSSingapore,
		OccupationType: MustIRI(NSSingapore + "Occupation"),
	},
}

// FrameworkByKey returns the framework with the given key.
func FrameworkByKey(key string) (Framework, bool) {
	for _, fw := range Frameworks {
		if fw.Key == key {
			return fw, true
		}
	}
	return Framework{}, false
}

// FrameworkForURI infers the source framework from an entity URI, or ""
// when the URI belongs to no known source namespace.
func FrameworkForURI(uri string) string {
	for _, fw := range Frameworks {
		if strings.HasPrefix(uri, fw.Namespace) {
			return fw.Name
		}
	}
	return ""
}
