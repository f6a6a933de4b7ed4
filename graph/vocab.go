// Package graph provides the in-memory triple graph the pipeline stages
// operate on, plus the vocabulary shared by all of them.
package graph

import (
	"fmt"

	"github.com/knakk/rdf"
)

// Namespaces used across the source frameworks and the unified ontology.
const (
	NSOntology   = "http://dechivo.com/ontology/"
	NSOccupation = "http://dechivo.com/occupation/"
	NSSkill      = "http://dechivo.com/skill/"

	NSESCO      = "http://data.europa.eu/esco/"
	NSONet      = "http://data.onetcenter.org/"
	NSSingapore = "http://data.skillsframework.sg/"
	NSCanada    = "http://data.canada.ca/"

	NSRDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	NSOWL     = "http://www.w3.org/2002/07/owl#"
	NSDCTerms = "http://purl.org/dc/terms/"
	NSSKOS    = "http://www.w3.org/2004/02/skos/core#"
	NSXSD     = "http://www.w3.org/2001/XMLSchema#"
)

// Well-known terms.
var (
	RDFType            = MustIRI(NSRDF + "type")
	RDFSLabel          = MustIRI(NSRDFS + "label")
	OWLSameAs          = MustIRI(NSOWL + "sameAs")
	OWLClass           = MustIRI(NSOWL + "Class")
	OWLObjectProperty  = MustIRI(NSOWL + "ObjectProperty")
	OWLOntology        = MustIRI(NSOWL + "Ontology")
	OWLVersionInfo     = MustIRI(NSOWL + "versionInfo")
	DCTermsDescription = MustIRI(NSDCTerms + "description")
	DCTermsCreated     = MustIRI(NSDCTerms + "created")
	SKOSAltLabel       = MustIRI(NSSKOS + "altLabel")
	XSDDate            = MustIRI(NSXSD + "date")
	XSDInteger         = MustIRI(NSXSD + "integer")

	FromFramework = MustIRI(NSOntology + "fromFramework")
	HasVariants   = MustIRI(NSOntology + "hasVariants")

	ClassOccupation = MustIRI(NSOntology + "Occupation")
	ClassSkill      = MustIRI(NSOntology + "Skill")
	ClassKnowledge  = MustIRI(NSOntology + "Knowledge")
	ClassAbility    = MustIRI(NSOntology + "Ability")
	ClassTechnology = MustIRI(NSOntology + "Technology")
	ClassCompetency = MustIRI(NSOntology + "Competency")
	ClassSector     = MustIRI(NSOntology + "Sector")
)

// SkillPredicates are the framework-specific predicates that link an
// occupation to a skill-like entity. The query layer normalizes these into
// one essential/optional/required facet; storage keeps them as-is.
var SkillPredicates = []rdf.IRI{
	MustIRI(NSESCO + "hasEssentialSkill"),
	MustIRI(NSESCO + "hasOptionalSkill"),
	MustIRI(NSONet + "requiresSkill"),
	MustIRI(NSSingapore + "requiresSkill"),
	MustIRI(NSOntology + "requiresSkill"),
}

// MustIRI builds an IRI from a known-good string. It panics on malformed
// input and is reserved for package-level vocabulary terms.
func MustIRI(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		panic(fmt.Sprintf("invalid IRI %q: %v", s, err))
	}
	return iri
}
