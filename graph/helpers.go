package graph

import (
	"fmt"

	"github.com/knakk/rdf"
)

// MustLiteral builds a plain string literal. String input never fails.
func MustLiteral(v string) rdf.Literal {
	l, err := rdf.NewLiteral(v)
	if err != nil {
		panic(fmt.Sprintf("invalid literal %q: %v", v, err))
	}
	return l
}

// MustLangLiteral builds a language-tagged literal.
func MustLangLiteral(v, lang string) rdf.Literal {
	l, err := rdf.NewLangLiteral(v, lang)
	if err != nil {
		panic(fmt.Sprintf("invalid lang literal %q@%s: %v", v, lang, err))
	}
	return l
}

// Triple assembles a triple from already-validated terms.
func Triple(s rdf.Subject, p rdf.Predicate, o rdf.Object) rdf.Triple {
	return rdf.Triple{Subj: s, Pred: p, Obj: o}
}
