package graph

import (
	"bytes"
	"sort"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occ(t *testing.T, id string) rdf.IRI {
	t.Helper()
	iri, err := rdf.NewIRI(NSESCO + "occupation/" + id)
	require.NoError(t, err)
	return iri
}

func TestAddRemoveSetSemantics(t *testing.T) {
	g := New()
	tr := Triple(occ(t, "1"), RDFSLabel, MustLiteral("Software Developer"))

	assert.True(t, g.Add(tr))
	assert.False(t, g.Add(tr), "re-adding the same triple must be a no-op")
	assert.Equal(t, 1, g.Len())

	assert.True(t, g.Remove(tr))
	assert.False(t, g.Remove(tr))
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.WithSubject(occ(t, "1")))
}

func TestSubjectObjectIndexes(t *testing.T) {
	g := New()
	dev := occ(t, "dev")
	skill := MustIRI(NSESCO + "skill/python")

	g.Add(Triple(dev, RDFType, ClassOccupation))
	g.Add(Triple(dev, RDFSLabel, MustLiteral("Software Developer")))
	g.Add(Triple(dev, MustIRI(NSESCO+"hasEssentialSkill"), skill))

	assert.Len(t, g.WithSubject(dev), 3)
	assert.Len(t, g.WithObject(skill), 1)

	objs := g.Objects(dev, RDFSLabel)
	require.Len(t, objs, 1)
	assert.Equal(t, "Software Developer", objs[0].String())

	label, ok := g.FirstLiteral(dev, RDFSLabel)
	require.True(t, ok)
	assert.Equal(t, "Software Developer", label)

	_, ok = g.FirstLiteral(dev, DCTermsDescription)
	assert.False(t, ok)
}

func TestSubjectsWithType(t *testing.T) {
	g := New()
	g.Add(Triple(occ(t, "a"), RDFType, ClassOccupation))
	g.Add(Triple(occ(t, "b"), RDFType, ClassOccupation))
	g.Add(Triple(MustIRI(NSESCO+"skill/x"), RDFType, ClassSkill))

	subjects := g.SubjectsWithType(ClassOccupation)
	require.Len(t, subjects, 2)
	// Deterministic order regardless of insertion.
	assert.True(t, sort.SliceIsSorted(subjects, func(i, j int) bool {
		return subjects[i].String() < subjects[j].String()
	}))

	counts := g.TypeCounts()
	assert.Equal(t, 2, counts["Occupation"])
	assert.Equal(t, 1, counts["Skill"])
}

// Serializing a graph and re-parsing it must yield the same triple set.
func TestRoundTrip(t *testing.T) {
	g := New()
	dev := occ(t, "dev")
	g.Add(Triple(dev, RDFType, ClassOccupation))
	g.Add(Triple(dev, RDFSLabel, MustLangLiteral("Software Developer", "en")))
	g.Add(Triple(dev, DCTermsDescription, MustLiteral(`Builds "software" systems\nand services`)))
	g.Add(Triple(dev, MustIRI(NSESCO+"hasEssentialSkill"), MustIRI(NSESCO+"skill/python")))

	var buf bytes.Buffer
	require.NoError(t, g.WriteTo(&buf))

	parsed, err := Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	reloaded := New()
	reloaded.AddAll(parsed)

	require.Equal(t, g.Len(), reloaded.Len())
	for _, tr := range g.Triples() {
		assert.True(t, reloaded.Has(tr), "missing after round-trip: %v", tr)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("<http://example.org/a> <http://example.org/b> ")))
	assert.Error(t, err)
}

func TestFrameworkForURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{NSESCO + "occupation/1", "ESCO"},
		{NSONet + "occupation/15-1252.00", "O*NET"},
		{NSSingapore + "occupation/nurse", "Singapore"},
		{NSCanada + "occupation/2172", "Canada OASIS"},
		{"http://example.org/x", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FrameworkForURI(tt.uri), tt.uri)
	}
}
