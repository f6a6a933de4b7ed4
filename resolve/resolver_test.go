package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dechivo/skillgraph/graph"
)

func occ(fw, uri, label string) Occupation {
	return Occupation{Framework: fw, URI: uri, Label: label}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  Software   Developer ",
		"Sales and Marketing Manager",
		"Nurse / Midwife",
		"Data & AI Specialist",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizeEquivalences(t *testing.T) {
	assert.Equal(t, Normalize("Sales & Marketing"), Normalize("sales and marketing"))
	assert.Equal(t, Normalize("Nurse / Midwife"), Normalize("nurse/midwife"))
	assert.Equal(t, "software developer", Normalize("  Software   Developer "))
}

func TestExactMatchAcrossFrameworks(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {occ("esco", "http://data.europa.eu/esco/occupation/1", "Software Developer")},
		"onet": {occ("onet", "http://data.onetcenter.org/occupation/15-1252", "Software developer ")},
	}

	r := NewResolver()
	groups, report := r.Resolve(byFramework)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, GroupExact, g.Kind)
	assert.Equal(t, 1.0, g.Confidence)
	assert.Equal(t, "software developer", g.Key)
	require.Len(t, g.Members, 2)
	assert.Equal(t, "esco", g.Members[0].Framework)
	assert.Equal(t, "onet", g.Members[1].Framework)
	assert.Equal(t, 1, report.ExactGroups)
	assert.Equal(t, 0, report.FuzzyGroups)
}

func TestExactMatchViaAlternateLabel(t *testing.T) {
	a := occ("esco", "http://data.europa.eu/esco/occupation/2", "Registered Nurse")
	b := occ("sg", "http://data.skillsframework.sg/occupation/9", "Staff Nurse")
	b.AltLabels = []string{"Registered Nurse"}

	r := NewResolver()
	groups, _ := r.Resolve(map[string][]Occupation{
		"esco": {a},
		"sg":   {b},
	})

	require.Len(t, groups, 1)
	assert.Equal(t, GroupExact, groups[0].Kind)
}

func TestDistinctOccupationsNotGrouped(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {occ("esco", "http://data.europa.eu/esco/occupation/3", "Data Scientist")},
		"onet": {occ("onet", "http://data.onetcenter.org/occupation/15-2051", "Data Analyst")},
	}

	r := NewResolver()
	groups, _ := r.Resolve(byFramework)

	assert.Empty(t, groups, "data scientist and data analyst fall well below the similarity threshold")
}

func TestSameFrameworkDuplicatesNotGrouped(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {
			occ("esco", "http://data.europa.eu/esco/occupation/4", "Electrician"),
			occ("esco", "http://data.europa.eu/esco/occupation/5", "Electrician"),
		},
	}

	r := NewResolver()
	groups, _ := r.Resolve(byFramework)

	assert.Empty(t, groups, "exact keys within a single framework are not duplicates")
}

func TestFuzzyMatchWithinRange(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {occ("esco", "http://data.europa.eu/esco/occupation/6", "Software Developers")},
		"onet": {occ("onet", "http://data.onetcenter.org/occupation/15-1252", "Software Developer")},
	}

	r := NewResolver()
	groups, report := r.Resolve(byFramework)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, GroupFuzzy, g.Kind)
	assert.GreaterOrEqual(t, g.Confidence, DefaultThreshold)
	assert.Less(t, g.Confidence, 1.0)
	assert.Equal(t, 1, report.FuzzyGroups)
}

func TestFuzzyGroupsAreTransitive(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {occ("esco", "http://data.europa.eu/esco/occupation/7", "Data Engineer")},
		"onet": {occ("onet", "http://data.onetcenter.org/occupation/15-2099", "Data Enginer")},
		"sg":   {occ("sg", "http://data.skillsframework.sg/occupation/11", "Data Enginee")},
	}

	r := NewResolver()
	groups, _ := r.Resolve(byFramework)

	require.Len(t, groups, 1, "pairwise matches must collapse into one transitive group")
	assert.Len(t, groups[0].Members, 3)
}

func TestGroupConfidenceIsWeakestLink(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {occ("esco", "http://data.europa.eu/esco/occupation/7", "Data Engineer")},
		"onet": {occ("onet", "http://data.onetcenter.org/occupation/15-2099", "Data Enginer")},
		"sg":   {occ("sg", "http://data.skillsframework.sg/occupation/11", "Data Enginee")},
	}

	r := NewResolver()
	groups, _ := r.Resolve(byFramework)

	require.Len(t, groups, 1)
	got := groups[0].Confidence
	assert.GreaterOrEqual(t, got, DefaultThreshold)
	assert.LessOrEqual(t, got, Similarity("Data Engineer", "Data Enginer"))
}

func TestThresholdMonotonicity(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {
			occ("esco", "http://data.europa.eu/esco/occupation/8", "Civil Engineer"),
			occ("esco", "http://data.europa.eu/esco/occupation/9", "Project Manager"),
		},
		"onet": {
			occ("onet", "http://data.onetcenter.org/occupation/17-2051", "Civil Enginer"),
			occ("onet", "http://data.onetcenter.org/occupation/11-9021", "Project Managers"),
		},
	}

	lowGroups, _ := NewResolver(WithThreshold(0.85)).Resolve(byFramework)
	highGroups, _ := NewResolver(WithThreshold(0.95)).Resolve(byFramework)

	assert.GreaterOrEqual(t, len(lowGroups), len(highGroups),
		"raising the threshold must never produce more matches")
}

func TestGroupsAreDisjoint(t *testing.T) {
	byFramework := map[string][]Occupation{
		"esco": {
			occ("esco", "http://data.europa.eu/esco/occupation/10", "Software Developer"),
			occ("esco", "http://data.europa.eu/esco/occupation/11", "Web Developer"),
		},
		"onet": {
			occ("onet", "http://data.onetcenter.org/occupation/15-1252", "Software Developer"),
			occ("onet", "http://data.onetcenter.org/occupation/15-1254", "Web Developers"),
		},
		"sg": {
			occ("sg", "http://data.skillsframework.sg/occupation/12", "Software Developer"),
		},
	}

	r := NewResolver()
	groups, _ := r.Resolve(byFramework)

	seen := make(map[string]string)
	for _, g := range groups {
		for _, m := range g.Members {
			prev, dup := seen[m.URI]
			assert.False(t, dup, "uri %s appears in groups %q and %q", m.URI, prev, g.Key)
			seen[m.URI] = g.Key
		}
	}
	require.Len(t, groups, 2)
}

func TestCollectOccupations(t *testing.T) {
	g := graph.New()
	subj := graph.MustIRI(graph.NSESCO + "occupation/20")
	g.Add(graph.Triple(subj, graph.RDFType, graph.MustIRI(graph.NSESCO+"Occupation")))
	g.Add(graph.Triple(subj, graph.RDFSLabel, graph.MustLiteral("Biomedical Engineer")))
	g.Add(graph.Triple(subj, graph.DCTermsDescription, graph.MustLiteral("Designs medical devices.")))
	g.Add(graph.Triple(subj, graph.SKOSAltLabel, graph.MustLiteral("Bioengineer")))

	// Typed but unlabeled subjects are skipped.
	bare := graph.MustIRI(graph.NSESCO + "occupation/21")
	g.Add(graph.Triple(bare, graph.RDFType, graph.MustIRI(graph.NSESCO+"Occupation")))

	byFramework := CollectOccupations(g)

	require.Len(t, byFramework["esco"], 1)
	got := byFramework["esco"][0]
	assert.Equal(t, "esco", got.Framework)
	assert.Equal(t, "Biomedical Engineer", got.Label)
	assert.Equal(t, "Designs medical devices.", got.Description)
	assert.Equal(t, []string{"Bioengineer"}, got.AltLabels)
}

func TestCollectOccupationsExcludesOtherEntityClasses(t *testing.T) {
	g := graph.New()

	escoDev := graph.MustIRI(graph.NSESCO + "occupation/dev")
	g.Add(graph.Triple(escoDev, graph.RDFType, graph.MustIRI(graph.NSESCO+"Occupation")))
	g.Add(graph.Triple(escoDev, graph.RDFSLabel, graph.MustLiteral("Software Developer")))

	onetDev := graph.MustIRI(graph.NSONet + "occupation/15-1252")
	g.Add(graph.Triple(onetDev, graph.RDFType, graph.MustIRI(graph.NSONet+"Occupation")))
	g.Add(graph.Triple(onetDev, graph.RDFSLabel, graph.MustLiteral("Software Developer")))

	// Same-labeled skills in both frameworks must stay out of the inventory.
	escoSkill := graph.MustIRI(graph.NSESCO + "skill/python")
	g.Add(graph.Triple(escoSkill, graph.RDFType, graph.MustIRI(graph.NSESCO+"Skill")))
	g.Add(graph.Triple(escoSkill, graph.RDFSLabel, graph.MustLiteral("Python")))
	onetSkill := graph.MustIRI(graph.NSONet + "skill/python")
	g.Add(graph.Triple(onetSkill, graph.RDFType, graph.MustIRI(graph.NSONet+"Skill")))
	g.Add(graph.Triple(onetSkill, graph.RDFSLabel, graph.MustLiteral("Python")))
	g.Add(graph.Triple(onetDev, graph.MustIRI(graph.NSONet+"requiresSkill"), onetSkill))

	byFramework := CollectOccupations(g)
	require.Len(t, byFramework["esco"], 1)
	require.Len(t, byFramework["onet"], 1)
	assert.Equal(t, escoDev.String(), byFramework["esco"][0].URI)
	assert.Equal(t, onetDev.String(), byFramework["onet"][0].URI)

	// End to end: the only group is the developer pair, never the skills.
	groups, _ := NewResolver().Resolve(byFramework)
	require.Len(t, groups, 1)
	assert.Equal(t, "software developer", groups[0].Key)
}

func TestSimilarityBounds(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Nurse", "  nurse "))
	assert.Equal(t, 0.0, Similarity("", "Nurse"))
	s := Similarity("Software Developer", "Software Developers")
	assert.Greater(t, s, 0.9)
	assert.Less(t, s, 1.0)
}
