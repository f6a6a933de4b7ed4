package query

import "fmt"

const prefixes = `PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX dcterms: <http://purl.org/dc/terms/>
PREFIX dv: <http://dechivo.com/ontology/>
PREFIX esco: <http://data.europa.eu/esco/>
PREFIX onet: <http://data.onetcenter.org/>
PREFIX sg: <http://data.skillsframework.sg/>
`

// skillRelations filters a relation variable to the predicates that link an
// occupation to a skill in any source framework.
func skillRelations(v string) string {
	return fmt.Sprintf(`FILTER(%s IN (
    esco:hasEssentialSkill, esco:hasOptionalSkill,
    onet:requiresSkill, sg:requiresSkill, dv:requiresSkill
))`, v)
}

func occupationByLabelQuery(keyword string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?occupation ?label ?description ?framework
WHERE {
    ?occupation rdfs:label ?label .
    OPTIONAL { ?occupation dcterms:description ?description }
    OPTIONAL { ?occupation dv:fromFramework ?framework }
    FILTER(CONTAINS(LCASE(STR(?label)), LCASE("%s")))
}
LIMIT 50`, keyword)
}

func skillsForOccupationQuery(occupationURI string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?skill ?skillLabel ?skillType
WHERE {
    <%s> ?relation ?skill .
    ?skill rdfs:label ?skillLabel .
    BIND(
        IF(?relation = esco:hasEssentialSkill, "essential",
        IF(?relation = esco:hasOptionalSkill, "optional",
        "required")) AS ?skillType
    )
    %s
}
ORDER BY ?skillType ?skillLabel`, occupationURI, skillRelations("?relation"))
}

func similarOccupationsQuery(occupationURI string, minCommonSkills int) string {
	return prefixes + fmt.Sprintf(`
SELECT ?similarOcc ?occLabel (COUNT(DISTINCT ?sharedSkill) AS ?commonSkills)
WHERE {
    <%[1]s> ?rel1 ?sharedSkill .
    ?similarOcc ?rel2 ?sharedSkill .
    ?similarOcc rdfs:label ?occLabel .
    %[2]s
    %[3]s
    FILTER(?similarOcc != <%[1]s>)
}
GROUP BY ?similarOcc ?occLabel
HAVING (COUNT(DISTINCT ?sharedSkill) >= %[4]d)
ORDER BY DESC(?commonSkills)
LIMIT 20`, occupationURI, skillRelations("?rel1"), skillRelations("?rel2"), minCommonSkills)
}

func skillsByKeywordQuery(keyword string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?skill ?skillLabel ?description ?framework
WHERE {
    ?skill a ?skillType .
    ?skill rdfs:label ?skillLabel .
    OPTIONAL { ?skill dcterms:description ?description }
    OPTIONAL { ?skill dv:fromFramework ?framework }
    FILTER(?skillType IN (esco:Skill, dv:Skill))
    FILTER(
        CONTAINS(LCASE(STR(?skillLabel)), LCASE("%[1]s")) ||
        CONTAINS(LCASE(STR(?description)), LCASE("%[1]s"))
    )
}
LIMIT 50`, keyword)
}

func occupationsForSkillQuery(skillLabel string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?occupation ?occLabel ?skillType
WHERE {
    ?skill rdfs:label ?skillLabel .
    ?occupation ?relation ?skill .
    ?occupation rdfs:label ?occLabel .
    BIND(
        IF(?relation = esco:hasEssentialSkill, "essential",
        IF(?relation = esco:hasOptionalSkill, "optional",
        "required")) AS ?skillType
    )
    FILTER(LCASE(STR(?skillLabel)) = LCASE("%s"))
    %s
}
ORDER BY ?skillType ?occLabel
LIMIT 100`, skillLabel, skillRelations("?relation"))
}

func technologiesForOccupationQuery(occupationURI string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?technology ?techLabel ?techCategory ?isHot
WHERE {
    <%s> ?relation ?technology .
    ?technology rdfs:label ?techLabel .
    OPTIONAL { ?technology onet:technologyCategory ?techCategory }
    OPTIONAL { ?technology onet:hotTechnology ?isHot }
    FILTER(?relation IN (onet:usesTechnology, dv:usesTechnology))
}
ORDER BY DESC(?isHot) ?techCategory ?techLabel`, occupationURI)
}

func knowledgeForOccupationQuery(occupationURI string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?knowledge ?knowledgeLabel ?knowledgeGroup
WHERE {
    <%s> ?relation ?knowledge .
    ?knowledge rdfs:label ?knowledgeLabel .
    OPTIONAL { ?knowledge onet:knowledgeGroup ?knowledgeGroup }
    FILTER(?relation IN (onet:requiresKnowledge, dv:requiresKnowledge))
}
ORDER BY ?knowledgeGroup ?knowledgeLabel`, occupationURI)
}

func abilitiesForOccupationQuery(occupationURI string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?ability ?abilityLabel ?abilityGroup
WHERE {
    <%s> ?relation ?ability .
    ?ability rdfs:label ?abilityLabel .
    OPTIONAL { ?ability onet:abilityGroup ?abilityGroup }
    FILTER(?relation IN (onet:requiresAbility, dv:requiresAbility))
}
ORDER BY ?abilityGroup ?abilityLabel`, occupationURI)
}

func salaryForOccupationQuery(occupationURI string) string {
	return prefixes + `PREFIX schema: <http://schema.org/>
` + fmt.Sprintf(`
SELECT ?occupation ?label ?medianSalary ?salary10th ?salary90th ?jobOutlook
WHERE {
    <%[1]s> rdfs:label ?label .
    OPTIONAL { <%[1]s> schema:baseSalary|dv:medianSalary ?medianSalary }
    OPTIONAL { <%[1]s> onet:salary10thPercentile ?salary10th }
    OPTIONAL { <%[1]s> onet:salary90thPercentile ?salary90th }
    OPTIONAL { <%[1]s> onet:jobOutlook|dv:jobOutlook ?jobOutlook }
    BIND(<%[1]s> AS ?occupation)
}`, occupationURI)
}

func skillProficiencyQuery(occupationURI string) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?skill ?skillLabel ?proficiencyLevel
WHERE {
    <%[1]s> sg:requiresSkill ?skill .
    <%[1]s> sg:proficiencyLevel|dv:proficiencyLevel ?proficiencyLevel .
    ?skill rdfs:label ?skillLabel .
}
ORDER BY DESC(?proficiencyLevel) ?skillLabel`, occupationURI)
}

func frameworkCoverageQuery() string {
	return prefixes + `
SELECT ?framework (COUNT(DISTINCT ?entity) AS ?entityCount)
WHERE {
    ?entity dv:fromFramework ?framework .
}
GROUP BY ?framework
ORDER BY DESC(?entityCount)`
}
