package sfia

import "fmt"

const prefixes = `PREFIX sfia: <https://rdf.sfia-online.org/9/ontology/>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
`

func allSkillsQuery(limit, offset int) string {
	q := prefixes + `
SELECT ?skill ?code ?label ?category
WHERE {
    ?skill a sfia:Skill ;
           sfia:code ?code ;
           rdfs:label ?label .
    OPTIONAL { ?skill sfia:hasCategory ?categoryUri .
               ?categoryUri rdfs:label ?category }
}
ORDER BY ?label`
	if limit > 0 {
		q += fmt.Sprintf("\nLIMIT %d", limit)
	}
	if offset > 0 {
		q += fmt.Sprintf("\nOFFSET %d", offset)
	}
	return q
}

func skillByCodeQuery(code string) string {
	return prefixes + fmt.Sprintf(`
SELECT ?skill ?code ?label ?description ?category ?subcategory ?url
       ?level ?levelNumber ?levelDescription
WHERE {
    ?skill a sfia:Skill ;
           sfia:code "%[1]s" ;
           rdfs:label ?label .
    BIND("%[1]s" AS ?code)
    OPTIONAL { ?skill sfia:description ?description }
    OPTIONAL { ?skill sfia:url ?url }
    OPTIONAL {
        ?skill sfia:hasCategory ?categoryUri .
        ?categoryUri rdfs:label ?category
    }
    OPTIONAL {
        ?skill sfia:hasSubcategory ?subcategoryUri .
        ?subcategoryUri rdfs:label ?subcategory
    }
    OPTIONAL {
        ?skill sfia:hasSkillLevel ?level .
        ?level sfia:levelNumber ?levelNumber ;
               sfia:description ?levelDescription .
        OPTIONAL { ?level sfia:guidanceNotes ?guidanceNotes }
    }
}
ORDER BY ?levelNumber`, code)
}

func searchSkillsQuery(keyword string, limit int) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?skill ?code ?label ?category ?description
WHERE {
    ?skill a sfia:Skill ;
           sfia:code ?code ;
           rdfs:label ?label .
    OPTIONAL {
        ?skill sfia:hasCategory ?categoryUri .
        ?categoryUri rdfs:label ?category
    }
    OPTIONAL { ?skill sfia:description ?description }
    FILTER (
        CONTAINS(LCASE(STR(?label)), LCASE("%[1]s")) ||
        CONTAINS(LCASE(STR(?description)), LCASE("%[1]s"))
    )
}
ORDER BY ?label
LIMIT %[2]d`, keyword, limit)
}

func skillsByCategoryQuery(category string) string {
	return prefixes + fmt.Sprintf(`
SELECT ?skill ?code ?label ?subcategory
WHERE {
    ?skill a sfia:Skill ;
           sfia:code ?code ;
           rdfs:label ?label ;
           sfia:hasCategory ?categoryUri .
    ?categoryUri rdfs:label ?categoryLabel .
    FILTER(LCASE(STR(?categoryLabel)) = LCASE("%s"))
    OPTIONAL {
        ?skill sfia:hasSubcategory ?subcategoryUri .
        ?subcategoryUri rdfs:label ?subcategory
    }
}
ORDER BY ?subcategory ?label`, category)
}

func skillsByLevelQuery(level int) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?skill ?code ?label ?category
WHERE {
    ?skill a sfia:Skill ;
           sfia:code ?code ;
           rdfs:label ?label ;
           sfia:hasSkillLevel ?skillLevel .
    ?skillLevel sfia:levelNumber %d .
    OPTIONAL {
        ?skill sfia:hasCategory ?categoryUri .
        ?categoryUri rdfs:label ?category
    }
}
ORDER BY ?category ?label`, level)
}

func allCategoriesQuery() string {
	return prefixes + `
SELECT ?category ?label (COUNT(?skill) AS ?skillCount)
WHERE {
    ?category a sfia:Category ;
              rdfs:label ?label .
    OPTIONAL { ?skill sfia:hasCategory ?category }
}
GROUP BY ?category ?label
ORDER BY ?label`
}

func allLevelsQuery() string {
	return prefixes + `
SELECT ?level ?levelNumber ?label ?description
WHERE {
    ?level a sfia:Level ;
           sfia:levelNumber ?levelNumber ;
           rdfs:label ?label .
    OPTIONAL { ?level sfia:description ?description }
}
ORDER BY ?levelNumber`
}

func relatedSkillsQuery(code string, limit int) string {
	return prefixes + fmt.Sprintf(`
SELECT DISTINCT ?relatedSkill ?code ?label
WHERE {
    ?skill a sfia:Skill ;
           sfia:code "%s" .
    {
        ?skill sfia:hasCategory ?category .
        ?relatedSkill sfia:hasCategory ?category .
    } UNION {
        ?skill sfia:hasSubcategory ?subcategory .
        ?relatedSkill sfia:hasSubcategory ?subcategory .
    }
    ?relatedSkill sfia:code ?code ;
                  rdfs:label ?label .
    FILTER (?relatedSkill != ?skill)
}
ORDER BY ?label
LIMIT %d`, code, limit)
}

func countQuery(class string) string {
	return prefixes + fmt.Sprintf(
		"\nSELECT (COUNT(?x) AS ?count) WHERE { ?x a sfia:%s }", class)
}
