package query

import "github.com/dechivo/skillgraph/fuseki"

// Occupation is one occupation row from the graph.
type Occupation struct {
	URI         string `json:"occupation"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Framework   string `json:"framework,omitempty"`
}

// Skill is one skill row, with the relationship normalized to a facet.
type Skill struct {
	URI         string `json:"skill"`
	Label       string `json:"label"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Framework   string `json:"framework,omitempty"`
}

// SkillSet groups an occupation's skills by facet. All holds every row once.
type SkillSet struct {
	Essential []Skill `json:"essential"`
	Optional  []Skill `json:"optional"`
	Required  []Skill `json:"required"`
	All       []Skill `json:"all"`
}

// Knowledge is one knowledge-area row (O*NET sourced).
type Knowledge struct {
	URI   string `json:"knowledge"`
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
}

// Ability is one ability row (O*NET sourced).
type Ability struct {
	URI   string `json:"ability"`
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
}

// Technology is one technology row (O*NET sourced).
type Technology struct {
	URI      string `json:"technology"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
	Hot      bool   `json:"hot"`
}

// OccupationMatch is an occupation that requires a given skill.
type OccupationMatch struct {
	URI       string `json:"occupation"`
	Label     string `json:"label"`
	SkillType string `json:"skill_type"`
}

// SimilarOccupation is an occupation sharing skills with a target.
type SimilarOccupation struct {
	URI           string  `json:"occupation"`
	Label         string  `json:"label"`
	CommonSkills  int     `json:"common_skills"`
	SimilarityPct float64 `json:"similarity_percentage"`
}

// SalaryData is an occupation's compensation and outlook (O*NET sourced).
type SalaryData struct {
	Found        bool   `json:"found"`
	URI          string `json:"occupation"`
	Label        string `json:"label"`
	MedianSalary string `json:"median_salary,omitempty"`
	Salary10th   string `json:"salary_10th_percentile,omitempty"`
	Salary90th   string `json:"salary_90th_percentile,omitempty"`
	JobOutlook   string `json:"job_outlook,omitempty"`
}

// SkillProficiency is one skill with its required proficiency level
// (Singapore sourced).
type SkillProficiency struct {
	URI   string `json:"skill"`
	Label string `json:"label"`
	Level string `json:"proficiency_level"`
}

// FrameworkCount is the number of entities one framework contributed.
type FrameworkCount struct {
	Framework string `json:"framework"`
	Entities  int    `json:"entities"`
}

// Profile is the aggregate view of one occupation.
type Profile struct {
	Found        bool                `json:"found"`
	Occupation   Occupation          `json:"occupation,omitempty"`
	Skills       SkillSet            `json:"skills"`
	Knowledge    []Knowledge         `json:"knowledge,omitempty"`
	Abilities    []Ability           `json:"abilities,omitempty"`
	Technologies []Technology        `json:"technologies,omitempty"`
	Salary       *SalaryData         `json:"salary_data,omitempty"`
	Similar      []SimilarOccupation `json:"similar_occupations,omitempty"`
}

// SkillGap compares the skill sets of two occupations.
type SkillGap struct {
	Found             bool       `json:"found"`
	CurrentOccupation Occupation `json:"current_occupation"`
	TargetOccupation  Occupation `json:"target_occupation"`
	Transferable      []string   `json:"transferable_skills"`
	ToAcquire         []string   `json:"skills_to_acquire"`
	Obsolete          []string   `json:"obsolete_skills"`
	OverlapPct        float64    `json:"skill_overlap_percentage"`
	TotalCurrent      int        `json:"total_current_skills"`
	TotalTarget       int        `json:"total_target_skills"`
	TotalToAcquire    int        `json:"total_to_acquire"`
}

// Suggestion is one recommended skill with its justification.
type Suggestion struct {
	Skill    string `json:"skill"`
	Type     string `json:"type"`
	Reason   string `json:"reason"`
	Category string `json:"category,omitempty"`
}

// Enrichment is the skill recommendation set for a job title.
type Enrichment struct {
	Found             bool         `json:"found"`
	Occupation        Occupation   `json:"occupation,omitempty"`
	MissingEssential  []Suggestion `json:"missing_essential_skills"`
	SuggestedOptional []Suggestion `json:"suggested_optional_skills"`
	Technologies      []Suggestion `json:"technology_suggestions"`
	TotalSuggestions  int          `json:"total_suggestions"`
	FrameworkSources  []string     `json:"framework_sources"`
}

func occupationFromBinding(b fuseki.Binding) Occupation {
	return Occupation{
		URI:         b["occupation"],
		Label:       b["label"],
		Description: b["description"],
		Framework:   b["framework"],
	}
}

func skillFromBinding(b fuseki.Binding) Skill {
	return Skill{
		URI:         b["skill"],
		Label:       b["skillLabel"],
		Type:        b["skillType"],
		Description: b["description"],
		Framework:   b["framework"],
	}
}

func knowledgeFromBinding(b fuseki.Binding) Knowledge {
	return Knowledge{
		URI:   b["knowledge"],
		Label: b["knowledgeLabel"],
		Group: b["knowledgeGroup"],
	}
}

func abilityFromBinding(b fuseki.Binding) Ability {
	return Ability{
		URI:   b["ability"],
		Label: b["abilityLabel"],
		Group: b["abilityGroup"],
	}
}

func technologyFromBinding(b fuseki.Binding) Technology {
	return Technology{
		URI:      b["technology"],
		Label:    b["techLabel"],
		Category: b["techCategory"],
		Hot:      b["isHot"] == "true",
	}
}
