package query

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dechivo/skillgraph/fuseki"
	"github.com/dechivo/skillgraph/store/cache"
)

const (
	defaultTimeout           = 10 * time.Second
	defaultMinCommonSkills   = 5
	profileMinCommonSkills   = 3
	maxOptionalSuggestions   = 10
	maxTechnologySuggestions = 5
)

// Service answers occupation and skill questions against one dataset.
// All operations degrade to empty results when the endpoint is unreachable
// or the service is disabled; use Status to tell the two apart.
type Service struct {
	client  *fuseki.Client
	dataset string
	cache   *cache.Cache
	timeout time.Duration
	enabled bool
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables result caching.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithTimeout overrides the per-query timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithEnabled toggles the service. A disabled service answers every
// operation with empty results and never touches the network.
func WithEnabled(enabled bool) Option {
	return func(s *Service) { s.enabled = enabled }
}

// NewService creates a query service over the given dataset.
func NewService(client *fuseki.Client, dataset string, opts ...Option) *Service {
	s := &Service{
		client:  client,
		dataset: dataset,
		timeout: defaultTimeout,
		enabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status reports whether the service is enabled and the endpoint reachable.
type Status struct {
	Enabled   bool `json:"enabled"`
	Connected bool `json:"connected"`
}

// Status checks connectivity without running a query.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{Enabled: s.enabled}
	if !s.enabled {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	st.Connected = s.client.Ping(ctx) == nil
	return st
}

// run executes a query with the configured timeout and cache. Endpoint
// errors are logged and swallowed; callers see empty results.
func (s *Service) run(ctx context.Context, operation, q string, keyParts ...string) []fuseki.Binding {
	if !s.enabled {
		return nil
	}

	key := ""
	if s.cache != nil {
		key = cache.QueryKey(s.dataset, operation, keyParts...)
		if v, ok := s.cache.Get(ctx, key); ok {
			return v.([]fuseki.Binding)
		}
	}

	qctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rows, err := s.client.Select(qctx, s.dataset, q)
	if err != nil {
		slog.Error("sparql query failed",
			slog.String("dataset", s.dataset),
			slog.String("operation", operation),
			slog.Any("error", err))
		return nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, rows)
	}
	return rows
}

// SearchOccupations finds occupations whose label contains the keyword,
// deduplicated by lowercase label across frameworks.
func (s *Service) SearchOccupations(ctx context.Context, keyword string) []Occupation {
	keyword = SanitizeKeyword(keyword)
	if keyword == "" {
		return nil
	}

	rows := s.run(ctx, "search_occupations", occupationByLabelQuery(keyword), keyword)
	seen := make(map[string]struct{}, len(rows))
	var results []Occupation
	for _, row := range rows {
		label := strings.ToLower(row["label"])
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		results = append(results, occupationFromBinding(row))
	}
	return results
}

// GetOccupationSkills returns an occupation's skills grouped by facet.
func (s *Service) GetOccupationSkills(ctx context.Context, occupationURI string) SkillSet {
	var set SkillSet
	if !ValidURI(occupationURI) {
		slog.Warn("rejecting invalid occupation uri", slog.String("uri", occupationURI))
		return set
	}

	rows := s.run(ctx, "occupation_skills", skillsForOccupationQuery(occupationURI), occupationURI)
	for _, row := range rows {
		skill := skillFromBinding(row)
		set.All = append(set.All, skill)
		switch skill.Type {
		case "essential":
			set.Essential = append(set.Essential, skill)
		case "optional":
			set.Optional = append(set.Optional, skill)
		default:
			set.Required = append(set.Required, skill)
		}
	}
	return set
}

// GetOccupationKnowledge returns the knowledge areas an occupation requires.
func (s *Service) GetOccupationKnowledge(ctx context.Context, occupationURI string) []Knowledge {
	if !ValidURI(occupationURI) {
		slog.Warn("rejecting invalid occupation uri", slog.String("uri", occupationURI))
		return nil
	}

	rows := s.run(ctx, "occupation_knowledge", knowledgeForOccupationQuery(occupationURI), occupationURI)
	knowledge := make([]Knowledge, 0, len(rows))
	for _, row := range rows {
		knowledge = append(knowledge, knowledgeFromBinding(row))
	}
	return knowledge
}

// GetOccupationAbilities returns the abilities an occupation requires.
func (s *Service) GetOccupationAbilities(ctx context.Context, occupationURI string) []Ability {
	if !ValidURI(occupationURI) {
		slog.Warn("rejecting invalid occupation uri", slog.String("uri", occupationURI))
		return nil
	}

	rows := s.run(ctx, "occupation_abilities", abilitiesForOccupationQuery(occupationURI), occupationURI)
	abilities := make([]Ability, 0, len(rows))
	for _, row := range rows {
		abilities = append(abilities, abilityFromBinding(row))
	}
	return abilities
}

// GetOccupationSalaryData returns salary percentiles and job outlook for an
// occupation where the source data carries them.
func (s *Service) GetOccupationSalaryData(ctx context.Context, occupationURI string) *SalaryData {
	if !ValidURI(occupationURI) {
		slog.Warn("rejecting invalid occupation uri", slog.String("uri", occupationURI))
		return &SalaryData{Found: false}
	}

	rows := s.run(ctx, "occupation_salary", salaryForOccupationQuery(occupationURI), occupationURI)
	if len(rows) == 0 {
		return &SalaryData{Found: false}
	}
	row := rows[0]
	hasData := row["medianSalary"] != "" || row["salary10th"] != "" ||
		row["salary90th"] != "" || row["jobOutlook"] != ""
	return &SalaryData{
		Found:        hasData,
		URI:          row["occupation"],
		Label:        row["label"],
		MedianSalary: row["medianSalary"],
		Salary10th:   row["salary10th"],
		Salary90th:   row["salary90th"],
		JobOutlook:   row["jobOutlook"],
	}
}

// GetSkillProficiencyLevels returns an occupation's skills with their
// required proficiency levels, highest first.
func (s *Service) GetSkillProficiencyLevels(ctx context.Context, occupationURI string) []SkillProficiency {
	if !ValidURI(occupationURI) {
		slog.Warn("rejecting invalid occupation uri", slog.String("uri", occupationURI))
		return nil
	}

	rows := s.run(ctx, "skill_proficiency", skillProficiencyQuery(occupationURI), occupationURI)
	levels := make([]SkillProficiency, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, SkillProficiency{
			URI:   row["skill"],
			Label: row["skillLabel"],
			Level: row["proficiencyLevel"],
		})
	}
	return levels
}

// FrameworkCoverage counts the entities each source framework contributed.
func (s *Service) FrameworkCoverage(ctx context.Context) []FrameworkCount {
	rows := s.run(ctx, "framework_coverage", frameworkCoverageQuery())
	counts := make([]FrameworkCount, 0, len(rows))
	for _, row := range rows {
		n, _ := strconv.Atoi(row["entityCount"])
		counts = append(counts, FrameworkCount{Framework: row["framework"], Entities: n})
	}
	return counts
}

// FindSkillsByKeyword searches skills by label or description.
func (s *Service) FindSkillsByKeyword(ctx context.Context, keyword string) []Skill {
	keyword = SanitizeKeyword(keyword)
	if keyword == "" {
		return nil
	}

	rows := s.run(ctx, "skills_by_keyword", skillsByKeywordQuery(keyword), keyword)
	skills := make([]Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, skillFromBinding(row))
	}
	return skills
}

// GetOccupationsRequiringSkill finds every occupation linked to a skill
// with the given label.
func (s *Service) GetOccupationsRequiringSkill(ctx context.Context, skillName string) []OccupationMatch {
	skillName = SanitizeKeyword(skillName)
	if skillName == "" {
		return nil
	}

	rows := s.run(ctx, "occupations_for_skill", occupationsForSkillQuery(skillName), skillName)
	matches := make([]OccupationMatch, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, OccupationMatch{
			URI:       row["occupation"],
			Label:     row["occLabel"],
			SkillType: row["skillType"],
		})
	}
	return matches
}

// FindSimilarOccupations finds occupations sharing at least minCommonSkills
// skills with the named occupation and scores each by the share of the
// target's skills it covers.
func (s *Service) FindSimilarOccupations(ctx context.Context, occupationLabel string, minCommonSkills int) []SimilarOccupation {
	if minCommonSkills <= 0 {
		minCommonSkills = defaultMinCommonSkills
	}

	occupations := s.SearchOccupations(ctx, occupationLabel)
	if len(occupations) == 0 {
		return nil
	}
	target := occupations[0]
	if !ValidURI(target.URI) {
		return nil
	}

	totalSkills := len(s.GetOccupationSkills(ctx, target.URI).All)

	rows := s.run(ctx, "similar_occupations",
		similarOccupationsQuery(target.URI, minCommonSkills),
		target.URI, strconv.Itoa(minCommonSkills))
	similar := make([]SimilarOccupation, 0, len(rows))
	for _, row := range rows {
		common, _ := strconv.Atoi(row["commonSkills"])
		occ := SimilarOccupation{
			URI:          row["similarOcc"],
			Label:        row["occLabel"],
			CommonSkills: common,
		}
		if totalSkills > 0 {
			occ.SimilarityPct = math.Round(float64(common)/float64(totalSkills)*1000) / 10
		}
		similar = append(similar, occ)
	}
	return similar
}

// GetOccupationCompleteProfile aggregates everything known about the best
// label match: skills, knowledge, abilities, technologies, salary data and
// similar occupations.
func (s *Service) GetOccupationCompleteProfile(ctx context.Context, occupationLabel string) *Profile {
	occupations := s.SearchOccupations(ctx, occupationLabel)
	if len(occupations) == 0 || !ValidURI(occupations[0].URI) {
		return &Profile{Found: false}
	}

	target := occupations[0]
	profile := &Profile{
		Found:      true,
		Occupation: target,
		Skills:     s.GetOccupationSkills(ctx, target.URI),
		Knowledge:  s.GetOccupationKnowledge(ctx, target.URI),
		Abilities:  s.GetOccupationAbilities(ctx, target.URI),
	}
	if salary := s.GetOccupationSalaryData(ctx, target.URI); salary.Found {
		profile.Salary = salary
	}

	for _, row := range s.run(ctx, "occupation_technologies",
		technologiesForOccupationQuery(target.URI), target.URI) {
		profile.Technologies = append(profile.Technologies, technologyFromBinding(row))
	}

	for _, row := range s.run(ctx, "similar_occupations",
		similarOccupationsQuery(target.URI, profileMinCommonSkills),
		target.URI, strconv.Itoa(profileMinCommonSkills)) {
		common, _ := strconv.Atoi(row["commonSkills"])
		profile.Similar = append(profile.Similar, SimilarOccupation{
			URI:          row["similarOcc"],
			Label:        row["occLabel"],
			CommonSkills: common,
		})
	}
	return profile
}

// CalculateSkillGap compares two occupations' skill sets and reports what
// transfers, what must be acquired and what becomes obsolete.
func (s *Service) CalculateSkillGap(ctx context.Context, currentOccupation, targetOccupation string) *SkillGap {
	current := s.GetOccupationCompleteProfile(ctx, currentOccupation)
	target := s.GetOccupationCompleteProfile(ctx, targetOccupation)
	if !current.Found || !target.Found {
		return &SkillGap{Found: false}
	}

	currentSet := labelSet(current.Skills.All)
	targetSet := labelSet(target.Skills.All)

	gap := &SkillGap{
		Found:             true,
		CurrentOccupation: current.Occupation,
		TargetOccupation:  target.Occupation,
		Transferable:      intersect(currentSet, targetSet),
		ToAcquire:         subtract(targetSet, currentSet),
		Obsolete:          subtract(currentSet, targetSet),
		TotalCurrent:      len(currentSet),
		TotalTarget:       len(targetSet),
	}
	gap.TotalToAcquire = len(gap.ToAcquire)
	if len(targetSet) > 0 {
		gap.OverlapPct = math.Round(float64(len(gap.Transferable))/float64(len(targetSet))*1000) / 10
	}
	return gap
}

// EnrichSkills recommends skills for a job title that are absent from an
// existing skill list: missing essential skills first, then a bounded set
// of optional skills and technologies.
func (s *Service) EnrichSkills(ctx context.Context, jobTitle string, existingSkills []string) *Enrichment {
	profile := s.GetOccupationCompleteProfile(ctx, jobTitle)
	if !profile.Found {
		return &Enrichment{Found: false}
	}

	existing := make(map[string]struct{}, len(existingSkills))
	for _, skill := range existingSkills {
		existing[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}
	has := func(label string) bool {
		_, ok := existing[strings.ToLower(strings.TrimSpace(label))]
		return ok
	}

	enrichment := &Enrichment{Found: true, Occupation: profile.Occupation}

	for _, skill := range profile.Skills.Essential {
		if skill.Label == "" || has(skill.Label) {
			continue
		}
		enrichment.MissingEssential = append(enrichment.MissingEssential, Suggestion{
			Skill:  skill.Label,
			Type:   "essential",
			Reason: "marked as an essential skill for this occupation",
		})
	}

	optional := profile.Skills.Optional
	if len(optional) > maxOptionalSuggestions {
		optional = optional[:maxOptionalSuggestions]
	}
	for _, skill := range optional {
		if skill.Label == "" || has(skill.Label) {
			continue
		}
		enrichment.SuggestedOptional = append(enrichment.SuggestedOptional, Suggestion{
			Skill:  skill.Label,
			Type:   "optional",
			Reason: "commonly associated with this occupation",
		})
	}

	technologies := profile.Technologies
	if len(technologies) > maxTechnologySuggestions {
		technologies = technologies[:maxTechnologySuggestions]
	}
	for _, tech := range technologies {
		if tech.Label == "" || has(tech.Label) {
			continue
		}
		reason := "commonly used technology"
		if tech.Hot {
			reason = "trending technology"
		}
		category := tech.Category
		if category == "" {
			category = "General"
		}
		enrichment.Technologies = append(enrichment.Technologies, Suggestion{
			Skill:    tech.Label,
			Type:     "technology",
			Reason:   reason,
			Category: category,
		})
	}

	enrichment.TotalSuggestions = len(enrichment.MissingEssential) +
		len(enrichment.SuggestedOptional) + len(enrichment.Technologies)

	sources := make(map[string]struct{})
	for _, skill := range profile.Skills.All {
		if skill.Framework != "" {
			sources[skill.Framework] = struct{}{}
		}
	}
	for source := range sources {
		enrichment.FrameworkSources = append(enrichment.FrameworkSources, source)
	}
	sort.Strings(enrichment.FrameworkSources)

	return enrichment
}

func labelSet(skills []Skill) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		if skill.Label != "" {
			set[strings.ToLower(skill.Label)] = struct{}{}
		}
	}
	return set
}

func intersect(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func subtract(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
