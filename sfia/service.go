// Package sfia serves the SFIA skill framework from its own Fuseki dataset:
// skill lookups by code, keyword search, category and responsibility-level
// navigation. It follows the same degradation rules as the occupation query
// service: endpoint failures yield empty results, never errors.
package sfia

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dechivo/skillgraph/fuseki"
	"github.com/dechivo/skillgraph/query"
	"github.com/dechivo/skillgraph/store/cache"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultSearchLimit  = 50
	defaultRelatedLimit = 10

	// SFIA defines seven levels of responsibility.
	MinLevel = 1
	MaxLevel = 7
)

// Skill is one SFIA skill row.
type Skill struct {
	URI         string `json:"skill"`
	Code        string `json:"code"`
	Label       string `json:"label"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Level is one responsibility level at which a skill is defined.
type Level struct {
	Number      int    `json:"level"`
	Description string `json:"description,omitempty"`
	Label       string `json:"label,omitempty"`
}

// SkillDetail is a skill with its full level table.
type SkillDetail struct {
	Skill
	Levels []Level `json:"levels"`
}

// Category is one SFIA category with its skill count.
type Category struct {
	URI        string `json:"category"`
	Label      string `json:"label"`
	SkillCount int    `json:"skill_count"`
}

// Stats summarizes the SFIA dataset contents.
type Stats struct {
	Skills      int `json:"skills"`
	Categories  int `json:"categories"`
	Levels      int `json:"levels"`
	SkillLevels int `json:"skill_levels"`
}

// Service answers SFIA skill questions against one dataset.
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

// WithEnabled toggles the service.
func WithEnabled(enabled bool) Option {
	return func(s *Service) { s.enabled = enabled }
}

// NewService creates a SFIA service over the given dataset.
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

// sanitizeCode reduces a skill code to letters and digits. SFIA codes are
// short uppercase mnemonics like PROG or DAAN.
func sanitizeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

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
		slog.Error("sfia query failed",
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

func skillFromBinding(b fuseki.Binding) Skill {
	return Skill{
		URI:         b["skill"],
		Code:        b["code"],
		Label:       b["label"],
		Category:    b["category"],
		Subcategory: b["subcategory"],
		Description: b["description"],
		URL:         b["url"],
	}
}

// GetAllSkills lists skills ordered by label, with optional pagination.
func (s *Service) GetAllSkills(ctx context.Context, limit, offset int) []Skill {
	rows := s.run(ctx, "all_skills", allSkillsQuery(limit, offset),
		strconv.Itoa(limit), strconv.Itoa(offset))
	skills := make([]Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, skillFromBinding(row))
	}
	return skills
}

// GetSkillByCode returns a skill with its level table, or nil when the code
// is unknown.
func (s *Service) GetSkillByCode(ctx context.Context, code string) *SkillDetail {
	code = sanitizeCode(code)
	if code == "" {
		return nil
	}

	rows := s.run(ctx, "skill_by_code", skillByCodeQuery(code), code)
	if len(rows) == 0 {
		return nil
	}

	detail := &SkillDetail{Skill: skillFromBinding(rows[0])}
	seen := make(map[int]struct{})
	for _, row := range rows {
		number, err := strconv.Atoi(row["levelNumber"])
		if err != nil {
			continue
		}
		if _, dup := seen[number]; dup {
			continue
		}
		seen[number] = struct{}{}
		detail.Levels = append(detail.Levels, Level{
			Number:      number,
			Description: row["levelDescription"],
		})
	}
	return detail
}

// SearchSkills finds skills whose label or description contains the keyword.
func (s *Service) SearchSkills(ctx context.Context, keyword string, limit int) []Skill {
	keyword = query.SanitizeKeyword(keyword)
	if keyword == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows := s.run(ctx, "search_skills", searchSkillsQuery(keyword, limit),
		keyword, strconv.Itoa(limit))
	skills := make([]Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, skillFromBinding(row))
	}
	return skills
}

// GetSkillsByCategory lists the skills in one category.
func (s *Service) GetSkillsByCategory(ctx context.Context, category string) []Skill {
	category = query.SanitizeKeyword(category)
	if category == "" {
		return nil
	}

	rows := s.run(ctx, "skills_by_category", skillsByCategoryQuery(category), category)
	skills := make([]Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, skillFromBinding(row))
	}
	return skills
}

// GetSkillsByLevel lists skills defined at a responsibility level (1-7).
func (s *Service) GetSkillsByLevel(ctx context.Context, level int) []Skill {
	if level < MinLevel || level > MaxLevel {
		slog.Warn("sfia level out of range", slog.Int("level", level))
		return nil
	}

	rows := s.run(ctx, "skills_by_level", skillsByLevelQuery(level), strconv.Itoa(level))
	skills := make([]Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, skillFromBinding(row))
	}
	return skills
}

// GetAllCategories lists categories with skill counts.
func (s *Service) GetAllCategories(ctx context.Context) []Category {
	rows := s.run(ctx, "all_categories", allCategoriesQuery())
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		count, _ := strconv.Atoi(row["skillCount"])
		categories = append(categories, Category{
			URI:        row["category"],
			Label:      row["label"],
			SkillCount: count,
		})
	}
	return categories
}

// GetAllLevels lists the seven responsibility levels.
func (s *Service) GetAllLevels(ctx context.Context) []Level {
	rows := s.run(ctx, "all_levels", allLevelsQuery())
	levels := make([]Level, 0, len(rows))
	for _, row := range rows {
		number, err := strconv.Atoi(row["levelNumber"])
		if err != nil {
			continue
		}
		levels = append(levels, Level{
			Number:      number,
			Label:       row["label"],
			Description: row["description"],
		})
	}
	return levels
}

// GetRelatedSkills finds skills sharing a category or subcategory with the
// coded skill.
func (s *Service) GetRelatedSkills(ctx context.Context, code string, limit int) []Skill {
	code = sanitizeCode(code)
	if code == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	rows := s.run(ctx, "related_skills", relatedSkillsQuery(code, limit),
		code, strconv.Itoa(limit))
	skills := make([]Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, Skill{
			URI:   row["relatedSkill"],
			Code:  row["code"],
			Label: row["label"],
		})
	}
	return skills
}

// Stats counts the dataset's skills, categories, levels and skill-level
// definitions.
func (s *Service) Stats(ctx context.Context) *Stats {
	count := func(class string) int {
		rows := s.run(ctx, "count_"+strings.ToLower(class), countQuery(class), class)
		if len(rows) == 0 {
			return 0
		}
		n, _ := strconv.Atoi(rows[0]["count"])
		return n
	}
	return &Stats{
		Skills:      count("Skill"),
		Categories:  count("Category"),
		Levels:      count("Level"),
		SkillLevels: count("SkillLevel"),
	}
}
