package analysis

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

const UserTypeExperienced = "EXPERIENCED"

type Industry struct {
	Industry string  `json:"industry"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason,omitempty"`
}

type Role struct {
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
	MatchReason string `json:"matchReason,omitempty"`
}

type Country struct {
	Country     string `json:"country"`
	DemandLevel string `json:"demandLevel,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type SkillGap struct {
	Skill    string `json:"skill"`
	Priority string `json:"priority,omitempty"`
}

// ValidationScore is only present for resume validation results. Values are 0-100.
type ValidationScore struct {
	Overall             float64 `json:"overall"`
	SkillAuthenticity   float64 `json:"skillAuthenticity"`
	PracticalAbility    float64 `json:"practicalAbility"`
	CrossSkillReasoning float64 `json:"crossSkillReasoning"`
	ConfidenceAlignment float64 `json:"confidenceAlignment"`
}

// Analysis is the career analysis document. Every field is optional in model
// output; after Parse the slices are never nil.
type Analysis struct {
	PrimaryProfile        string           `json:"primaryProfile"`
	Summary               string           `json:"summary"`
	RecommendedIndustries []Industry       `json:"recommendedIndustries"`
	RecommendedRoles      []Role           `json:"recommendedRoles"`
	RecommendedCountries  []Country        `json:"recommendedCountries"`
	IdentifiedSkills      []string         `json:"identifiedSkills"`
	RecommendedSkills     []string         `json:"recommendedSkills"`
	SkillGap              []SkillGap       `json:"skillGap"`
	PersonalDevelopment   []string         `json:"personalDevelopment"`
	ValidationScore       *ValidationScore `json:"validationScore,omitempty"`
	ResumeAuthenticity    string           `json:"resumeAuthenticity,omitempty"`
	CurrentStrengths      []string         `json:"currentStrengths,omitempty"`
	AreasOfConcern        []string         `json:"areasOfConcern,omitempty"`
	UserType              string           `json:"userType,omitempty"`
}

// Parse reads a model response into an Analysis. Unknown or mistyped fields
// fall back to their zero values; only a response that is not a JSON object
// is rejected.
func Parse(text string) (*Analysis, json.RawMessage, error) {
	doc, clean, err := decodeObject(text)
	if err != nil {
		return nil, nil, err
	}

	a := &Analysis{
		PrimaryProfile:      str(doc.Get("primaryProfile")),
		Summary:             str(doc.Get("summary")),
		IdentifiedSkills:    stringList(doc.Get("identifiedSkills")),
		RecommendedSkills:   stringList(doc.Get("recommendedSkills")),
		PersonalDevelopment: stringList(doc.Get("personalDevelopment")),
		ResumeAuthenticity:  str(doc.Get("resumeAuthenticity")),
		UserType:            str(doc.Get("userType")),
	}

	for _, item := range doc.Get("recommendedIndustries").Array() {
		if name := str(item.Get("industry")); name != "" {
			a.RecommendedIndustries = append(a.RecommendedIndustries, Industry{
				Industry: name,
				Score:    percent(item.Get("score")),
				Reason:   str(item.Get("reason")),
			})
		}
	}

	for _, item := range doc.Get("recommendedRoles").Array() {
		if name := str(item.Get("role")); name != "" {
			a.RecommendedRoles = append(a.RecommendedRoles, Role{
				Role:        name,
				Description: str(item.Get("description")),
				MatchReason: str(item.Get("matchReason")),
			})
		}
	}

	for _, item := range doc.Get("recommendedCountries").Array() {
		if name := str(item.Get("country")); name != "" {
			a.RecommendedCountries = append(a.RecommendedCountries, Country{
				Country:     name,
				DemandLevel: str(item.Get("demandLevel")),
				Reason:      str(item.Get("reason")),
			})
		}
	}

	for _, item := range doc.Get("skillGap").Array() {
		switch {
		case item.IsObject():
			if skill := str(item.Get("skill")); skill != "" {
				a.SkillGap = append(a.SkillGap, SkillGap{Skill: skill, Priority: str(item.Get("priority"))})
			}
		case item.Type == gjson.String:
			if skill := str(item); skill != "" {
				a.SkillGap = append(a.SkillGap, SkillGap{Skill: skill})
			}
		}
	}

	if vs := doc.Get("validationScore"); vs.IsObject() {
		a.ValidationScore = &ValidationScore{
			Overall:             percent(vs.Get("overall")),
			SkillAuthenticity:   percent(vs.Get("skillAuthenticity")),
			PracticalAbility:    percent(vs.Get("practicalAbility")),
			CrossSkillReasoning: percent(vs.Get("crossSkillReasoning")),
			ConfidenceAlignment: percent(vs.Get("confidenceAlignment")),
		}
	}

	if strengths := doc.Get("currentStrengths"); strengths.Exists() {
		a.CurrentStrengths = stringList(strengths)
	}
	if concerns := doc.Get("areasOfConcern"); concerns.Exists() {
		a.AreasOfConcern = stringList(concerns)
	}

	a.Normalize()
	return a, json.RawMessage(clean), nil
}

// Normalize replaces nil slices with empty ones.
func (a *Analysis) Normalize() {
	if a.RecommendedIndustries == nil {
		a.RecommendedIndustries = []Industry{}
	}
	if a.RecommendedRoles == nil {
		a.RecommendedRoles = []Role{}
	}
	if a.RecommendedCountries == nil {
		a.RecommendedCountries = []Country{}
	}
	if a.IdentifiedSkills == nil {
		a.IdentifiedSkills = []string{}
	}
	if a.RecommendedSkills == nil {
		a.RecommendedSkills = []string{}
	}
	if a.SkillGap == nil {
		a.SkillGap = []SkillGap{}
	}
	if a.PersonalDevelopment == nil {
		a.PersonalDevelopment = []string{}
	}
}

// FindRole looks up a recommended role by name, ignoring case and surrounding space.
func (a *Analysis) FindRole(name string) (Role, bool) {
	name = strings.TrimSpace(name)
	for _, role := range a.RecommendedRoles {
		if strings.EqualFold(role.Role, name) {
			return role, true
		}
	}
	return Role{}, false
}
