package analysis

import (
	"fmt"
)

// QuestionLayer is one layer of generated validation questions.
type QuestionLayer struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

// ParseValidationQuestions requires exactly expectedLayers layers, each with at
// least one question.
func ParseValidationQuestions(text string, expectedLayers int) ([]QuestionLayer, error) {
	doc, _, err := decodeObject(text)
	if err != nil {
		return nil, err
	}

	layers := doc.Get("layers")
	if !layers.IsArray() {
		return nil, fmt.Errorf("%w: missing layers", ErrMalformed)
	}

	items := layers.Array()
	if len(items) != expectedLayers {
		return nil, fmt.Errorf("%w: expected %d layers, got %d", ErrMalformed, expectedLayers, len(items))
	}

	out := make([]QuestionLayer, 0, len(items))
	for i, item := range items {
		layer := QuestionLayer{
			ID:        str(item.Get("id")),
			Name:      str(item.Get("name")),
			Questions: stringList(item.Get("questions")),
		}
		if len(layer.Questions) == 0 {
			return nil, fmt.Errorf("%w: layer %d has no questions", ErrMalformed, i+1)
		}
		out = append(out, layer)
	}
	return out, nil
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
}

// ResumeProfile is the structured view of an uploaded resume.
type ResumeProfile struct {
	Name                   string       `json:"name"`
	Email                  string       `json:"email,omitempty"`
	Phone                  string       `json:"phone,omitempty"`
	Summary                string       `json:"summary"`
	Skills                 []string     `json:"skills"`
	Experience             []Experience `json:"experience"`
	Education              []Education  `json:"education"`
	Projects               []Project    `json:"projects"`
	Certifications         []string     `json:"certifications"`
	TotalYearsOfExperience float64      `json:"totalYearsOfExperience"`
	PrimaryDomain          string       `json:"primaryDomain"`
}

func ParseResumeProfile(text string) (*ResumeProfile, error) {
	doc, _, err := decodeObject(text)
	if err != nil {
		return nil, err
	}
	if !doc.Get("skills").Exists() {
		return nil, fmt.Errorf("%w: resume profile has no skills", ErrMalformed)
	}

	p := &ResumeProfile{
		Name:                   str(doc.Get("name")),
		Email:                  str(doc.Get("email")),
		Phone:                  str(doc.Get("phone")),
		Summary:                str(doc.Get("summary")),
		Skills:                 stringList(doc.Get("skills")),
		Experience:             make([]Experience, 0),
		Education:              make([]Education, 0),
		Projects:               make([]Project, 0),
		Certifications:         stringList(doc.Get("certifications")),
		TotalYearsOfExperience: doc.Get("totalYearsOfExperience").Float(),
		PrimaryDomain:          str(doc.Get("primaryDomain")),
	}
	if p.TotalYearsOfExperience < 0 {
		p.TotalYearsOfExperience = 0
	}

	for _, item := range doc.Get("experience").Array() {
		if !item.IsObject() {
			continue
		}
		p.Experience = append(p.Experience, Experience{
			Title:       str(item.Get("title")),
			Company:     str(item.Get("company")),
			Duration:    str(item.Get("duration")),
			Description: str(item.Get("description")),
		})
	}

	for _, item := range doc.Get("education").Array() {
		if !item.IsObject() {
			continue
		}
		p.Education = append(p.Education, Education{
			Degree:      str(item.Get("degree")),
			Institution: str(item.Get("institution")),
			Year:        str(item.Get("year")),
		})
	}

	for _, item := range doc.Get("projects").Array() {
		if !item.IsObject() {
			continue
		}
		p.Projects = append(p.Projects, Project{
			Name:         str(item.Get("name")),
			Description:  str(item.Get("description")),
			Technologies: stringList(item.Get("technologies")),
		})
	}

	return p, nil
}

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location,omitempty"`
}

// IndustryInsight is the shared market overview for one industry.
type IndustryInsight struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

func ParseIndustryInsight(text string) (*IndustryInsight, error) {
	doc, _, err := decodeObject(text)
	if err != nil {
		return nil, err
	}

	insight := &IndustryInsight{
		SalaryRanges:      make([]SalaryRange, 0),
		GrowthRate:        doc.Get("growthRate").Float(),
		DemandLevel:       str(doc.Get("demandLevel")),
		TopSkills:         stringList(doc.Get("topSkills")),
		MarketOutlook:     str(doc.Get("marketOutlook")),
		KeyTrends:         stringList(doc.Get("keyTrends")),
		RecommendedSkills: stringList(doc.Get("recommendedSkills")),
	}

	for _, item := range doc.Get("salaryRanges").Array() {
		if !item.IsObject() {
			continue
		}
		insight.SalaryRanges = append(insight.SalaryRanges, SalaryRange{
			Role:     str(item.Get("role")),
			Min:      item.Get("min").Float(),
			Max:      item.Get("max").Float(),
			Median:   item.Get("median").Float(),
			Location: str(item.Get("location")),
		})
	}

	return insight, nil
}
