package jobsearch

import "strings"

const (
	descriptionLimit = 200
	noDescription    = "No description available"
)

// Posting is the trimmed listing handed to clients.
type Posting struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ApplyLink      string `json:"applyLink"`
	PostedDate     string `json:"postedDate"`
	EmploymentType string `json:"employmentType"`
	IsRemote       bool   `json:"isRemote"`
}

// ToPosting maps a raw job. Remote postings always report "Remote" as location.
func ToPosting(job Job, remote bool) Posting {
	location := "Remote"
	if !remote {
		location = Location(job)
	}
	return Posting{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.EmployerName,
		Location:       location,
		Description:    Summary(job.Description),
		ApplyLink:      job.ApplyLink,
		PostedDate:     job.PostedAt,
		EmploymentType: job.EmploymentType,
		IsRemote:       remote,
	}
}

func Location(job Job) string {
	switch {
	case job.City != "" && job.Country != "":
		return job.City + ", " + job.Country
	case job.Country != "":
		return job.Country
	default:
		return "Remote"
	}
}

// Summary cuts a description to its first 200 characters.
func Summary(description string) string {
	if description == "" {
		return noDescription
	}
	runes := []rune(description)
	if len(runes) > descriptionLimit {
		runes = runes[:descriptionLimit]
	}
	return string(runes) + "..."
}

type Predicate func(Job) bool

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// EntryLevel matches internships and junior positions.
func EntryLevel(job Job) bool {
	title := strings.ToLower(job.Title)
	description := strings.ToLower(job.Description)
	return containsAny(title, "intern", "entry", "fresher", "junior", "graduate") ||
		strings.Contains(description, "internship")
}

func Remote(job Job) bool {
	return strings.Contains(strings.ToLower(job.Title), "remote") ||
		strings.Contains(strings.ToLower(job.Description), "remote")
}

// Certification matches course and training listings.
func Certification(job Job) bool {
	title := strings.ToLower(job.Title)
	description := strings.ToLower(job.Description)
	return containsAny(title, "certif", "course", "training") ||
		containsAny(description, "certification", "course")
}

// Filter keeps the jobs matching every predicate, in order.
func Filter(jobs []Job, preds ...Predicate) []Job {
	out := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		keep := true
		for _, p := range preds {
			if !p(job) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, job)
		}
	}
	return out
}
