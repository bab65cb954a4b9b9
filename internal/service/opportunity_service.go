package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/jobsearch"

	"github.com/google/uuid"
)

const (
	certificateSkills    = 2
	certificatesPerSkill = 3
	maxCertificates      = 10
)

type IOpportunityService interface {
	Internships(ctx context.Context, userId uuid.UUID) (*dto.InternshipsResponse, error)
	Certificates(ctx context.Context, userId uuid.UUID) (*dto.CertificatesResponse, error)
}

type opportunityService struct {
	uowFactory unitofwork.RepositoryFactory
	searcher   jobsearch.Searcher
	cache      *jobsearch.Cache
	logger     logger.ILogger
}

func NewOpportunityService(
	uowFactory unitofwork.RepositoryFactory,
	searcher jobsearch.Searcher,
	cache *jobsearch.Cache,
	log logger.ILogger,
) IOpportunityService {
	return &opportunityService{
		uowFactory: uowFactory,
		searcher:   searcher,
		cache:      cache,
		logger:     log,
	}
}

// Internships lists entry level postings for the chosen role: local ones when the
// user's city and country are known, remote ones always. A failed search yields an
// empty list for that half.
func (s *opportunityService) Internships(ctx context.Context, userId uuid.UUID) (*dto.InternshipsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	assessment, err := findAssessment(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, apperror.NotFound(msgAssessmentRequired)
	}
	if assessment.PrimaryRole == nil || *assessment.PrimaryRole == "" {
		return nil, apperror.Validation("Please select a role from your assessment results before viewing internships")
	}
	role := *assessment.PrimaryRole

	var city, country string
	if user.HasLocation() {
		city, country = *user.City, *user.Country
	}

	key := s.cache.Key("internships", role, city, country)
	var cached dto.InternshipsResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	res := &dto.InternshipsResponse{
		Local:  []jobsearch.Posting{},
		Remote: []jobsearch.Posting{},
	}

	var (
		wg     sync.WaitGroup
		failed bool
		mu     sync.Mutex
	)
	search := func(text string, remote bool, preds []jobsearch.Predicate, dest *[]jobsearch.Posting) {
		defer wg.Done()
		jobs, err := s.searcher.Search(ctx, jobsearch.Query{Text: text, Page: 1, NumPages: 1, DatePosted: jobsearch.DatePostedMonth})
		if err != nil {
			s.logger.Warn("OPPORTUNITY", "Internship search failed", map[string]interface{}{
				"remote": remote,
				"error":  err.Error(),
			})
			mu.Lock()
			failed = true
			mu.Unlock()
			return
		}
		postings := make([]jobsearch.Posting, 0)
		for _, job := range jobsearch.Filter(jobs, preds...) {
			postings = append(postings, jobsearch.ToPosting(job, remote))
		}
		*dest = postings
	}

	if city != "" {
		res.UserLocation = &dto.UserLocation{City: city, Country: country}
		wg.Add(1)
		go search(strings.Join([]string{role, "internship", city, country}, " "), false,
			[]jobsearch.Predicate{jobsearch.EntryLevel}, &res.Local)
	}
	wg.Add(1)
	go search(role+" remote internship", true,
		[]jobsearch.Predicate{jobsearch.EntryLevel, jobsearch.Remote}, &res.Remote)
	wg.Wait()

	// partial results are served but not cached
	if !failed {
		s.cache.Set(ctx, key, res)
	}
	return res, nil
}

// Certificates searches courses for the top recommended skills and falls back to a
// curated list when the search fails or finds nothing.
func (s *opportunityService) Certificates(ctx context.Context, userId uuid.UUID) (*dto.CertificatesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	assessment, err := findAssessment(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.Analysis == nil || len(assessment.Analysis.RecommendedSkills) == 0 {
		return nil, apperror.NotFound(msgAssessmentRequired)
	}
	skills := assessment.Analysis.RecommendedSkills

	top := skills
	if len(top) > certificateSkills {
		top = top[:certificateSkills]
	}

	key := s.cache.Key(append([]string{"certificates"}, top...)...)
	var cached dto.CertificatesResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	certs := make([]dto.Certificate, 0)
	for _, skill := range top {
		jobs, err := s.searcher.Search(ctx, jobsearch.Query{Text: skill + " certification course", Page: 1, NumPages: 1})
		if err != nil {
			s.logger.Warn("OPPORTUNITY", "Certificate search failed, using curated list", map[string]interface{}{
				"skill": skill,
				"error": err.Error(),
			})
			return &dto.CertificatesResponse{Certificates: PopularCertifications(skills)}, nil
		}

		matched := jobsearch.Filter(jobs, jobsearch.Certification)
		if len(matched) > certificatesPerSkill {
			matched = matched[:certificatesPerSkill]
		}
		for _, job := range matched {
			certs = append(certs, dto.Certificate{
				Id:          job.ID,
				Title:       job.Title,
				Provider:    job.EmployerName,
				Skill:       skill,
				Description: jobsearch.Summary(job.Description),
				Link:        job.ApplyLink,
			})
		}
	}

	if len(certs) == 0 {
		return &dto.CertificatesResponse{Certificates: PopularCertifications(skills)}, nil
	}
	if len(certs) > maxCertificates {
		certs = certs[:maxCertificates]
	}

	res := &dto.CertificatesResponse{Certificates: certs}
	s.cache.Set(ctx, key, res)
	return res, nil
}

type curatedCourse struct {
	title    string
	provider string
	link     string
}

type curatedSkill struct {
	skill   string
	courses []curatedCourse
}

var curatedCertifications = []curatedSkill{
	{"JavaScript", []curatedCourse{
		{"JavaScript Algorithms and Data Structures", "freeCodeCamp", "https://www.freecodecamp.org/learn/javascript-algorithms-and-data-structures/"},
		{"Modern JavaScript From The Beginning", "Udemy", "https://www.udemy.com/course/modern-javascript-from-the-beginning/"},
	}},
	{"Python", []curatedCourse{
		{"Python for Everybody", "Coursera", "https://www.coursera.org/specializations/python"},
		{"Complete Python Bootcamp", "Udemy", "https://www.udemy.com/course/complete-python-bootcamp/"},
	}},
	{"React", []curatedCourse{
		{"React - The Complete Guide", "Udemy", "https://www.udemy.com/course/react-the-complete-guide-incl-redux/"},
		{"Meta Front-End Developer", "Coursera", "https://www.coursera.org/professional-certificates/meta-front-end-developer"},
	}},
	{"AWS", []curatedCourse{
		{"AWS Certified Solutions Architect", "AWS", "https://aws.amazon.com/certification/certified-solutions-architect-associate/"},
		{"AWS Fundamentals", "Coursera", "https://www.coursera.org/specializations/aws-fundamentals"},
	}},
	{"Data Science", []curatedCourse{
		{"IBM Data Science Professional Certificate", "Coursera", "https://www.coursera.org/professional-certificates/ibm-data-science"},
		{"Data Science Bootcamp", "Udemy", "https://www.udemy.com/course/the-data-science-course-complete-data-science-bootcamp/"},
	}},
}

var generalCertifications = []dto.Certificate{
	{
		Id:          "general-1",
		Title:       "Google IT Support Professional Certificate",
		Provider:    "Coursera",
		Skill:       "General IT",
		Description: "Foundational IT skills certification",
		Link:        "https://www.coursera.org/professional-certificates/google-it-support",
	},
	{
		Id:          "general-2",
		Title:       "CS50's Introduction to Computer Science",
		Provider:    "Harvard (edX)",
		Skill:       "Computer Science",
		Description: "Introduction to computer science and programming",
		Link:        "https://www.edx.org/course/introduction-computer-science-harvardx-cs50x",
	},
}

// PopularCertifications maps skills onto the curated list. A skill matches a curated
// entry when either name contains the other, ignoring case. Without any match the
// general certifications are returned.
func PopularCertifications(skills []string) []dto.Certificate {
	out := make([]dto.Certificate, 0)
	for i, skill := range skills {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}
		for _, entry := range curatedCertifications {
			key := strings.ToLower(entry.skill)
			if !strings.Contains(lower, key) && !strings.Contains(key, lower) {
				continue
			}
			for _, course := range entry.courses {
				out = append(out, dto.Certificate{
					Id:          fmt.Sprintf("fallback-%d-%s", i, course.title),
					Title:       course.title,
					Provider:    course.provider,
					Skill:       skill,
					Description: "Popular certification for " + skill,
					Link:        course.link,
				})
			}
			break
		}
	}

	if len(out) == 0 {
		return append([]dto.Certificate(nil), generalCertifications...)
	}
	return out
}
