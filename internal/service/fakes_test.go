package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/repository/contract"
	"career-compass-be/internal/repository/specification"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/events"
	"career-compass-be/pkg/llm"

	"github.com/google/uuid"
)

// memoryStore backs the fake repositories of every unit of work it hands out.
type memoryStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*entity.User
	assessments map[uuid.UUID]*entity.CareerAssessment // by user
	roadmaps    map[uuid.UUID]*entity.CareerRoadmap    // by user
	feedbacks   map[uuid.UUID]*entity.AssessmentFeedback
	insights    map[string]*entity.IndustryInsight

	failFind error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:       map[uuid.UUID]*entity.User{},
		assessments: map[uuid.UUID]*entity.CareerAssessment{},
		roadmaps:    map[uuid.UUID]*entity.CareerRoadmap{},
		feedbacks:   map[uuid.UUID]*entity.AssessmentFeedback{},
		insights:    map[string]*entity.IndustryInsight{},
	}
}

func (m *memoryStore) addUser(u *entity.User) *entity.User {
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	m.users[u.Id] = u
	return u
}

func (m *memoryStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{store: m}
}

var _ unitofwork.RepositoryFactory = &memoryStore{}

type memoryUnitOfWork struct {
	store *memoryStore
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error                   { return nil }
func (u *memoryUnitOfWork) Rollback() error                 { return nil }

func (u *memoryUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{u.store}
}
func (u *memoryUnitOfWork) AssessmentRepository() contract.AssessmentRepository {
	return &fakeAssessmentRepo{u.store}
}
func (u *memoryUnitOfWork) RoadmapRepository() contract.RoadmapRepository {
	return &fakeRoadmapRepo{u.store}
}
func (u *memoryUnitOfWork) FeedbackRepository() contract.FeedbackRepository {
	return &fakeFeedbackRepo{u.store}
}
func (u *memoryUnitOfWork) IndustryInsightRepository() contract.IndustryInsightRepository {
	return &fakeInsightRepo{u.store}
}

type fakeUserRepo struct{ s *memoryStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ExternalId == user.ExternalId || (user.Email != "" && u.Email == user.Email) {
			return contract.ErrDuplicate
		}
	}
	c := *user
	r.s.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *user
	r.s.users[user.Id] = &c
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failFind != nil {
		return nil, r.s.failFind
	}
	for _, u := range r.s.users {
		match := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByID:
				match = match && u.Id == sp.ID
			case specification.ByExternalID:
				match = match && u.ExternalId == sp.ExternalID
			case specification.ByEmail:
				match = match && u.Email == sp.Email
			}
		}
		if match {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateUserType(ctx context.Context, id uuid.UUID, userType entity.UserType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return contract.ErrNotFound
	}
	u.UserType = &userType
	return nil
}

type fakeAssessmentRepo struct{ s *memoryStore }

func (r *fakeAssessmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerAssessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failFind != nil {
		return nil, r.s.failFind
	}
	for _, a := range r.s.assessments {
		match := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByID:
				match = match && a.Id == sp.ID
			case specification.UserOwnedBy:
				match = match && a.UserId == sp.UserID
			}
		}
		if match {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeAssessmentRepo) Upsert(ctx context.Context, assessment *entity.CareerAssessment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.assessments[assessment.UserId]; ok {
		assessment.Id = existing.Id
		assessment.CreatedAt = existing.CreatedAt
	}
	assessment.PrimaryRole = nil
	c := *assessment
	r.s.assessments[assessment.UserId] = &c
	return nil
}

func (r *fakeAssessmentRepo) SetPrimaryRole(ctx context.Context, userID uuid.UUID, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assessments[userID]
	if !ok {
		return contract.ErrNotFound
	}
	a.PrimaryRole = &role
	return nil
}

type fakeRoadmapRepo struct{ s *memoryStore }

func (r *fakeRoadmapRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerRoadmap, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, spec := range specs {
		if sp, ok := spec.(specification.UserOwnedBy); ok {
			if rm, found := r.s.roadmaps[sp.UserID]; found {
				c := *rm
				c.Progress = make(map[string]bool, len(rm.Progress))
				for k, v := range rm.Progress {
					c.Progress[k] = v
				}
				return &c, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeRoadmapRepo) Upsert(ctx context.Context, roadmap *entity.CareerRoadmap) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.roadmaps[roadmap.UserId]; ok {
		roadmap.Id = existing.Id
	}
	c := *roadmap
	r.s.roadmaps[roadmap.UserId] = &c
	return nil
}

func (r *fakeRoadmapRepo) SetTaskStatus(ctx context.Context, userID uuid.UUID, taskID string, completed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rm, ok := r.s.roadmaps[userID]
	if !ok {
		return contract.ErrNotFound
	}
	progress := make(map[string]bool, len(rm.Progress)+1)
	for k, v := range rm.Progress {
		progress[k] = v
	}
	progress[taskID] = completed
	rm.Progress = progress
	return nil
}

type fakeFeedbackRepo struct{ s *memoryStore }

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.AssessmentFeedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedbacks[feedback.AssessmentId]; ok {
		return contract.ErrDuplicate
	}
	c := *feedback
	r.s.feedbacks[feedback.AssessmentId] = &c
	return nil
}

func (r *fakeFeedbackRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AssessmentFeedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, spec := range specs {
		if sp, ok := spec.(specification.ByAssessmentID); ok {
			if f, found := r.s.feedbacks[sp.AssessmentID]; found {
				c := *f
				return &c, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeFeedbackRepo) Aggregate(ctx context.Context) (*entity.FeedbackAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agg := &entity.FeedbackAggregate{}
	for _, f := range r.s.feedbacks {
		agg.Total++
		agg.RatingSum += int64(f.Rating)
		if f.IsAccurate {
			agg.AccurateCount++
		}
	}
	return agg, nil
}

type fakeInsightRepo struct{ s *memoryStore }

func (r *fakeInsightRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IndustryInsight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failFind != nil {
		return nil, r.s.failFind
	}
	for _, spec := range specs {
		if sp, ok := spec.(specification.ByIndustry); ok {
			if in, found := r.s.insights[strings.ToLower(strings.TrimSpace(sp.Industry))]; found {
				c := *in
				return &c, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeInsightRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IndustryInsight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failFind != nil {
		return nil, r.s.failFind
	}
	limit := -1
	var due *time.Time
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.InsightDue:
			now := sp.Now
			due = &now
		case specification.Pagination:
			limit = sp.Limit
		}
	}

	var out []*entity.IndustryInsight
	for _, in := range r.s.insights {
		if due != nil && in.NextUpdate.After(*due) {
			continue
		}
		c := *in
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextUpdate.Before(out[j].NextUpdate) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeInsightRepo) CreateIfAbsent(ctx context.Context, insight *entity.IndustryInsight) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(insight.Industry)
	if _, ok := r.s.insights[key]; ok {
		return false, nil
	}
	insight.Id = uuid.New()
	c := *insight
	r.s.insights[key] = &c
	return true, nil
}

func (r *fakeInsightRepo) Update(ctx context.Context, insight *entity.IndustryInsight) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(insight.Industry)
	if _, ok := r.s.insights[key]; !ok {
		return contract.ErrNotFound
	}
	c := *insight
	r.s.insights[key] = &c
	return nil
}

// scriptedLLM answers per operation label and records every call.
type scriptedLLM struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func newScriptedLLM() *scriptedLLM {
	return &scriptedLLM{responses: map[string]string{}, errs: map[string]error{}}
}

func (l *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	op := llm.OperationFrom(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, op)
	if err := l.errs[op]; err != nil {
		return "", err
	}
	return l.responses[op], nil
}

func (l *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return l.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (l *scriptedLLM) count(op string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == op {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
