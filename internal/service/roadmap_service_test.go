package service

import (
	"context"
	"errors"
	"testing"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/entity"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/pkg/analysis"
	"career-compass-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roadmapJSON = `{
  "months": [
    {"month": 1, "title": "Foundations", "goals": ["Learn Go"], "tasks": [
      {"id": "m1-t1", "title": "Tour of Go", "priority": "High"},
      {"id": "m1-t2", "title": "Build a CLI", "priority": "Medium"}
    ], "milestones": ["First program"]},
    {"month": 2, "title": "Services", "goals": ["HTTP"], "tasks": [
      {"id": "m2-t1", "title": "REST API", "priority": "High"}
    ], "milestones": []},
    {"month": 3, "title": "Jobs", "goals": [], "tasks": [
      {"title": "Apply to 10 roles"}
    ], "milestones": []}
  ]
}`

type roadmapFixture struct {
	store     *memoryStore
	llm       *scriptedLLM
	publisher *recordingPublisher
	svc       IRoadmapService
	user      *entity.User
}

func newRoadmapFixture(withRole bool) *roadmapFixture {
	store := newMemoryStore()
	provider := newScriptedLLM()
	provider.responses["roadmap"] = roadmapJSON
	publisher := &recordingPublisher{}

	user := store.addUser(&entity.User{ExternalId: "ext", Email: "dev@example.com", Name: "Dev"})
	a := &entity.CareerAssessment{
		Id:     uuid.New(),
		UserId: user.Id,
		Analysis: &analysis.Analysis{
			PrimaryProfile:   "The Builder",
			RecommendedRoles: []analysis.Role{{Role: "Backend Engineer"}},
			IdentifiedSkills: []string{"Go"},
		},
	}
	if withRole {
		a.PrimaryRole = strPtr("Backend Engineer")
	}
	store.assessments[user.Id] = a

	return &roadmapFixture{
		store:     store,
		llm:       provider,
		publisher: publisher,
		svc:       NewRoadmapService(store, provider, publisher, logger.NewNopLogger()),
		user:      user,
	}
}

func TestRoadmapService_Generate(t *testing.T) {
	f := newRoadmapFixture(true)

	res, err := f.svc.Generate(context.Background(), f.user.Id, &dto.GenerateRoadmapRequest{Duration: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Duration)
	require.Len(t, res.Roadmap.Months, 3)
	assert.Equal(t, "m3-t1", res.Roadmap.Months[2].Tasks[0].ID)
	assert.Equal(t, map[string]bool{"m1-t1": false, "m1-t2": false, "m2-t1": false, "m3-t1": false}, res.Progress)
	assert.Equal(t, 4, res.TotalTasks)
	assert.Zero(t, res.CompletedTasks)
	assert.Equal(t, []string{events.TypeRoadmapGenerated}, f.publisher.types())
	assert.Contains(t, f.store.roadmaps, f.user.Id)
}

func TestRoadmapService_GenerateResetsProgress(t *testing.T) {
	ctx := context.Background()
	f := newRoadmapFixture(true)
	done := true

	_, err := f.svc.Generate(ctx, f.user.Id, &dto.GenerateRoadmapRequest{Duration: 3})
	require.NoError(t, err)
	_, err = f.svc.SetTaskStatus(ctx, f.user.Id, "m1-t1", &dto.UpdateTaskStatusRequest{Completed: &done})
	require.NoError(t, err)
	firstId := f.store.roadmaps[f.user.Id].Id

	res, err := f.svc.Generate(ctx, f.user.Id, &dto.GenerateRoadmapRequest{Duration: 6})
	require.NoError(t, err)
	assert.Equal(t, firstId, res.Id)
	assert.Equal(t, 6, res.Duration)
	assert.Zero(t, res.CompletedTasks)
}

func TestRoadmapService_GenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		withRole bool
		prepare  func(f *roadmapFixture)
		want     apperror.Kind
	}{
		{name: "invalid duration", duration: 4, withRole: true, want: apperror.KindValidation},
		{name: "no role selected", duration: 3, want: apperror.KindValidation},
		{
			name: "no assessment", duration: 3, withRole: true,
			prepare: func(f *roadmapFixture) { delete(f.store.assessments, f.user.Id) },
			want:    apperror.KindNotFound,
		},
		{
			name: "model unavailable", duration: 3, withRole: true,
			prepare: func(f *roadmapFixture) { f.llm.errs["roadmap"] = errors.New("timeout") },
			want:    apperror.KindExternalService,
		},
		{
			name: "no months", duration: 3, withRole: true,
			prepare: func(f *roadmapFixture) { f.llm.responses["roadmap"] = `{"months": []}` },
			want:    apperror.KindMalformedAnalysis,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRoadmapFixture(tt.withRole)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			_, err := f.svc.Generate(context.Background(), f.user.Id, &dto.GenerateRoadmapRequest{Duration: tt.duration})
			assert.True(t, apperror.IsKind(err, tt.want), "got %v", err)
			assert.NotContains(t, f.store.roadmaps, f.user.Id)
			assert.Empty(t, f.publisher.types())
		})
	}
}

func TestRoadmapService_SetTaskStatus(t *testing.T) {
	ctx := context.Background()
	f := newRoadmapFixture(true)
	done, open := true, false

	_, err := f.svc.SetTaskStatus(ctx, f.user.Id, "m1-t1", &dto.UpdateTaskStatusRequest{Completed: &done})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = f.svc.Generate(ctx, f.user.Id, &dto.GenerateRoadmapRequest{Duration: 3})
	require.NoError(t, err)

	t.Run("complete twice", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			res, err := f.svc.SetTaskStatus(ctx, f.user.Id, "m2-t1", &dto.UpdateTaskStatusRequest{Completed: &done})
			require.NoError(t, err)
			assert.Equal(t, 1, res.CompletedTasks)
		}
		assert.True(t, f.store.roadmaps[f.user.Id].Progress["m2-t1"])
	})

	t.Run("reopen", func(t *testing.T) {
		res, err := f.svc.SetTaskStatus(ctx, f.user.Id, "m2-t1", &dto.UpdateTaskStatusRequest{Completed: &open})
		require.NoError(t, err)
		assert.Zero(t, res.CompletedTasks)
		assert.Equal(t, 4, res.TotalTasks)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := f.svc.SetTaskStatus(ctx, f.user.Id, "m9-t9", &dto.UpdateTaskStatusRequest{Completed: &done})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
		assert.NotContains(t, f.store.roadmaps[f.user.Id].Progress, "m9-t9")
	})

	t.Run("missing flag", func(t *testing.T) {
		_, err := f.svc.SetTaskStatus(ctx, f.user.Id, "m1-t1", &dto.UpdateTaskStatusRequest{})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestRoadmapService_Get(t *testing.T) {
	f := newRoadmapFixture(true)

	_, err := f.svc.Get(context.Background(), f.user.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = f.svc.Generate(context.Background(), f.user.Id, &dto.GenerateRoadmapRequest{Duration: 12})
	require.NoError(t, err)

	res, err := f.svc.Get(context.Background(), f.user.Id)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Duration)
}
