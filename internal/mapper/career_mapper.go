package mapper

import (
	"encoding/json"
	"fmt"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/model"
	"career-compass-be/pkg/analysis"

	"gorm.io/datatypes"
)

// CareerMapper converts the jsonb backed career tables. Decoding errors surface
// instead of silently yielding empty documents.
type CareerMapper struct{}

func NewCareerMapper() *CareerMapper {
	return &CareerMapper{}
}

func decodeJSON(raw datatypes.JSON, dest interface{}, what string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}

func encodeJSON(v interface{}, what string) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", what, err)
	}
	return datatypes.JSON(data), nil
}

func (m *CareerMapper) AssessmentToEntity(a *model.CareerAssessment) (*entity.CareerAssessment, error) {
	if a == nil {
		return nil, nil
	}

	out := &entity.CareerAssessment{
		Id:                   a.Id,
		UserId:               a.UserId,
		Questions:            json.RawMessage(a.Questions),
		PrimaryRole:          a.PrimaryRole,
		RecommendedCountries: []analysis.Country{},
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}

	if len(a.Analysis) > 0 && string(a.Analysis) != "null" {
		var parsed analysis.Analysis
		if err := decodeJSON(a.Analysis, &parsed, "analysis"); err != nil {
			return nil, err
		}
		parsed.Normalize()
		out.Analysis = &parsed
	}
	if err := decodeJSON(a.RecommendedCountries, &out.RecommendedCountries, "recommended countries"); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *CareerMapper) AssessmentToModel(a *entity.CareerAssessment) (*model.CareerAssessment, error) {
	questions := a.Questions
	if len(questions) == 0 {
		questions = json.RawMessage("[]")
	}

	analysisJSON, err := encodeJSON(a.Analysis, "analysis")
	if err != nil {
		return nil, err
	}

	countries := a.RecommendedCountries
	if countries == nil {
		countries = []analysis.Country{}
	}
	countriesJSON, err := encodeJSON(countries, "recommended countries")
	if err != nil {
		return nil, err
	}

	return &model.CareerAssessment{
		Id:                   a.Id,
		UserId:               a.UserId,
		Questions:            datatypes.JSON(questions),
		PrimaryRole:          a.PrimaryRole,
		Analysis:             analysisJSON,
		RecommendedCountries: countriesJSON,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}, nil
}

func (m *CareerMapper) RoadmapToEntity(r *model.CareerRoadmap) (*entity.CareerRoadmap, error) {
	if r == nil {
		return nil, nil
	}

	var roadmap analysis.Roadmap
	if err := decodeJSON(r.RoadmapData, &roadmap, "roadmap"); err != nil {
		return nil, err
	}

	progress := r.Progress.Data()
	if progress == nil {
		progress = map[string]bool{}
	}

	return &entity.CareerRoadmap{
		Id:        r.Id,
		UserId:    r.UserId,
		Duration:  r.Duration,
		Roadmap:   &roadmap,
		Progress:  progress,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (m *CareerMapper) RoadmapToModel(r *entity.CareerRoadmap) (*model.CareerRoadmap, error) {
	data, err := encodeJSON(r.Roadmap, "roadmap")
	if err != nil {
		return nil, err
	}

	progress := r.Progress
	if progress == nil {
		progress = map[string]bool{}
	}

	return &model.CareerRoadmap{
		Id:          r.Id,
		UserId:      r.UserId,
		Duration:    r.Duration,
		RoadmapData: data,
		Progress:    datatypes.NewJSONType(progress),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func (m *CareerMapper) FeedbackToEntity(f *model.AssessmentFeedback) *entity.AssessmentFeedback {
	if f == nil {
		return nil
	}
	return &entity.AssessmentFeedback{
		Id:           f.Id,
		AssessmentId: f.AssessmentId,
		Rating:       f.Rating,
		Comment:      f.Comment,
		IsAccurate:   f.IsAccurate,
		CreatedAt:    f.CreatedAt,
	}
}

func (m *CareerMapper) FeedbackToModel(f *entity.AssessmentFeedback) *model.AssessmentFeedback {
	return &model.AssessmentFeedback{
		Id:           f.Id,
		AssessmentId: f.AssessmentId,
		Rating:       f.Rating,
		Comment:      f.Comment,
		IsAccurate:   f.IsAccurate,
		CreatedAt:    f.CreatedAt,
	}
}

func (m *CareerMapper) InsightToEntity(i *model.IndustryInsight) (*entity.IndustryInsight, error) {
	if i == nil {
		return nil, nil
	}

	var insight analysis.IndustryInsight
	if err := decodeJSON(i.Insight, &insight, "industry insight"); err != nil {
		return nil, err
	}

	return &entity.IndustryInsight{
		Id:         i.Id,
		Industry:   i.Industry,
		Insight:    &insight,
		LastUpdate: i.LastUpdate,
		NextUpdate: i.NextUpdate,
	}, nil
}

func (m *CareerMapper) InsightToModel(i *entity.IndustryInsight) (*model.IndustryInsight, error) {
	data, err := encodeJSON(i.Insight, "industry insight")
	if err != nil {
		return nil, err
	}
	return &model.IndustryInsight{
		Id:         i.Id,
		Industry:   i.Industry,
		Insight:    data,
		LastUpdate: i.LastUpdate,
		NextUpdate: i.NextUpdate,
	}, nil
}
