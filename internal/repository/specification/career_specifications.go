package specification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByAssessmentID struct {
	AssessmentID uuid.UUID
}

func (s ByAssessmentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("assessment_id = ?", s.AssessmentID)
}

// ByIndustry matches industry names case-insensitively.
type ByIndustry struct {
	Industry string
}

func (s ByIndustry) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(industry) = ?", strings.ToLower(strings.TrimSpace(s.Industry)))
}

// InsightDue selects insights whose next_update has passed.
type InsightDue struct {
	Now time.Time
}

func (s InsightDue) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("next_update <= ?", s.Now)
}
