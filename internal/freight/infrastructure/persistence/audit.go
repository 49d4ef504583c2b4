// Package persistence implements application.AuditStore against GORM.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/wyfcoding/freightroute/internal/freight/application"
)

// RouteOptimizationAudit is one row of operational history, in the style of
// the corpus's RoutingStatistics entity, scoped to per-call audit rather
// than aggregate rollups.
type RouteOptimizationAudit struct {
	gorm.Model
	RequestID       string `gorm:"index;not null"`
	OriginCode      string `gorm:"not null"`
	DestinationCode string `gorm:"not null"`
	CandidateCount  int    `gorm:"not null;default:0"`
	RouteCount      int    `gorm:"not null;default:0"`
	ElapsedMillis   int64  `gorm:"not null;default:0"`
}

// AuditRepository persists RouteOptimizationAudit rows.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository binds a repository to an existing GORM handle. Callers
// are expected to have already run AutoMigrate for RouteOptimizationAudit.
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// RecordOptimization implements application.AuditStore.
func (r *AuditRepository) RecordOptimization(ctx context.Context, rec application.OptimizationAudit) error {
	row := RouteOptimizationAudit{
		RequestID:       rec.RequestID,
		OriginCode:      rec.OriginCode,
		DestinationCode: rec.DestinationCode,
		CandidateCount:  rec.CandidateCount,
		RouteCount:      rec.RouteCount,
		ElapsedMillis:   rec.ElapsedMillis,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}
