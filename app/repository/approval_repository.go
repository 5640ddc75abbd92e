package repository

import (
	"context"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"gorm.io/gorm"
)

type approvalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository creates a read-only view on project approvals
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

// ApprovedHours returns approved hours keyed by project. Projects without a
// review row are absent from the map.
func (r *approvalRepository) ApprovedHours(ctx context.Context, projectIDs []uint) (map[uint]float64, error) {
	out := make(map[uint]float64, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}

	var rows []models.ProjectApproval
	if err := r.db.WithContext(ctx).Where("project_id IN ?", projectIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProjectID] = row.ApprovedHours
	}
	return out, nil
}
