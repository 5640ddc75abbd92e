package repository

import (
	"github.com/ManuelReschke/ShellEconomy/app/models"
	"gorm.io/gorm"
)

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// GetByUserID returns the user's projects in creation order, which is the
// tie-break order for hour ranking.
func (r *projectRepository) GetByUserID(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("user_id = ?", userID).
		Order("id ASC").
		Preload("Links").
		Find(&projects).Error
	return projects, err
}

// GetByUserIDs groups the projects of several users. Every requested user gets
// an entry, even without projects.
func (r *projectRepository) GetByUserIDs(userIDs []uint) (map[uint][]models.Project, error) {
	out := make(map[uint][]models.Project, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	for _, id := range userIDs {
		out[id] = nil
	}

	var projects []models.Project
	err := r.db.Where("user_id IN ?", userIDs).
		Order("user_id ASC, id ASC").
		Preload("Links").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		out[p.UserID] = append(out[p.UserID], p)
	}
	return out, nil
}
