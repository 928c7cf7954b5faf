package repository

import (
	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/database"
	"github.com/ifnmg/vitrine-projetos/internal/models"
)

// GormTCCRepository is a GORM implementation of TCCRepository
type GormTCCRepository struct {
	db *gorm.DB
}

// NewTCCRepository creates a new TCCRepository
func NewTCCRepository(db *gorm.DB) TCCRepository {
	return &GormTCCRepository{db: db}
}

// Create creates a new thesis record
func (r *GormTCCRepository) Create(tcc *models.TCC) error {
	return r.db.Create(tcc).Error
}

// FindByID finds a thesis by ID with relations preloaded
func (r *GormTCCRepository) FindByID(id uint64) (*models.TCC, error) {
	var tcc models.TCC
	if err := r.db.Preload("Aluno").Preload("Coordenador").First(&tcc, id).Error; err != nil {
		return nil, err
	}
	return &tcc, nil
}

// FindByAlunoID finds the thesis of a student
func (r *GormTCCRepository) FindByAlunoID(alunoID uint64) (*models.TCC, error) {
	var tcc models.TCC
	if err := r.db.Where("aluno_id = ?", alunoID).First(&tcc).Error; err != nil {
		return nil, err
	}
	return &tcc, nil
}

// List retrieves theses with filtering and pagination
func (r *GormTCCRepository) List(filter TCCFilter) ([]models.TCC, int64, error) {
	var tccs []models.TCC

	query := r.db.Model(&models.TCC{})
	if filter.Curso != "" {
		query = query.Where("curso = ?", filter.Curso)
	}
	if filter.AlunoID != nil {
		query = query.Where("aluno_id = ?", *filter.AlunoID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("data_defesa DESC").Scopes(database.Paginate(filter.Pagination))

	if err := listQuery.Preload("Aluno").Find(&tccs).Error; err != nil {
		return nil, 0, err
	}

	return tccs, total, nil
}

// Update updates a thesis
func (r *GormTCCRepository) Update(tcc *models.TCC) error {
	return r.db.Save(tcc).Error
}

// Delete hard deletes a thesis
func (r *GormTCCRepository) Delete(id uint64) error {
	return r.db.Delete(&models.TCC{}, id).Error
}
