package repository

import (
	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/database"
	"github.com/ifnmg/vitrine-projetos/internal/models"
)

// GormAlunoRepository is a GORM implementation of AlunoRepository
type GormAlunoRepository struct {
	db *gorm.DB
}

// NewAlunoRepository creates a new AlunoRepository
func NewAlunoRepository(db *gorm.DB) AlunoRepository {
	return &GormAlunoRepository{db: db}
}

// Create creates a new student
func (r *GormAlunoRepository) Create(aluno *models.Aluno) error {
	return r.db.Create(aluno).Error
}

// FindByID finds a student by ID
func (r *GormAlunoRepository) FindByID(id uint64) (*models.Aluno, error) {
	var aluno models.Aluno
	if err := r.db.First(&aluno, id).Error; err != nil {
		return nil, err
	}
	return &aluno, nil
}

// FindByIdentidade finds a student by the (nome, turma, curso) triple
func (r *GormAlunoRepository) FindByIdentidade(nome, turma, curso string) (*models.Aluno, error) {
	var aluno models.Aluno
	if err := r.db.Where("nome = ? AND turma = ? AND curso = ?", nome, turma, curso).
		First(&aluno).Error; err != nil {
		return nil, err
	}
	return &aluno, nil
}

// List retrieves students with filtering and pagination
func (r *GormAlunoRepository) List(filter AlunoFilter) ([]models.Aluno, int64, error) {
	var alunos []models.Aluno

	query := r.db.Model(&models.Aluno{})
	if filter.Turma != "" {
		query = query.Where("turma = ?", filter.Turma)
	}
	if filter.Curso != "" {
		query = query.Where("curso = ?", filter.Curso)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("nome ASC").Scopes(database.Paginate(filter.Pagination))

	if err := listQuery.Find(&alunos).Error; err != nil {
		return nil, 0, err
	}

	return alunos, total, nil
}

// Update updates a student
func (r *GormAlunoRepository) Update(aluno *models.Aluno) error {
	return r.db.Save(aluno).Error
}

// Delete hard deletes a student
func (r *GormAlunoRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Aluno{}, id).Error
}
