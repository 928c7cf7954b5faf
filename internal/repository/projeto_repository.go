package repository

import (
	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/database"
	"github.com/ifnmg/vitrine-projetos/internal/models"
)

// GormProjetoRepository is a GORM implementation of ProjetoRepository
type GormProjetoRepository struct {
	db *gorm.DB
}

// NewProjetoRepository creates a new ProjetoRepository
func NewProjetoRepository(db *gorm.DB) ProjetoRepository {
	return &GormProjetoRepository{db: db}
}

// Create creates a new project
func (r *GormProjetoRepository) Create(projeto *models.Projeto) error {
	return r.db.Create(projeto).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjetoRepository) FindByID(id uint64, preload ...string) (*models.Projeto, error) {
	var projeto models.Projeto
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&projeto, id).Error; err != nil {
		return nil, err
	}

	return &projeto, nil
}

// List retrieves projects with filtering and pagination
func (r *GormProjetoRepository) List(filter ProjetoFilter) ([]models.Projeto, int64, error) {
	var projetos []models.Projeto

	query := r.db.Model(&models.Projeto{})
	if filter.Tipo != nil {
		query = query.Where("tipo = ?", *filter.Tipo)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CoordenadorID != nil {
		query = query.Where("coordenador_id = ?", *filter.CoordenadorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC").Scopes(database.Paginate(filter.Pagination))

	if err := listQuery.Preload("Coordenador").Preload("Imagens").Find(&projetos).Error; err != nil {
		return nil, 0, err
	}

	return projetos, total, nil
}

// Update updates a project
func (r *GormProjetoRepository) Update(projeto *models.Projeto) error {
	return r.db.Save(projeto).Error
}

// Delete removes a project and the participants and images it owns in a
// transaction
func (r *GormProjetoRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("projeto_id = ?", id).Delete(&models.ProjetoParticipante{}).Error; err != nil {
			return err
		}

		if err := tx.Where("projeto_id = ?", id).Delete(&models.ImagemProjeto{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Projeto{}, id).Error
	})
}

// AddParticipante inserts a participant link
func (r *GormProjetoRepository) AddParticipante(p *models.ProjetoParticipante) error {
	return r.db.Create(p).Error
}

// FindParticipante finds the link of a participant to a project by the
// foreign key that matches the participant type
func (r *GormProjetoRepository) FindParticipante(projetoID, participanteID uint64, tipo models.TipoParticipante) (*models.ProjetoParticipante, error) {
	var participante models.ProjetoParticipante

	query := r.db.Where("projeto_id = ?", projetoID)
	if tipo == models.ParticipanteAluno {
		query = query.Where("aluno_id = ?", participanteID)
	} else {
		query = query.Where("user_id = ?", participanteID)
	}

	if err := query.First(&participante).Error; err != nil {
		return nil, err
	}
	return &participante, nil
}

// RemoveParticipante deletes a participant link
func (r *GormProjetoRepository) RemoveParticipante(id uint64) error {
	return r.db.Delete(&models.ProjetoParticipante{}, id).Error
}

// ListParticipantes lists all links of a project with participants preloaded
func (r *GormProjetoRepository) ListParticipantes(projetoID uint64) ([]models.ProjetoParticipante, error) {
	var participantes []models.ProjetoParticipante
	if err := r.db.Preload("Aluno").Preload("User").
		Where("projeto_id = ?", projetoID).
		Find(&participantes).Error; err != nil {
		return nil, err
	}
	return participantes, nil
}

// AddImagem inserts an image. A principal image clears the project's
// previous principal inside the same transaction so the per-project
// principal count never exceeds one.
func (r *GormProjetoRepository) AddImagem(img *models.ImagemProjeto) error {
	if !img.Principal {
		return r.db.Create(img).Error
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ImagemProjeto{}).
			Where("projeto_id = ? AND principal = ?", img.ProjetoID, true).
			Update("principal", false).Error; err != nil {
			return err
		}

		return tx.Create(img).Error
	})
}

// FindImagemByID finds an image by ID
func (r *GormProjetoRepository) FindImagemByID(id uint64) (*models.ImagemProjeto, error) {
	var img models.ImagemProjeto
	if err := r.db.First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

// SetImagemPrincipal promotes an image to principal, clearing the
// previous one in the same transaction
func (r *GormProjetoRepository) SetImagemPrincipal(img *models.ImagemProjeto) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ImagemProjeto{}).
			Where("projeto_id = ? AND id <> ?", img.ProjetoID, img.ID).
			Update("principal", false).Error; err != nil {
			return err
		}

		return tx.Model(img).Update("principal", true).Error
	})
}

// RemoveImagem deletes an image row
func (r *GormProjetoRepository) RemoveImagem(id uint64) error {
	return r.db.Delete(&models.ImagemProjeto{}, id).Error
}
