package models

import "time"

// ImagemProjeto is an uploaded project image. At most one image per
// project may have Principal set; writers always clear the previous
// principal inside the same transaction that sets a new one.
type ImagemProjeto struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjetoID uint64    `gorm:"not null;index" json:"projeto_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	Principal bool      `gorm:"not null;default:false" json:"principal"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Projeto Projeto `gorm:"foreignKey:ProjetoID" json:"-"`
}
