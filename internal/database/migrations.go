package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds the listing-critical indexes that AutoMigrate does not
// derive from struct tags.
func AddIndexes(db *gorm.DB, driver string) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Projeto listing filters
		{"projetos", "idx_projetos_tipo", "tipo"},
		{"projetos", "idx_projetos_status", "status"},
		{"projetos", "idx_projetos_coordenador_id", "coordenador_id"},
		{"projetos", "idx_projetos_created_at", "created_at"},

		// TCC listing filters
		{"tccs", "idx_tccs_data_defesa", "data_defesa"},

		// Aluno listing filters
		{"alunos", "idx_alunos_turma", "turma"},
		{"alunos", "idx_alunos_curso", "curso"},
	}

	for _, idx := range indexes {
		exists, err := indexExists(db, driver, idx.table, idx.name)
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if exists {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

func indexExists(db *gorm.DB, driver, table, name string) (bool, error) {
	var count int64
	var err error

	switch driver {
	case "postgres":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, table, name).Count(&count).Error
	default:
		err = db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, table, name).Count(&count).Error
	}

	return count > 0, err
}
