package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// newMockDB wires a sqlmock connection behind the MySQL dialector so the
// generated SQL can be asserted.
func newMockDB(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewUserRepository(db), mock
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "nome", "email", "senha", "role"}).
		AddRow(1, "Maria Souza", "maria@ifnmg.edu.br", "hash", "COORDENADOR")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WithArgs("maria@ifnmg.edu.br", 1).
		WillReturnRows(rows)

	user, err := repo.FindByEmail("maria@ifnmg.edu.br")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.ID)
	assert.Equal(t, models.RoleCoordenador, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WithArgs("ninguem@ifnmg.edu.br", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail("ninguem@ifnmg.edu.br")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_RoleFilter(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE role = ?")).
		WithArgs("PROFESSOR").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE role = ? ORDER BY nome ASC")).
		WithArgs("PROFESSOR", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "role"}).
			AddRow(2, "Carlos Santos", "PROFESSOR"))

	role := models.RoleProfessor
	users, total, err := repo.List(UserFilter{
		Role:       &role,
		Pagination: utils.PaginationParams{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
	assert.Equal(t, "Carlos Santos", users[0].Nome)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_SecondPageOffset(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` ORDER BY nome ASC LIMIT ? OFFSET ?")).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "role"}).
			AddRow(11, "Maria Souza", "PROFESSOR"))

	users, total, err := repo.List(UserFilter{
		Pagination: utils.PaginationParams{Page: 2, Limit: 10, Offset: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, users, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `users` WHERE `users`.`id` = ?")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(1)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
