package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ifnmg/vitrine-projetos/internal/constants"
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// newTestDB opens an in-memory SQLite database with foreign keys
// enforced and constraint errors translated, mirroring the production
// connection settings.
func newTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// A second pooled connection would see a different empty database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Aluno{},
		&models.Projeto{},
		&models.ProjetoParticipante{},
		&models.ImagemProjeto{},
		&models.TCC{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// newTestContext builds a gin context around a JSON request.
func newTestContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// setAuthContext simulates the RequireAuth middleware for a user.
func setAuthContext(c *gin.Context, user *models.User) {
	claims := &utils.Claims{
		UserID: user.ID,
		Nome:   user.Nome,
		Email:  user.Email,
		Role:   user.Role,
	}
	c.Set(constants.ContextKeyClaims, claims)
	c.Set(constants.ContextKeyUserID, user.ID)
}

// multipartUpload builds a multipart body with one file part carrying an
// explicit Content-Type, plus optional form fields.
func multipartUpload(fieldName, filename, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}

func jsonNumber(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// newMultipartContext builds a gin context around a multipart request.
func newMultipartContext(method, url string, body *bytes.Buffer, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}
