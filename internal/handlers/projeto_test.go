package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/services"
	"github.com/ifnmg/vitrine-projetos/internal/storage"
)

// ProjetoHandlerTestSuite defines the test suite for ProjetoHandler
type ProjetoHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	store   *storage.Disk
	handler *ProjetoHandler
}

// SetupTest runs before each test
func (suite *ProjetoHandlerTestSuite) SetupTest() {
	var err error
	suite.db, err = newTestDB()
	suite.Require().NoError(err)

	suite.store, err = storage.NewDisk(suite.T().TempDir())
	suite.Require().NoError(err)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	projetoService := services.NewProjetoService(
		repository.NewProjetoRepository(suite.db),
		repository.NewAlunoRepository(suite.db),
		repository.NewUserRepository(suite.db),
		suite.store,
		logger,
		5<<20,
	)
	suite.handler = NewProjetoHandler(projetoService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjetoHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjetoHandlerTestSuite) createTestUser(email string, role models.Role) *models.User {
	user := &models.User{
		Nome:  "Maria Souza",
		Email: email,
		Senha: "hash",
		Role:  role,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ProjetoHandlerTestSuite) createTestAluno(nome string) *models.Aluno {
	aluno := &models.Aluno{Nome: nome, Turma: "INFO2023", Curso: "Informática"}
	suite.Require().NoError(suite.db.Create(aluno).Error)
	return aluno
}

func (suite *ProjetoHandlerTestSuite) createTestProjeto(coordenadorID uint64) *models.Projeto {
	projeto := &models.Projeto{
		Titulo:        "Horta comunitária",
		Descricao:     "Projeto de extensão",
		DataInicio:    time.Now(),
		Tipo:          models.TipoExtensao,
		Status:        models.StatusAtivo,
		CoordenadorID: coordenadorID,
	}
	suite.Require().NoError(suite.db.Create(projeto).Error)
	return projeto
}

func (suite *ProjetoHandlerTestSuite) createTestImagem(projetoID uint64, url string, principal bool) *models.ImagemProjeto {
	img := &models.ImagemProjeto{ProjetoID: projetoID, URL: url, Principal: principal}
	suite.Require().NoError(suite.db.Create(img).Error)
	return img
}

func (suite *ProjetoHandlerTestSuite) countPrincipais(projetoID uint64) int64 {
	var count int64
	suite.db.Model(&models.ImagemProjeto{}).
		Where("projeto_id = ? AND principal = ?", projetoID, true).
		Count(&count)
	return count
}

// TestCreateProjeto_Success tests project creation with a valid coordenador
func (suite *ProjetoHandlerTestSuite) TestCreateProjeto_Success() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)

	body, _ := json.Marshal(map[string]interface{}{
		"titulo":         "Horta comunitária",
		"descricao":      "Projeto de extensão",
		"data_inicio":    "2026-03-01T00:00:00Z",
		"tipo":           "EXTENSAO",
		"coordenador_id": coordenador.ID,
	})
	c, w := newTestContext("POST", "/api/projetos", body)

	suite.handler.CreateProjeto(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Horta comunitária", response["titulo"])
	assert.Equal(suite.T(), "ATIVO", response["status"])
}

// TestCreateProjeto_CoordenadorSemPapel tests creation with a user that
// does not hold the COORDENADOR role
func (suite *ProjetoHandlerTestSuite) TestCreateProjeto_CoordenadorSemPapel() {
	professor := suite.createTestUser("carlos@ifnmg.edu.br", models.RoleProfessor)

	body, _ := json.Marshal(map[string]interface{}{
		"titulo":         "Horta comunitária",
		"data_inicio":    "2026-03-01T00:00:00Z",
		"tipo":           "EXTENSAO",
		"coordenador_id": professor.ID,
	})
	c, w := newTestContext("POST", "/api/projetos", body)

	suite.handler.CreateProjeto(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateProjeto_CoordenadorInexistente tests creation with an
// unknown coordenador
func (suite *ProjetoHandlerTestSuite) TestCreateProjeto_CoordenadorInexistente() {
	body, _ := json.Marshal(map[string]interface{}{
		"titulo":         "Horta comunitária",
		"data_inicio":    "2026-03-01T00:00:00Z",
		"tipo":           "EXTENSAO",
		"coordenador_id": 999,
	})
	c, w := newTestContext("POST", "/api/projetos", body)

	suite.handler.CreateProjeto(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateProjeto_ClearDataFim tests clearing the end date
func (suite *ProjetoHandlerTestSuite) TestUpdateProjeto_ClearDataFim() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	projeto := suite.createTestProjeto(coordenador.ID)

	fim := time.Now().AddDate(1, 0, 0)
	projeto.DataFim = &fim
	suite.Require().NoError(suite.db.Save(projeto).Error)

	body, _ := json.Marshal(map[string]interface{}{"clear_data_fim": true})
	c, w := newTestContext("PUT", "/api/projetos/1", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateProjeto(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Projeto
	suite.Require().NoError(suite.db.First(&stored, projeto.ID).Error)
	assert.Nil(suite.T(), stored.DataFim)
}

// TestLinkParticipante_Aluno tests linking a student to a project
func (suite *ProjetoHandlerTestSuite) TestLinkParticipante_Aluno() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	projeto := suite.createTestProjeto(coordenador.ID)
	aluno := suite.createTestAluno("João Pereira")

	body, _ := json.Marshal(map[string]interface{}{
		"participanteId": aluno.ID,
		"tipo":           "ALUNO",
		"funcao":         "Bolsista",
	})
	c, w := newTestContext("POST", "/api/projetos/1/participantes", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.LinkParticipante(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ALUNO", response["tipo"])

	participante := response["participante"].(map[string]interface{})
	assert.Equal(suite.T(), aluno.Nome, participante["nome"])
	assert.Equal(suite.T(), aluno.Turma, participante["turma"])

	var count int64
	suite.db.Model(&models.ProjetoParticipante{}).
		Where("projeto_id = ? AND aluno_id = ?", projeto.ID, aluno.ID).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestLinkParticipante_Duplicado tests linking the same student twice
func (suite *ProjetoHandlerTestSuite) TestLinkParticipante_Duplicado() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	suite.createTestProjeto(coordenador.ID)
	aluno := suite.createTestAluno("João Pereira")

	body, _ := json.Marshal(map[string]interface{}{
		"participanteId": aluno.ID,
		"tipo":           "ALUNO",
		"funcao":         "Bolsista",
	})

	c, w := newTestContext("POST", "/api/projetos/1/participantes", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.LinkParticipante(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = newTestContext("POST", "/api/projetos/1/participantes", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.LinkParticipante(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestLinkParticipante_AlunoInexistente tests linking an unknown student
func (suite *ProjetoHandlerTestSuite) TestLinkParticipante_AlunoInexistente() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	suite.createTestProjeto(coordenador.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"participanteId": 999,
		"tipo":           "ALUNO",
		"funcao":         "Bolsista",
	})
	c, w := newTestContext("POST", "/api/projetos/1/participantes", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.LinkParticipante(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestLinkParticipante_Servidor tests linking a staff user
func (suite *ProjetoHandlerTestSuite) TestLinkParticipante_Servidor() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	suite.createTestProjeto(coordenador.ID)
	servidor := suite.createTestUser("carlos@ifnmg.edu.br", models.RoleProfessor)

	body, _ := json.Marshal(map[string]interface{}{
		"participanteId": servidor.ID,
		"tipo":           "SERVIDOR",
		"funcao":         "Colaborador",
	})
	c, w := newTestContext("POST", "/api/projetos/1/participantes", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.LinkParticipante(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	participante := response["participante"].(map[string]interface{})
	assert.Equal(suite.T(), servidor.Email, participante["email"])
}

// TestUnlinkParticipante_Success tests removing a participant link
func (suite *ProjetoHandlerTestSuite) TestUnlinkParticipante_Success() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	projeto := suite.createTestProjeto(coordenador.ID)
	aluno := suite.createTestAluno("João Pereira")

	link := &models.ProjetoParticipante{
		ProjetoID: projeto.ID,
		AlunoID:   &aluno.ID,
		Tipo:      models.ParticipanteAluno,
		Funcao:    "Bolsista",
	}
	suite.Require().NoError(suite.db.Create(link).Error)

	c, w := newTestContext("DELETE", "/api/projetos/1/participantes/1", nil)
	c.Params = gin.Params{
		{Key: "id", Value: "1"},
		{Key: "participanteId", Value: "1"},
	}

	suite.handler.UnlinkParticipante(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.ProjetoParticipante{}).Count(&count)
	assert.Zero(suite.T(), count)

	// The student record itself survives the unlink
	suite.db.Model(&models.Aluno{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestUnlinkParticipante_NaoVinculado tests removing a link that does not exist
func (suite *ProjetoHandlerTestSuite) TestUnlinkParticipante_NaoVinculado() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	suite.createTestProjeto(coordenador.ID)

	c, w := newTestContext("DELETE", "/api/projetos/1/participantes/999", nil)
	c.Params = gin.Params{
		{Key: "id", Value: "1"},
		{Key: "participanteId", Value: "999"},
	}

	suite.handler.UnlinkParticipante(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUploadImagem_Principal tests that a principal upload demotes the
// previous principal image
func (suite *ProjetoHandlerTestSuite) TestUploadImagem_Principal() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	projeto := suite.createTestProjeto(coordenador.ID)

	for _, name := range []string{"capa1.png", "capa2.png"} {
		body, contentType, err := multipartUpload("imagem", name, "image/png", []byte("png-data"), nil)
		suite.Require().NoError(err)

		c, w := newMultipartContext("POST", "/api/projetos/1/imagem?principal=true", body, contentType)
		c.Params = gin.Params{{Key: "id", Value: "1"}}

		suite.handler.UploadImagem(c)
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	assert.Equal(suite.T(), int64(1), suite.countPrincipais(projeto.ID))

	var count int64
	suite.db.Model(&models.ImagemProjeto{}).Where("projeto_id = ?", projeto.ID).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

// TestUploadImagem_TipoInvalido tests uploading a non-image file
func (suite *ProjetoHandlerTestSuite) TestUploadImagem_TipoInvalido() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	suite.createTestProjeto(coordenador.ID)

	body, contentType, err := multipartUpload("imagem", "nota.txt", "text/plain", []byte("texto"), nil)
	suite.Require().NoError(err)

	c, w := newMultipartContext("POST", "/api/projetos/1/imagem", body, contentType)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UploadImagem(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUploadImagem_SalvaArquivo tests that the file lands on disk under
// the upload tree
func (suite *ProjetoHandlerTestSuite) TestUploadImagem_SalvaArquivo() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	suite.createTestProjeto(coordenador.ID)

	body, contentType, err := multipartUpload("imagem", "capa.png", "image/png", []byte("png-data"), nil)
	suite.Require().NoError(err)

	c, w := newMultipartContext("POST", "/api/projetos/1/imagem", body, contentType)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UploadImagem(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	url := response["url"].(string)
	assert.Contains(suite.T(), url, "/uploads/imagens/")
	assert.False(suite.T(), response["principal"].(bool))

	rel := url[len("/uploads/"):]
	_, statErr := os.Stat(filepath.Join(suite.store.BaseDir(), rel))
	assert.NoError(suite.T(), statErr)
}

// TestSetImagemPrincipal tests promoting a second image to principal
func (suite *ProjetoHandlerTestSuite) TestSetImagemPrincipal() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	projeto := suite.createTestProjeto(coordenador.ID)
	primeira := suite.createTestImagem(projeto.ID, "/uploads/imagens/capa1.png", true)
	segunda := suite.createTestImagem(projeto.ID, "/uploads/imagens/capa2.png", false)

	c, w := newTestContext("PATCH", "/api/projetos/imagem/2/principal", nil)
	c.Params = gin.Params{{Key: "id", Value: "2"}}

	suite.handler.SetImagemPrincipal(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), int64(1), suite.countPrincipais(projeto.ID))

	var stored models.ImagemProjeto
	suite.Require().NoError(suite.db.First(&stored, segunda.ID).Error)
	assert.True(suite.T(), stored.Principal)

	stored = models.ImagemProjeto{}
	suite.Require().NoError(suite.db.First(&stored, primeira.ID).Error)
	assert.False(suite.T(), stored.Principal)
}

// TestDeleteImagem_ArquivoAusente tests that a missing file on disk does
// not block removing the image record
func (suite *ProjetoHandlerTestSuite) TestDeleteImagem_ArquivoAusente() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	projeto := suite.createTestProjeto(coordenador.ID)
	img := suite.createTestImagem(projeto.ID, "/uploads/imagens/sumiu.png", false)

	c, w := newTestContext("DELETE", "/api/projetos/imagem/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteImagem(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.ImagemProjeto{}).Where("id = ?", img.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestDeleteProjeto_RemoveVinculos tests that deleting a project removes
// its participant links and image rows but not the people
func (suite *ProjetoHandlerTestSuite) TestDeleteProjeto_RemoveVinculos() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	projeto := suite.createTestProjeto(coordenador.ID)
	aluno := suite.createTestAluno("João Pereira")

	link := &models.ProjetoParticipante{
		ProjetoID: projeto.ID,
		AlunoID:   &aluno.ID,
		Tipo:      models.ParticipanteAluno,
		Funcao:    "Bolsista",
	}
	suite.Require().NoError(suite.db.Create(link).Error)
	suite.createTestImagem(projeto.ID, "/uploads/imagens/capa.png", true)

	c, w := newTestContext("DELETE", "/api/projetos/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteProjeto(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Projeto{}).Count(&count)
	assert.Zero(suite.T(), count)
	suite.db.Model(&models.ProjetoParticipante{}).Count(&count)
	assert.Zero(suite.T(), count)
	suite.db.Model(&models.ImagemProjeto{}).Count(&count)
	assert.Zero(suite.T(), count)

	suite.db.Model(&models.Aluno{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestListProjetos_FilterStatus tests listing filtered by status
func (suite *ProjetoHandlerTestSuite) TestListProjetos_FilterStatus() {
	coordenador := suite.createTestUser("maria@ifnmg.edu.br", models.RoleCoordenador)
	suite.createTestProjeto(coordenador.ID)

	concluido := suite.createTestProjeto(coordenador.ID)
	suite.Require().NoError(suite.db.Model(concluido).Update("status", models.StatusConcluido).Error)

	c, w := newTestContext("GET", "/api/projetos", nil)
	c.Request.URL.RawQuery = "status=CONCLUIDO"

	suite.handler.ListProjetos(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	projetos := response["projetos"].([]interface{})
	assert.Len(suite.T(), projetos, 1)
	assert.Equal(suite.T(), "CONCLUIDO", projetos[0].(map[string]interface{})["status"])
}

// TestSuite runs the test suite
func TestProjetoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjetoHandlerTestSuite))
}
