package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ifnmg/vitrine-projetos/internal/dto"
	"github.com/ifnmg/vitrine-projetos/internal/models"
)

var ErrCSVInvalido = errors.New("arquivo CSV inválido ou sem cabeçalho")

// ImportService handles the CSV batch imports for students and staff
// users. Each data row is validated independently; invalid rows are
// reported with their line number and skipped, valid rows are inserted.
type ImportService struct {
	alunoService *AlunoService
	userService  *UserService
	validate     *validator.Validate
}

// NewImportService creates a new ImportService.
func NewImportService(alunoService *AlunoService, userService *UserService) *ImportService {
	return &ImportService{
		alunoService: alunoService,
		userService:  userService,
		validate:     validator.New(),
	}
}

type alunoCSVRow struct {
	Nome  string `validate:"required,min=3,max=255"`
	Turma string `validate:"required,min=3,max=100"`
	Curso string `validate:"required,min=3,max=100"`
}

type userCSVRow struct {
	Nome  string `validate:"required,min=3,max=255"`
	Email string `validate:"required,email"`
	Senha string `validate:"required,min=6"`
}

// ImportAlunos reads a CSV with nome/turma/curso columns and inserts the
// valid rows. The returned totals always reconcile:
// totalRecebido = totalInserido + len(erros).
func (s *ImportService) ImportAlunos(r io.Reader) (*dto.ImportacaoDTO, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, "nome", "turma", "curso")
	if err != nil {
		return nil, err
	}

	result := &dto.ImportacaoDTO{Erros: []dto.ErroLinhaDTO{}}

	for i, row := range rows {
		linha := i + 1 // ordinal of the data row, not counting the header
		result.TotalRecebido++

		record := alunoCSVRow{
			Nome:  cell(row, cols["nome"]),
			Turma: cell(row, cols["turma"]),
			Curso: cell(row, cols["curso"]),
		}

		if msgs := s.validateRow(record); len(msgs) > 0 {
			result.Erros = append(result.Erros, dto.ErroLinhaDTO{Linha: linha, Mensagens: msgs})
			continue
		}

		_, err := s.alunoService.Create(CreateAlunoInput{
			Nome:  record.Nome,
			Turma: record.Turma,
			Curso: record.Curso,
		})
		if err != nil {
			if errors.Is(err, ErrAlunoDuplicado) {
				result.Erros = append(result.Erros, dto.ErroLinhaDTO{
					Linha:     linha,
					Mensagens: []string{ErrAlunoDuplicado.Error()},
				})
				continue
			}
			return nil, err
		}

		result.TotalInserido++
	}

	return result, nil
}

// ImportUsers reads a CSV with nome/e-mail/senha columns and inserts the
// valid rows. Every imported user receives the COORDENADOR role, matching
// the established import behavior.
func (s *ImportService) ImportUsers(r io.Reader) (*dto.ImportacaoDTO, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, "nome", "e-mail", "senha")
	if err != nil {
		// Accept "email" as a fallback header spelling.
		cols, err = columnIndex(header, "nome", "email", "senha")
		if err != nil {
			return nil, err
		}
		cols["e-mail"] = cols["email"]
	}

	result := &dto.ImportacaoDTO{Erros: []dto.ErroLinhaDTO{}}

	for i, row := range rows {
		linha := i + 1
		result.TotalRecebido++

		record := userCSVRow{
			Nome:  cell(row, cols["nome"]),
			Email: cell(row, cols["e-mail"]),
			Senha: cell(row, cols["senha"]),
		}

		if msgs := s.validateRow(record); len(msgs) > 0 {
			result.Erros = append(result.Erros, dto.ErroLinhaDTO{Linha: linha, Mensagens: msgs})
			continue
		}

		_, err := s.userService.Create(CreateUserInput{
			Nome:  record.Nome,
			Email: record.Email,
			Senha: record.Senha,
			Role:  models.RoleCoordenador,
		})
		if err != nil {
			if errors.Is(err, ErrEmailEmUso) || errors.Is(err, ErrSenhaCurta) {
				result.Erros = append(result.Erros, dto.ErroLinhaDTO{
					Linha:     linha,
					Mensagens: []string{err.Error()},
				})
				continue
			}
			return nil, err
		}

		result.TotalInserido++
	}

	return result, nil
}

func (s *ImportService) validateRow(record interface{}) []string {
	err := s.validate.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s é obrigatório", strings.ToLower(fe.Field())))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s deve ter no mínimo %s caracteres", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s deve ter no máximo %s caracteres", strings.ToLower(fe.Field()), fe.Param()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s inválido", strings.ToLower(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s inválido", strings.ToLower(fe.Field())))
		}
	}
	return msgs
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCSVInvalido, err)
	}
	if len(records) == 0 {
		return nil, nil, ErrCSVInvalido
	}

	return records[0], records[1:], nil
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	cols := make(map[string]int, len(names))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	result := make(map[string]int, len(names))
	for _, name := range names {
		idx, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: coluna %q ausente", ErrCSVInvalido, name)
		}
		result[name] = idx
	}
	return result, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
