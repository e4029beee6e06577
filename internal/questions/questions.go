package questions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/victornm/pollquiz/internal/domain"
	"github.com/victornm/pollquiz/internal/errors"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// FormatOf derives the format from a file name.
func FormatOf(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", errors.Validationf("unsupported question file %q", name)
	}
}

// Pool is an imported question pool. Skipped names the rows that did not make a valid question.
type Pool struct {
	Questions []domain.Question
	Skipped   []string
}

func LoadFile(path string) (*Pool, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// Load parses a pool. Invalid rows are skipped. A pool without a single valid question is a
// validation error.
func Load(r io.Reader, format Format) (*Pool, error) {
	var (
		rows []row
		err  error
	)

	switch format {
	case FormatYAML:
		rows, err = readYAML(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatJSON:
		rows, err = readQuizData(r)
	case FormatHTML:
		rows, err = readHTML(r)
	default:
		return nil, errors.Validationf("unsupported question format %q", format)
	}
	if err != nil {
		return nil, err
	}

	p := &Pool{}
	for _, rw := range rows {
		q, err := domain.NewQuestion(rw.Prompt, rw.Correct, rw.Options, rw.SourceRow)
		if err != nil {
			p.Skipped = append(p.Skipped, err.Error())
			continue
		}
		p.Questions = append(p.Questions, q)
	}

	if len(p.Questions) == 0 {
		return p, errors.Validationf("no valid question in %d rows", len(rows))
	}

	return p, nil
}

type row struct {
	Prompt    string   `yaml:"prompt"`
	Correct   string   `yaml:"correct"`
	Options   []string `yaml:"options"`
	SourceRow string   `yaml:"source_row"`
}

func readYAML(r io.Reader) ([]row, error) {
	var rows []row
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
		return nil, errors.New(errors.CodeValidation, errors.WithMessagef("decode yaml questions"), errors.WithCause(err))
	}

	for i := range rows {
		if rows[i].SourceRow == "" {
			rows[i].SourceRow = strconv.Itoa(i + 1)
		}
	}
	return rows, nil
}

// readXLSX reads the first sheet: question, correct answer, then alternatives. The first row is a
// header. The source row is the sheet row number.
func readXLSX(r io.Reader) ([]row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, errors.WithMessagef("open xlsx questions"), errors.WithCause(err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Validationf("xlsx questions: workbook has no sheet")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var rows []row
	for i, c := range cells {
		if i == 0 || len(c) == 0 {
			continue
		}

		rw := row{SourceRow: strconv.Itoa(i + 1)}
		rw.Prompt = c[0]
		if len(c) > 1 {
			rw.Correct = c[1]
		}
		if len(c) > 2 {
			rw.Options = slices.Clone(c[2:])
		}
		rows = append(rows, rw)
	}

	return rows, nil
}

type quizItem struct {
	Question string            `json:"question"`
	Answers  map[string]string `json:"answers"`
	Correct  string            `json:"correct"`
}

// readQuizData reads an array of {question, answers: {a: .., b: ..}, correct: "b"}.
func readQuizData(r io.Reader) ([]row, error) {
	var items []quizItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.New(errors.CodeValidation, errors.WithMessagef("decode quiz data"), errors.WithCause(err))
	}

	rows := make([]row, 0, len(items))
	for i, it := range items {
		keys := make([]string, 0, len(it.Answers))
		for k := range it.Answers {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		rw := row{
			Prompt:    it.Question,
			Correct:   it.Answers[it.Correct],
			SourceRow: strconv.Itoa(i + 1),
		}
		for _, k := range keys {
			if k != it.Correct {
				rw.Options = append(rw.Options, it.Answers[k])
			}
		}
		rows = append(rows, rw)
	}

	return rows, nil
}

var quizDataPattern = regexp.MustCompile(`(?s)const\s+quizData\s*=\s*(\[.*?\]);`)

// readHTML extracts the quizData array embedded in a page script.
func readHTML(r io.Reader) ([]row, error) {
	page, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	m := quizDataPattern.FindSubmatch(page)
	if m == nil {
		return nil, errors.Validationf("html questions: no quizData script found")
	}

	return readQuizData(bytes.NewReader(m[1]))
}
