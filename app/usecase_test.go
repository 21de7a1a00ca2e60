package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/service"
)

func TestCompareUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	reader := &mockFileReader{}
	svc := &mockComparisonService{}
	formatter := &mockOutputFormatter{}
	var out bytes.Buffer

	reader.On("ReadFile", "a.py").Return([]byte("def a(): pass"), nil)
	reader.On("ReadFile", "b.py").Return([]byte("def b(): pass"), nil)

	expected := &domain.ComparisonResult{ID: "r1", OverallScore: 0.7}
	svc.On("Compare", ctx, mock.MatchedBy(func(req *domain.CompareRequest) bool {
		return req.Code1 == "def a(): pass" &&
			req.Code2 == "def b(): pass" &&
			req.Filename1 == "a.py" &&
			req.Language2 == domain.LanguagePython &&
			req.IncludeEvidence && !req.Detailed
	})).Return(expected, nil)
	formatter.On("WriteComparison", expected, domain.OutputFormatJSON, &out).Return(nil)

	uc := NewCompareUseCase(svc, reader, formatter)
	result, err := uc.Execute(ctx, CompareInput{
		Path1:           "a.py",
		Path2:           "b.py",
		Language2:       domain.LanguagePython,
		IncludeEvidence: true,
		OutputFormat:    domain.OutputFormatJSON,
		OutputWriter:    &out,
	})
	require.NoError(t, err)
	assert.Same(t, expected, result)

	reader.AssertExpectations(t)
	svc.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestCompareUseCase_Stdin(t *testing.T) {
	ctx := context.Background()
	reader := &mockFileReader{}
	svc := &mockComparisonService{}
	formatter := &mockOutputFormatter{}

	reader.On("ReadFile", "b.js").Return([]byte("let x = 1;"), nil)
	svc.On("Compare", ctx, mock.MatchedBy(func(req *domain.CompareRequest) bool {
		return req.Code1 == "x = 1\n" && req.Filename1 == "" && req.Filename2 == "b.js"
	})).Return(&domain.ComparisonResult{}, nil)
	formatter.On("WriteComparison", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewCompareUseCase(svc, reader, formatter)
	_, err := uc.Execute(ctx, CompareInput{
		Path1:        StdinPath,
		Path2:        "b.js",
		OutputWriter: &bytes.Buffer{},
		Stdin:        strings.NewReader("x = 1\n"),
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CompareInput{Path1: StdinPath, Path2: StdinPath, OutputWriter: &bytes.Buffer{}})
	assert.True(t, domain.IsInputError(err))
}

func TestCompareUseCase_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing writer", func(t *testing.T) {
		uc := NewCompareUseCase(&mockComparisonService{}, &mockFileReader{}, &mockOutputFormatter{})
		_, err := uc.Execute(ctx, CompareInput{Path1: "a", Path2: "b"})
		assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		reader := &mockFileReader{}
		reader.On("ReadFile", "a.py").Return(nil, domain.NewFileNotFoundError("a.py", nil))
		uc := NewCompareUseCase(&mockComparisonService{}, reader, &mockOutputFormatter{})
		_, err := uc.Execute(ctx, CompareInput{Path1: "a.py", Path2: "b.py", OutputWriter: &bytes.Buffer{}})
		assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
	})

	t.Run("formatter failure", func(t *testing.T) {
		reader := &mockFileReader{}
		reader.On("ReadFile", mock.Anything).Return([]byte("x"), nil)
		svc := &mockComparisonService{}
		svc.On("Compare", ctx, mock.Anything).Return(&domain.ComparisonResult{}, nil)
		formatter := &mockOutputFormatter{}
		formatter.On("WriteComparison", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("closed"))

		uc := NewCompareUseCase(svc, reader, formatter)
		_, err := uc.Execute(ctx, CompareInput{Path1: "a", Path2: "b", OutputWriter: &bytes.Buffer{}})
		assert.Equal(t, domain.ErrCodeOutputError, domain.ErrorCode(err))
	})
}

func TestSearchUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	reader := &mockFileReader{}
	svc := &mockCorpusService{}
	formatter := &mockOutputFormatter{}
	var out bytes.Buffer

	reader.On("ReadFile", "sub.py").Return([]byte("def f(): pass"), nil)
	resp := &domain.SearchResponse{ID: "s1"}
	svc.On("Search", ctx, &domain.SearchRequest{
		Code:     "def f(): pass",
		Language: domain.LanguageAuto,
		Filename: "sub.py",
		TopK:     5,
	}).Return(resp, nil)
	formatter.On("WriteSearch", resp, domain.OutputFormatText, &out).Return(nil)

	uc := NewSearchUseCase(svc, reader, formatter)
	got, err := uc.Execute(ctx, SearchInput{
		Path:         "sub.py",
		Language:     domain.LanguageAuto,
		TopK:         5,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &out,
	})
	require.NoError(t, err)
	assert.Same(t, resp, got)
	svc.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestSearchUseCase_ServiceError(t *testing.T) {
	ctx := context.Background()
	reader := &mockFileReader{}
	reader.On("ReadFile", "x.py").Return([]byte(""), nil)
	svc := &mockCorpusService{}
	svc.On("Search", ctx, mock.Anything).Return(nil, domain.NewValidationError("code must not be empty"))

	uc := NewSearchUseCase(svc, reader, &mockOutputFormatter{})
	_, err := uc.Execute(ctx, SearchInput{Path: "x.py", OutputWriter: &bytes.Buffer{}})
	assert.True(t, domain.IsInputError(err))
}

func TestBatchUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	reader := &mockFileReader{}
	svc := &mockComparisonService{}
	formatter := &mockOutputFormatter{}
	var out bytes.Buffer

	files := []string{"s/a.py", "s/b.py", "s/c.js"}
	reader.On("CollectSourceFiles", []string{"s"}, true, []string(nil), []string{"**/test_*"}).Return(files, nil)
	for _, f := range files {
		reader.On("ReadFile", f).Return([]byte("code of "+f), nil)
	}

	resp := &domain.BatchCompareResponse{TotalPairs: 3}
	svc.On("BatchCompare", ctx, mock.MatchedBy(func(req *domain.BatchCompareRequest) bool {
		if len(req.Submissions) != 3 || req.MinScore != 0.5 {
			return false
		}
		return req.Submissions[2].Filename == "s/c.js" && req.Submissions[2].Content == "code of s/c.js"
	})).Return(resp, nil)
	formatter.On("WriteBatch", resp, domain.OutputFormatCSV, &out).Return(nil)

	uc := NewBatchUseCase(svc, reader, formatter)
	got, err := uc.Execute(ctx, BatchInput{
		Paths:           []string{"s"},
		Recursive:       true,
		ExcludePatterns: []string{"**/test_*"},
		MinScore:        0.5,
		OutputFormat:    domain.OutputFormatCSV,
		OutputWriter:    &out,
	})
	require.NoError(t, err)
	assert.Same(t, resp, got)
	reader.AssertExpectations(t)
	svc.AssertExpectations(t)
}

func TestBatchUseCase_NoFiles(t *testing.T) {
	reader := &mockFileReader{}
	reader.On("CollectSourceFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)

	uc := NewBatchUseCase(&mockComparisonService{}, reader, &mockOutputFormatter{})
	_, err := uc.Execute(context.Background(), BatchInput{Paths: []string{"empty"}, OutputWriter: &bytes.Buffer{}})
	assert.True(t, domain.IsInputError(err))

	_, err = uc.Execute(context.Background(), BatchInput{OutputWriter: &bytes.Buffer{}})
	assert.True(t, domain.IsInputError(err))
}

func TestCorpusUseCase_Add(t *testing.T) {
	ctx := context.Background()
	reader := &mockFileReader{}
	svc := &mockCorpusService{}

	reader.On("ReadFile", "lib/sort.py").Return([]byte("def sort(): pass"), nil)
	result := &domain.AddResult{Accepted: true, EntryID: 4}
	svc.On("Add", ctx, &domain.AddRequest{
		Code:        "def sort(): pass",
		Language:    domain.LanguagePython,
		Description: "sort.py",
		Source:      "lab-2",
		Filename:    "lib/sort.py",
	}).Return(result, nil)

	uc := NewCorpusUseCase(svc, nil, reader, &mockOutputFormatter{}, nil)
	got, err := uc.Add(ctx, CorpusAddInput{Path: "lib/sort.py", Language: domain.LanguagePython, Source: "lab-2"})
	require.NoError(t, err)
	assert.Same(t, result, got)
	svc.AssertExpectations(t)
}

func TestCorpusUseCase_AddDescription(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input CorpusAddInput
		want  *domain.AddRequest
	}{
		{
			name:  "explicit description wins",
			input: CorpusAddInput{Path: "/srv/lab/sort.py", Description: "lab 2 reference"},
			want:  &domain.AddRequest{Code: "x = 1", Description: "lab 2 reference", Filename: "/srv/lab/sort.py"},
		},
		{
			name:  "absolute path keeps only the base name",
			input: CorpusAddInput{Path: "/srv/lab/sort.py"},
			want:  &domain.AddRequest{Code: "x = 1", Description: "sort.py", Filename: "/srv/lab/sort.py"},
		},
		{
			name:  "stdin has no default description",
			input: CorpusAddInput{Path: StdinPath, Stdin: strings.NewReader("x = 1")},
			want:  &domain.AddRequest{Code: "x = 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockFileReader{}
			reader.On("ReadFile", "/srv/lab/sort.py").Return([]byte("x = 1"), nil).Maybe()
			svc := &mockCorpusService{}
			svc.On("Add", ctx, tt.want).Return(&domain.AddResult{Accepted: true}, nil)

			uc := NewCorpusUseCase(svc, nil, reader, &mockOutputFormatter{}, nil)
			_, err := uc.Add(ctx, tt.input)
			require.NoError(t, err)
			svc.AssertExpectations(t)
		})
	}
}

func TestCorpusUseCase_Import(t *testing.T) {
	ctx := context.Background()
	reader := &mockFileReader{}
	importer := &mockImporter{}
	opts := service.ImportOptions{Recursive: true, Source: "archive"}

	result := &domain.ImportResult{Accepted: 2, Duplicates: 1}
	importer.On("Import", ctx, reader, []string{"archive"}, opts, nil).Return(result, nil)

	uc := NewCorpusUseCase(&mockCorpusService{}, importer, reader, &mockOutputFormatter{}, nil)
	got, err := uc.Import(ctx, []string{"archive"}, opts)
	require.NoError(t, err)
	assert.Same(t, result, got)

	_, err = uc.Import(ctx, nil, opts)
	assert.True(t, domain.IsInputError(err))

	_, err = NewCorpusUseCase(&mockCorpusService{}, nil, reader, nil, nil).Import(ctx, []string{"x"}, opts)
	assert.True(t, domain.IsInputError(err))
}

func TestCorpusUseCase_List(t *testing.T) {
	ctx := context.Background()
	svc := &mockCorpusService{}
	formatter := &mockOutputFormatter{}
	var out bytes.Buffer

	entries := []domain.CorpusEntry{{ID: 1, Language: domain.LanguageGo}}
	svc.On("List", ctx, domain.LanguageGo).Return(entries, nil)
	formatter.On("WriteEntries", entries, domain.OutputFormatYAML, &out).Return(nil)

	uc := NewCorpusUseCase(svc, nil, &mockFileReader{}, formatter, nil)
	got, err := uc.List(ctx, domain.LanguageGo, domain.OutputFormatYAML, &out)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	formatter.AssertExpectations(t)
}
