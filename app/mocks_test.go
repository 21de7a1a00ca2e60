package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/service"
)

type mockFileReader struct {
	mock.Mock
}

func (m *mockFileReader) CollectSourceFiles(paths []string, recursive bool, include, exclude []string) ([]string, error) {
	args := m.Called(paths, recursive, include, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFileReader) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockFileReader) IsSourceFile(path string) bool {
	return m.Called(path).Bool(0)
}

type mockComparisonService struct {
	mock.Mock
}

func (m *mockComparisonService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.ComparisonResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComparisonResult), args.Error(1)
}

func (m *mockComparisonService) BatchCompare(ctx context.Context, req *domain.BatchCompareRequest) (*domain.BatchCompareResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchCompareResponse), args.Error(1)
}

type mockCorpusService struct {
	mock.Mock
}

func (m *mockCorpusService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResponse), args.Error(1)
}

func (m *mockCorpusService) Add(ctx context.Context, req *domain.AddRequest) (*domain.AddResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AddResult), args.Error(1)
}

func (m *mockCorpusService) List(ctx context.Context, lang domain.Language) ([]domain.CorpusEntry, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CorpusEntry), args.Error(1)
}

type mockImporter struct {
	mock.Mock
}

func (m *mockImporter) Import(ctx context.Context, reader domain.FileReader, paths []string, opts service.ImportOptions, progress domain.ProgressManager) (*domain.ImportResult, error) {
	args := m.Called(ctx, reader, paths, opts, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

type mockOutputFormatter struct {
	mock.Mock
}

func (m *mockOutputFormatter) WriteComparison(result *domain.ComparisonResult, format domain.OutputFormat, writer io.Writer) error {
	return m.Called(result, format, writer).Error(0)
}

func (m *mockOutputFormatter) WriteSearch(response *domain.SearchResponse, format domain.OutputFormat, writer io.Writer) error {
	return m.Called(response, format, writer).Error(0)
}

func (m *mockOutputFormatter) WriteBatch(response *domain.BatchCompareResponse, format domain.OutputFormat, writer io.Writer) error {
	return m.Called(response, format, writer).Error(0)
}

func (m *mockOutputFormatter) WriteEntries(entries []domain.CorpusEntry, format domain.OutputFormat, writer io.Writer) error {
	return m.Called(entries, format, writer).Error(0)
}
