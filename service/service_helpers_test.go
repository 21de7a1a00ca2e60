package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/plagscan/domain"
	"github.com/ludo-technologies/plagscan/internal/analyzer"
	"github.com/ludo-technologies/plagscan/internal/corpus"
	"github.com/ludo-technologies/plagscan/internal/embedding"
)

const bubbleSort = `def bubble_sort(arr):
    n = len(arr)
    for i in range(n):
        for j in range(0, n - i - 1):
            if arr[j] > arr[j + 1]:
                arr[j], arr[j + 1] = arr[j + 1], arr[j]
    return arr
`

const linearSearch = `def linear_search(items, target):
    for index, value in enumerate(items):
        if value == target:
            return index
    return -1
`

const jsFactorial = `function factorial(n) {
  if (n <= 1) {
    return 1;
  }
  return n * factorial(n - 1);
}
`

type unavailableEmbedder struct{}

func (unavailableEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("provider unavailable")
}

func (unavailableEmbedder) Dimension() int { return 16 }

func newTestEngine(t *testing.T, embedder domain.Embedder) *analyzer.Engine {
	t.Helper()
	engine, err := analyzer.NewEngine(embedder, analyzer.DefaultEngineConfig())
	require.NoError(t, err)
	return engine
}

func newLocalEngine(t *testing.T) *analyzer.Engine {
	return newTestEngine(t, embedding.NewHashingEmbedder(128))
}

func newTestCorpusService(t *testing.T, engine *analyzer.Engine, opts CorpusServiceOptions) *CorpusService {
	t.Helper()
	svc, err := NewCorpusService(context.Background(), engine, corpus.NewMemoryStore(), opts)
	require.NoError(t, err)
	return svc
}

func mustAdd(t *testing.T, svc *CorpusService, code string, lang domain.Language) *domain.AddResult {
	t.Helper()
	res, err := svc.Add(context.Background(), &domain.AddRequest{Code: code, Language: lang, Source: "test"})
	require.NoError(t, err)
	return res
}
