package mocks

import (
	"context"
	"sync"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
)

// --- MockDocumentationSource ---

type MockDocumentationSource struct {
	Index domain.DocIndex
	Err   error
	calls int
}

func NewMockDocumentationSource(index domain.DocIndex) *MockDocumentationSource {
	if index == nil {
		index = domain.NewDocIndex()
	}
	return &MockDocumentationSource{Index: index}
}

func (m *MockDocumentationSource) Load(ctx context.Context) (domain.DocIndex, error) {
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	// Hand out a copy so callers cannot mutate the fixture
	out := domain.NewDocIndex()
	for k, v := range m.Index {
		out[k] = v
	}
	return out, nil
}

func (m *MockDocumentationSource) Calls() int {
	return m.calls
}

// --- MockAssetRepository ---

type MockAssetRepository struct {
	mu     sync.RWMutex
	assets []domain.AssetFile
	Err    error
}

func NewMockAssetRepository(assets ...domain.AssetFile) *MockAssetRepository {
	return &MockAssetRepository{assets: assets}
}

func (m *MockAssetRepository) Add(filename string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = append(m.assets, domain.AssetFile{Filename: filename, Size: size})
}

func (m *MockAssetRepository) List(ctx context.Context) ([]domain.AssetFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.AssetFile, len(m.assets))
	copy(out, m.assets)
	return out, nil
}

// --- MockValidator ---

type MockValidator struct {
	mu      sync.Mutex
	Outcome *domain.ValidationOutcome
	Err     error
	calls   []string
}

// NewMockValidator returns a validator that reports success
func NewMockValidator() *MockValidator {
	return &MockValidator{Outcome: &domain.ValidationOutcome{OK: true}}
}

// NewFailingMockValidator returns a validator that reports the given output lines
func NewFailingMockValidator(lines ...string) *MockValidator {
	return &MockValidator{Outcome: &domain.ValidationOutcome{OK: false, ErrorLines: lines}}
}

func (m *MockValidator) Validate(ctx context.Context, dir string) (*domain.ValidationOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, dir)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Outcome, nil
}

func (m *MockValidator) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
