package vector

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/Zereker/vecns/internal/domain"
)

// MemoryStore 内存 namespace 存储（用于测试和 dry run）
type MemoryStore struct {
	mu      sync.Mutex
	indexes map[string]map[string]uint32
	closed  bool

	// autoIndex 首次访问未知 index 时自动创建
	autoIndex bool
}

// 确保 MemoryStore 实现 NamespaceStore 接口
var _ NamespaceStore = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding the given indexes, all empty.
func NewMemoryStore(indexes ...string) *MemoryStore {
	s := &MemoryStore{indexes: make(map[string]map[string]uint32)}
	for _, idx := range indexes {
		s.indexes[idx] = make(map[string]uint32)
	}
	return s
}

// AutoCreateIndexes makes every unknown index exist, empty, on first use.
func (s *MemoryStore) AutoCreateIndexes() *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoIndex = true
	return s
}

// AddIndex registers an empty index.
func (s *MemoryStore) AddIndex(index string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indexes[index]; !ok {
		s.indexes[index] = make(map[string]uint32)
	}
}

func (s *MemoryStore) index(index string) (map[string]uint32, error) {
	if s.closed {
		return nil, errors.New("store is closed")
	}
	namespaces, ok := s.indexes[index]
	if !ok && s.autoIndex {
		namespaces = make(map[string]uint32)
		s.indexes[index] = namespaces
		ok = true
	}
	if !ok {
		return nil, errors.Errorf("index %q not found", index)
	}
	return namespaces, nil
}

// CreateNamespace 创建 namespace，写入一个 marker 向量
func (s *MemoryStore) CreateNamespace(_ context.Context, index, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	namespaces, err := s.index(index)
	if err != nil {
		return err
	}
	if _, ok := namespaces[namespace]; ok {
		return errors.Wrapf(domain.ErrNamespaceExists, "%s/%s", index, namespace)
	}
	namespaces[namespace] = 1
	return nil
}

// DeleteNamespace 删除 namespace
func (s *MemoryStore) DeleteNamespace(_ context.Context, index, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	namespaces, err := s.index(index)
	if err != nil {
		return err
	}
	if _, ok := namespaces[namespace]; !ok {
		return errors.Wrapf(domain.ErrNamespaceNotFound, "%s/%s", index, namespace)
	}
	delete(namespaces, namespace)
	return nil
}

// ListNamespaces 列出 index 下所有 namespace
func (s *MemoryStore) ListNamespaces(_ context.Context, index string) ([]domain.Namespace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	namespaces, err := s.index(index)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Namespace, 0, len(namespaces))
	for name, count := range namespaces {
		result = append(result, domain.Namespace{Index: index, Name: name, VectorCount: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// DescribeNamespace 查询单个 namespace
func (s *MemoryStore) DescribeNamespace(_ context.Context, index, namespace string) (domain.Namespace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	namespaces, err := s.index(index)
	if err != nil {
		return domain.Namespace{}, err
	}
	count, ok := namespaces[namespace]
	if !ok {
		return domain.Namespace{}, errors.Wrapf(domain.ErrNamespaceNotFound, "%s/%s", index, namespace)
	}
	return domain.Namespace{Index: index, Name: namespace, VectorCount: count}, nil
}

// Close 关闭
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
