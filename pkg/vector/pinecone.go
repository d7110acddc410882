package vector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Zereker/vecns/internal/domain"
)

// MarkerVectorID is the id of the vector written to materialise a namespace.
// Pinecone namespaces exist only while they hold at least one vector.
const MarkerVectorID = "__vecns_marker__"

// PineconeConfig holds Pinecone configuration
type PineconeConfig struct {
	APIKey         string `toml:"api_key"`
	ControllerHost string `toml:"controller_host"`
	SourceTag      string `toml:"source_tag"`
}

// Validate checks Pinecone configuration
func (c *PineconeConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (set PINECONE_API_KEY)")
	}
	return nil
}

// String hides the API key.
func (c PineconeConfig) String() string {
	key := "<unset>"
	if c.APIKey != "" {
		key = "<redacted>"
	}
	return fmt.Sprintf("{api_key:%s controller_host:%s source_tag:%s}", key, c.ControllerHost, c.SourceTag)
}

// controlPlane is the subset of *pinecone.Client used for index lookups.
type controlPlane interface {
	DescribeIndex(ctx context.Context, idxName string) (*pinecone.Index, error)
}

// indexConn is the subset of *pinecone.IndexConnection used by the store.
type indexConn interface {
	DescribeIndexStats(ctx context.Context) (*pinecone.DescribeIndexStatsResponse, error)
	UpsertVectors(ctx context.Context, in []*pinecone.Vector) (uint32, error)
	DeleteAllVectorsInNamespace(ctx context.Context) error
	Close() error
}

type dialFunc func(host, namespace string) (indexConn, error)

type indexInfo struct {
	host      string
	dimension int
}

// PineconeStore implements NamespaceStore on top of the Pinecone SDK
type PineconeStore struct {
	logger  *slog.Logger
	control controlPlane
	dial    dialFunc

	mu      sync.Mutex
	indexes map[string]indexInfo
}

// 确保 PineconeStore 实现 NamespaceStore 接口
var _ NamespaceStore = (*PineconeStore)(nil)

// NewPineconeStore initialises a Pinecone client session.
func NewPineconeStore(cfg PineconeConfig) (*PineconeStore, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:    cfg.APIKey,
		Host:      cfg.ControllerHost,
		SourceTag: cfg.SourceTag,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	dial := func(host, namespace string) (indexConn, error) {
		conn, err := client.Index(pinecone.NewIndexConnParams{Host: host, Namespace: namespace})
		if err != nil {
			return nil, err
		}
		return conn, nil
	}

	return newPineconeStore(client, dial), nil
}

func newPineconeStore(control controlPlane, dial dialFunc) *PineconeStore {
	return &PineconeStore{
		logger:  slog.Default().With("module", "pinecone"),
		control: control,
		dial:    dial,
		indexes: make(map[string]indexInfo),
	}
}

// resolveIndex looks up the data-plane host and dimension of index.
func (s *PineconeStore) resolveIndex(ctx context.Context, index string) (indexInfo, error) {
	s.mu.Lock()
	info, ok := s.indexes[index]
	s.mu.Unlock()
	if ok {
		return info, nil
	}

	idx, err := s.control.DescribeIndex(ctx, index)
	if err != nil {
		return indexInfo{}, errors.Wrapf(err, "describe index %s", index)
	}
	if idx.Status == nil || !idx.Status.Ready {
		return indexInfo{}, errors.Wrapf(domain.ErrIndexNotReady, "index %s", index)
	}
	if idx.Host == "" {
		return indexInfo{}, errors.Errorf("index %s has no host", index)
	}

	info = indexInfo{host: idx.Host, dimension: int(idx.Dimension)}

	s.mu.Lock()
	s.indexes[index] = info
	s.mu.Unlock()

	s.logger.Debug("resolved index", "index", index, "host", info.host, "dimension", info.dimension)
	return info, nil
}

// withConn opens a data-plane connection scoped to namespace and closes it after fn.
func (s *PineconeStore) withConn(ctx context.Context, index, namespace string, fn func(indexConn, indexInfo) error) error {
	info, err := s.resolveIndex(ctx, index)
	if err != nil {
		return err
	}

	conn, err := s.dial(info.host, namespace)
	if err != nil {
		return errors.Wrapf(err, "connect to index %s", index)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Warn("failed to close index connection", "index", index, "error", cerr)
		}
	}()

	return fn(conn, info)
}

func namespaceStats(ctx context.Context, conn indexConn, index string) (map[string]*pinecone.NamespaceSummary, error) {
	stats, err := conn.DescribeIndexStats(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "describe stats of index %s", index)
	}
	if stats.Namespaces == nil {
		return map[string]*pinecone.NamespaceSummary{}, nil
	}
	return stats.Namespaces, nil
}

// markerVector builds a unit vector of the given dimension.
func markerVector(dimension int) (*pinecone.Vector, error) {
	if dimension <= 0 {
		return nil, errors.Errorf("invalid index dimension %d", dimension)
	}

	values := make([]float32, dimension)
	values[0] = 1

	metadata, err := structpb.NewStruct(map[string]any{"vecns_marker": true})
	if err != nil {
		return nil, errors.Wrap(err, "build marker metadata")
	}

	return &pinecone.Vector{
		Id:       MarkerVectorID,
		Values:   values,
		Metadata: metadata,
	}, nil
}

// CreateNamespace materialises namespace by upserting the marker vector.
func (s *PineconeStore) CreateNamespace(ctx context.Context, index, namespace string) error {
	return s.withConn(ctx, index, namespace, func(conn indexConn, info indexInfo) error {
		namespaces, err := namespaceStats(ctx, conn, index)
		if err != nil {
			return err
		}
		if _, ok := namespaces[namespace]; ok {
			return errors.Wrapf(domain.ErrNamespaceExists, "%s/%s", index, namespace)
		}

		marker, err := markerVector(info.dimension)
		if err != nil {
			return err
		}

		count, err := conn.UpsertVectors(ctx, []*pinecone.Vector{marker})
		if err != nil {
			return errors.Wrapf(err, "upsert marker into %s/%s", index, namespace)
		}

		s.logger.Debug("namespace created", "index", index, "namespace", namespace, "upserted", count)
		return nil
	})
}

// DeleteNamespace removes every vector of namespace.
func (s *PineconeStore) DeleteNamespace(ctx context.Context, index, namespace string) error {
	return s.withConn(ctx, index, namespace, func(conn indexConn, _ indexInfo) error {
		namespaces, err := namespaceStats(ctx, conn, index)
		if err != nil {
			return err
		}
		if _, ok := namespaces[namespace]; !ok {
			return errors.Wrapf(domain.ErrNamespaceNotFound, "%s/%s", index, namespace)
		}

		if err := conn.DeleteAllVectorsInNamespace(ctx); err != nil {
			return errors.Wrapf(err, "delete vectors of %s/%s", index, namespace)
		}

		s.logger.Debug("namespace deleted", "index", index, "namespace", namespace)
		return nil
	})
}

// ListNamespaces reads namespaces from the index stats.
func (s *PineconeStore) ListNamespaces(ctx context.Context, index string) ([]domain.Namespace, error) {
	var result []domain.Namespace

	err := s.withConn(ctx, index, "", func(conn indexConn, _ indexInfo) error {
		namespaces, err := namespaceStats(ctx, conn, index)
		if err != nil {
			return err
		}

		result = make([]domain.Namespace, 0, len(namespaces))
		for name, summary := range namespaces {
			ns := domain.Namespace{Index: index, Name: name}
			if summary != nil {
				ns.VectorCount = summary.VectorCount
			}
			result = append(result, ns)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// DescribeNamespace returns the stats of a single namespace.
func (s *PineconeStore) DescribeNamespace(ctx context.Context, index, namespace string) (domain.Namespace, error) {
	namespaces, err := s.ListNamespaces(ctx, index)
	if err != nil {
		return domain.Namespace{}, err
	}

	for _, ns := range namespaces {
		if ns.Name == namespace {
			return ns, nil
		}
	}
	return domain.Namespace{}, errors.Wrapf(domain.ErrNamespaceNotFound, "%s/%s", index, namespace)
}

// Close ends the client session. The SDK client keeps no open connection
// outside of withConn, so only the resolved index cache is dropped.
func (s *PineconeStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes = make(map[string]indexInfo)
	return nil
}
