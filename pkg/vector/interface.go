package vector

import (
	"context"

	"github.com/Zereker/vecns/internal/domain"
)

// NamespaceStore manages namespaces inside the indexes of a vector database.
type NamespaceStore interface {
	// CreateNamespace creates namespace in index.
	// Returns domain.ErrNamespaceExists if it is already visible.
	CreateNamespace(ctx context.Context, index, namespace string) error

	// DeleteNamespace removes namespace and every vector in it.
	// Returns domain.ErrNamespaceNotFound if it does not exist.
	DeleteNamespace(ctx context.Context, index, namespace string) error

	// ListNamespaces returns the namespaces of index sorted by name.
	ListNamespaces(ctx context.Context, index string) ([]domain.Namespace, error)

	// DescribeNamespace returns a single namespace.
	DescribeNamespace(ctx context.Context, index, namespace string) (domain.Namespace, error)

	// Close releases the client session.
	Close() error
}
