package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/Zereker/vecns/internal/action"
	"github.com/Zereker/vecns/pkg/log"
	"github.com/Zereker/vecns/pkg/mq"
	"github.com/Zereker/vecns/pkg/redis"
	"github.com/Zereker/vecns/pkg/vector"
)

// App holds the initialised dependencies of one vecns run
type App struct {
	config    Config
	logger    *slog.Logger
	logWriter io.Writer
	store     vector.NamespaceStore
	queue     mq.MessageQueue
	kafka     bool // queue is the mq singleton producer
	locker    action.Locker

	namespaces *action.Namespaces
}

// Option overrides a dependency, mainly for tests.
type Option func(*App)

// WithStore uses store instead of building one from config.
func WithStore(store vector.NamespaceStore) Option {
	return func(a *App) { a.store = store }
}

// WithQueue uses queue instead of the Kafka producer.
func WithQueue(queue mq.MessageQueue) Option {
	return func(a *App) { a.queue = queue }
}

// WithLogWriter sends console logs to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logWriter = w }
}

// New initialises logging, the vector store client and the optional
// redis lock and Kafka producer.
func New(conf Config, opts ...Option) (*App, error) {
	a := &App{
		config:    conf,
		logWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.initDepend(); err != nil {
		_ = a.Shutdown()
		return nil, errors.WithMessage(err, "init dependency failed")
	}

	a.initNamespaces()
	return a, nil
}

// initDepend initializes all dependencies
func (a *App) initDepend() error {
	// Initialize log first
	if err := log.InitWithWriter(a.config.Log, a.logWriter); err != nil {
		return errors.WithMessage(err, "failed to init log")
	}

	a.logger = log.Logger("app")
	a.logger.Debug("initializing dependencies",
		"backend", a.config.Vector.Backend,
		"pinecone", a.config.Pinecone.String(),
	)

	if a.store == nil {
		store, err := a.newStore()
		if err != nil {
			return errors.WithMessage(err, "failed to init vector store")
		}
		a.store = store
	}

	if a.config.Redis.Enabled {
		a.logger.Debug("initializing redis", "addr", a.config.Redis.Addr)
		if err := redis.Init(a.config.Redis); err != nil {
			return errors.WithMessage(err, "failed to init redis")
		}
		a.locker = redis.NewLocker(redis.Client(), a.config.Redis.TTL())
	}

	if a.queue == nil && a.config.Kafka.Enabled {
		a.logger.Debug("initializing message queue", "brokers", a.config.Kafka.Brokers)
		if err := mq.Init(a.config.Kafka); err != nil {
			return errors.WithMessage(err, "failed to init message queue")
		}
		a.queue = mq.NewQueue()
		a.kafka = true
	}

	return nil
}

func (a *App) newStore() (vector.NamespaceStore, error) {
	switch a.config.Vector.Backend {
	case BackendMemory:
		a.logger.Warn("using in-memory backend, nothing is sent to the vector database")
		return vector.NewMemoryStore(a.config.Target.Index).AutoCreateIndexes(), nil
	case BackendPinecone:
		return vector.NewPineconeStore(a.config.Pinecone)
	default:
		return nil, errors.Errorf("unknown backend: %s", a.config.Vector.Backend)
	}
}

func (a *App) initNamespaces() {
	opts := []action.Option{action.WithConcurrency(a.config.Run.Concurrency)}
	if a.locker != nil {
		opts = append(opts, action.WithLocker(a.locker))
	}
	if a.queue != nil {
		opts = append(opts, action.WithQueue(a.queue, a.config.Kafka.Topic))
	}
	a.namespaces = action.NewNamespaces(a.store, opts...)
}

// Namespaces returns the namespace operations entry point.
func (a *App) Namespaces() *action.Namespaces {
	return a.namespaces
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config {
	return a.config
}

// Shutdown releases the client session and every optional dependency
func (a *App) Shutdown() error {
	logger := a.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("shutting down")

	var err error
	if a.kafka {
		err = mq.Close()
	} else if a.queue != nil {
		err = a.queue.Close()
	}
	if err != nil {
		logger.Error("failed to close message queue", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("failed to close redis", "error", err)
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Error("failed to close vector store", "error", err)
			return errors.WithMessage(err, "close vector store")
		}
	}

	return nil
}
