// Package action implements the namespace operations of vecns.
//
// # Architecture
//
// Every create or delete request runs through an action chain:
//
//	NamespaceRequest
//	    │
//	    ▼
//	┌─────────────────────────────────────────────────────────┐
//	│  ValidateAction                                          │
//	│  - index / namespace name rules, no remote call          │
//	└─────────────────────────────────────────────────────────┘
//	    │
//	    ▼
//	┌─────────────────────────────────────────────────────────┐
//	│  LockAction                                              │
//	│  - vecns:lock:<index>:<namespace> (redis or no-op)       │
//	│  - wraps the rest of the chain, releases on return       │
//	└─────────────────────────────────────────────────────────┘
//	    │
//	    ▼
//	┌─────────────────────────────────────────────────────────┐
//	│  CreateAction / DeleteAction                             │
//	│  - vector.NamespaceStore (Pinecone or memory)            │
//	└─────────────────────────────────────────────────────────┘
//	    │
//	    ▼
//	┌─────────────────────────────────────────────────────────┐
//	│  NotifyAction                                            │
//	│  - NamespaceEvent -> mq (Kafka), only on state change    │
//	└─────────────────────────────────────────────────────────┘
//
// Namespaces is the entry point. Batches run through an errgroup bounded by
// the configured concurrency; the default of 1 keeps requests sequential.
//
// # Usage
//
//	ns := action.NewNamespaces(store,
//	    action.WithLocker(locker),
//	    action.WithQueue(queue, "vecns.namespace"),
//	)
//	results, err := ns.Create(ctx, domain.NamespaceRequest{
//	    Index:     "capstone-yt-semantic-search",
//	    Namespace: "capstone-yt-semantic-search-ns",
//	})
package action
