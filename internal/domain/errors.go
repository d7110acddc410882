package domain

import "github.com/pkg/errors"

var (
	ErrInvalidName       = errors.New("invalid name")
	ErrNamespaceExists   = errors.New("namespace already exists")
	ErrNamespaceNotFound = errors.New("namespace not found")
	ErrIndexNotReady     = errors.New("index not ready")
	ErrLocked            = errors.New("namespace is locked by another run")
)
