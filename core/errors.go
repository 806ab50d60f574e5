package core

import "errors"

var (
	// ErrInvalidInput marks facade arguments rejected before any
	// network interaction.
	ErrInvalidInput = errors.New("invalid rpc input")

	// ErrDigestMismatch aborts a deployment whose linked bytecode
	// hashes differently on the node than locally.
	ErrDigestMismatch = errors.New("bytecode digest mismatch")

	// ErrDeploymentReverted marks a creation transaction that was
	// mined without leaving a contract behind.
	ErrDeploymentReverted = errors.New("deployment transaction reverted")

	// ErrUnregisteredName is returned when the registry holds no
	// address under the requested name.
	ErrUnregisteredName = errors.New("name not found in registry")
)
