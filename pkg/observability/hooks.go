// Package observability provides hooks for tracing graph loading and
// rendering.
//
// The core packages never log. Instead the loader and renderers accept hook
// implementations and call them at defined checkpoints. Hooks are injected
// per call rather than registered globally, so there is no process-wide
// state and concurrent loads cannot interfere.
//
// # Architecture
//
//   - Hook interfaces for each event category ([LoaderHooks], [RenderHooks])
//   - No-op default implementations
//   - A charmbracelet/log backed implementation ([NewLogHooks]) for the CLI
//
// # Usage
//
//	hooks := observability.NewLogHooks(logger)
//	g, err := loader.Load(data, loader.WithHooks(hooks))
package observability

import (
	"time"
)

// Loader pass names passed to LoaderHooks.
const (
	PassPreRegister  = "pre-register"
	PassInitializers = "initializers"
	PassGraphIO      = "graph-io"
	PassOperations   = "operations"
)

// =============================================================================
// Loader Hooks
// =============================================================================

// LoaderHooks receives events from graph construction.
type LoaderHooks interface {
	// OnLoadStart is called once before decoding, with the model size in bytes
	// (0 when loading an already decoded model).
	OnLoadStart(size int)

	// Pass events. nodes counts the records the pass handled.
	OnPassStart(pass string)
	OnPassComplete(pass string, nodes int, duration time.Duration)

	// OnNodeAdded is called for every node created. kind is "value" or the
	// operator kind.
	OnNodeAdded(pass, name, kind string)

	// OnLoadComplete is called once, with the final counts on success.
	OnLoadComplete(values, operations int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from renderers.
type RenderHooks interface {
	OnRenderStart(format string, nodes int)
	OnRenderComplete(format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLoaderHooks is a no-op implementation of LoaderHooks.
type NoopLoaderHooks struct{}

func (NoopLoaderHooks) OnLoadStart(int)                               {}
func (NoopLoaderHooks) OnPassStart(string)                            {}
func (NoopLoaderHooks) OnPassComplete(string, int, time.Duration)     {}
func (NoopLoaderHooks) OnNodeAdded(string, string, string)            {}
func (NoopLoaderHooks) OnLoadComplete(int, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(string, int)                          {}
func (NoopRenderHooks) OnRenderComplete(string, int, time.Duration, error) {}
