package observability

import (
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes loader and render events to a charmbracelet logger.
// Checkpoints are logged at debug level, failures at error level.
type LogHooks struct {
	logger *log.Logger
}

var (
	_ LoaderHooks = (*LogHooks)(nil)
	_ RenderHooks = (*LogHooks)(nil)
)

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnLoadStart(size int) {
	h.logger.Debug("load start", "bytes", size)
}

func (h *LogHooks) OnPassStart(pass string) {
	h.logger.Debug("pass start", "pass", pass)
}

func (h *LogHooks) OnPassComplete(pass string, nodes int, d time.Duration) {
	h.logger.Debug("pass complete", "pass", pass, "nodes", nodes, "elapsed", d.Round(time.Microsecond))
}

func (h *LogHooks) OnNodeAdded(pass, name, kind string) {
	h.logger.Debug("node added", "pass", pass, "name", name, "kind", kind)
}

func (h *LogHooks) OnLoadComplete(values, operations int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("load failed", "err", err, "elapsed", d.Round(time.Microsecond))
		return
	}
	h.logger.Debug("load complete", "values", values, "operations", operations, "elapsed", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderStart(format string, nodes int) {
	h.logger.Debug("render start", "format", format, "nodes", nodes)
}

func (h *LogHooks) OnRenderComplete(format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "elapsed", d.Round(time.Microsecond))
}
