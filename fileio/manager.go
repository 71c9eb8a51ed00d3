package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/c360/geoio/entity"
	"github.com/c360/geoio/errors"
	"github.com/c360/geoio/filter"
	"github.com/c360/geoio/logging"
	"github.com/c360/geoio/metric"
)

// Manager orchestrates load and save operations: it resolves filters
// through its registry, invokes them inside a fault-isolation boundary,
// post-processes results and classifies every outcome into the closed
// error taxonomy. Managers own their session explicitly, so tests and
// concurrent pipelines can run isolated instances in parallel.
type Manager struct {
	registry *filter.Registry
	session  *filter.Session
	logger   *logging.Logger
	metrics  *metric.Metrics
}

// Option customizes a Manager.
type Option func(*Manager)

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metric.Metrics) Option {
	return func(mgr *Manager) { mgr.metrics = m }
}

// WithSession replaces the Manager's own session, letting several
// managers share one shift scope.
func WithSession(s *filter.Session) Option {
	return func(mgr *Manager) { mgr.session = s }
}

// NewManager creates a Manager around a registry. A nil logger falls back
// to local-only logging.
func NewManager(registry *filter.Registry, logger *logging.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = logging.New("fileio", "", nil, nil)
	}
	m := &Manager{
		registry: registry,
		session:  filter.NewSession(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithSession(m.session.ID().String())
	return m
}

// Registry returns the Manager's filter registry.
func (m *Manager) Registry() *filter.Registry { return m.registry }

// Session returns the Manager's current session.
func (m *Manager) Session() *filter.Session { return m.session }

// ResetSession rewinds the session counter: the next load becomes a
// session start again. Shift slots in any live LoadParameters are the
// caller's to clear.
func (m *Manager) ResetSession() { m.session.Reset() }

// LoadWithFilter loads path through an explicitly resolved filter.
//
// The filter call runs inside a containment boundary: a panicking filter
// is converted to a console-error classification, its partial content is
// discarded and the panic text is logged, so a single malformed file can
// never take the host process down.
//
// An empty result is normalized: the container is dropped and nil is
// returned even when the classification reports success, so callers have
// a single check for "nothing came back".
func (m *Manager) LoadWithFilter(path string, params *filter.LoadParameters, flt filter.Filter) (*entity.Container, error) {
	if flt == nil {
		m.logger.Error("[Load] internal error (invalid input filter)")
		return nil, errors.New(errors.CodeConsoleError, "invalid input filter")
	}
	if params == nil {
		params = &filter.LoadParameters{}
	}

	if _, err := os.Stat(path); err != nil {
		m.logger.Error(fmt.Sprintf("[Load] file '%s' doesn't exist", path))
		return nil, errors.WrapCoded(errors.CodeConsoleError, err, "Manager", "LoadWithFilter", "check file existence")
	}

	// A new action starts inside the current session.
	params.SessionStart = m.session.Next() == 1
	if params.Session == nil {
		params.Session = m.session
	}

	container := entity.NewContainer("")
	start := time.Now()
	err := m.invokeLoad(flt, path, container, params)
	code := errors.CodeOf(err)
	m.metrics.ObserveLoad(code.String(), time.Since(start))

	base := baseName(path)
	if code == errors.CodeNoError {
		m.logger.Info(fmt.Sprintf("[I/O] file '%s' loaded successfully", path))
	} else {
		m.displayError(code, "loading", base)
	}

	if container.ChildrenNumber() == 0 {
		// Empty-but-successful loads collapse to nil as well.
		return nil, err
	}

	// The root container carries the full filename plus its directory;
	// "unnamed" placeholders in children take the extension-less base name.
	dir := path
	if abs, absErr := filepath.Abs(filepath.Dir(path)); absErr == nil {
		dir = abs
	}
	container.SetName(fmt.Sprintf("%s (%s)", filepath.Base(path), dir))
	for _, child := range container.Children() {
		if name := child.Name(); strings.HasPrefix(name, "unnamed") {
			child.SetName(strings.ReplaceAll(name, "unnamed", base))
		}
	}

	return container, err
}

// LoadFromPath loads path, resolving the filter from the explicit format
// identifier when one is given, or from the file extension otherwise.
func (m *Manager) LoadFromPath(path string, params *filter.LoadParameters, fileFilter string) (*entity.Container, error) {
	var flt filter.Filter

	if fileFilter != "" {
		flt = m.registry.ByFileFilter(fileFilter, true)
		if flt == nil {
			m.logger.Error(fmt.Sprintf("[Load] internal error: no I/O filter corresponds to identifier '%s'", fileFilter))
			return nil, errors.Newf(errors.CodeConsoleError, "no I/O filter corresponds to identifier '%s'", fileFilter)
		}
	} else {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if ext == "" {
			m.logger.Error("[Load] can't guess file format: no file extension")
			return nil, errors.New(errors.CodeConsoleError, "can't guess file format: no file extension")
		}

		flt = m.registry.ForExtension(ext)
		if flt == nil {
			m.logger.Error(fmt.Sprintf("[Load] can't guess file format: unhandled file extension '%s'", ext))
			return nil, errors.Newf(errors.CodeConsoleError, "unhandled file extension '%s'", ext)
		}
	}

	return m.LoadWithFilter(path, params, flt)
}

// LoadAll loads several files concurrently into one session. Results keep
// the order of paths; failed loads leave a nil slot. The session lock
// inside shift negotiation guarantees all datasets agree on one shift.
//
// Each worker runs on a shallow copy of params: SessionStart is
// per-invocation state, while the shift slots and the session stay shared
// so the one-shift-per-session invariant holds across workers.
func (m *Manager) LoadAll(paths []string, params *filter.LoadParameters) ([]*entity.Container, error) {
	results := make([]*entity.Container, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			var p *filter.LoadParameters
			if params != nil {
				clone := *params
				p = &clone
			}
			results[i], errs[i] = m.LoadFromPath(path, p, "")
			return nil
		})
	}
	// Worker errors are collected per slot; Wait never sees one.
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// SaveWithFilter saves entities to path through an explicitly resolved
// filter. A path without extension receives the filter's default one. The
// filter call runs inside the same containment boundary as loading.
func (m *Manager) SaveWithFilter(entities entity.Entity, path string, params *filter.SaveParameters, flt filter.Filter) error {
	if entities == nil || path == "" || flt == nil {
		return errors.New(errors.CodeBadArgument, "nil entities, empty path or nil filter")
	}
	if params == nil {
		params = &filter.SaveParameters{}
	}

	if filepath.Ext(path) == "" {
		path += "." + flt.DefaultExtension()
	}
	if filter.CheckSpecialChars(filepath.Base(path)) {
		m.logger.Warn(fmt.Sprintf("[I/O] output filename '%s' contains special characters; some tools may not reopen it", filepath.Base(path)))
	}

	start := time.Now()
	err := m.invokeSave(flt, entities, path, params)
	code := errors.CodeOf(err)
	m.metrics.ObserveSave(code.String(), time.Since(start))

	if code == errors.CodeNoError {
		m.logger.Info(fmt.Sprintf("[I/O] file '%s' saved successfully", path))
	} else {
		m.displayError(code, "saving", path)
	}

	return err
}

// SaveToPath saves entities, resolving the filter from the export side of
// the format identifier. An empty identifier never resolves, so it reports
// an unknown file like any other unresolved identifier.
func (m *Manager) SaveToPath(entities entity.Entity, path string, params *filter.SaveParameters, fileFilter string) error {
	flt := m.registry.ByFileFilter(fileFilter, false)
	if flt == nil {
		m.logger.Error(fmt.Sprintf("[Save] internal error: no I/O filter corresponds to identifier '%s'", fileFilter))
		return errors.Newf(errors.CodeUnknownFile, "no I/O filter corresponds to identifier '%s'", fileFilter)
	}

	return m.SaveWithFilter(entities, path, params, flt)
}

// invokeLoad runs the filter's load operation, converting any panic into
// a console-error classification. Partially populated content is
// discarded on panic: filters are not trusted to never fail halfway.
func (m *Manager) invokeLoad(flt filter.Filter, path string, container *entity.Container, params *filter.LoadParameters) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.metrics.ObservePanic()
			m.logger.Warn(fmt.Sprintf("[I/O] caught a panic while loading file '%s'", path))
			m.logger.Warn(fmt.Sprintf("[I/O] panic: %v", r))
			container.RemoveAllChildren()
			err = errors.Newf(errors.CodeConsoleError, "panic while loading '%s': %v", path, r)
		}
	}()
	return flt.Load(path, container, params)
}

// invokeSave runs the filter's save operation under the same containment
// boundary as invokeLoad.
func (m *Manager) invokeSave(flt filter.Filter, entities entity.Entity, path string, params *filter.SaveParameters) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.metrics.ObservePanic()
			m.logger.Warn(fmt.Sprintf("[I/O] caught a panic while saving file '%s'", path))
			m.logger.Warn(fmt.Sprintf("[I/O] panic: %v", r))
			err = errors.Newf(errors.CodeConsoleError, "panic while saving '%s': %v", path, r)
		}
	}()
	return flt.Save(entities, path, params)
}

// displayError maps a non-success classification to its fixed diagnostic
// phrase and emits it. User cancellations are expected behavior and go
// out at warning severity; success never produces a message.
func (m *Manager) displayError(code errors.Code, action, filename string) {
	msg := code.Message()
	if code == errors.CodeNoError || msg == "" {
		return
	}

	out := fmt.Sprintf("An error occurred while %s '%s': %s", action, filename, msg)
	if code.Warning() {
		m.logger.Warn(out)
	} else {
		m.logger.Error(out)
	}
}

// baseName returns the file name without directory or extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
