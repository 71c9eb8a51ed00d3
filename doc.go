// Package geoio provides a file format abstraction and dispatch layer for
// 3D spatial data.
//
// # Architecture
//
// geoio separates format knowledge from orchestration:
//
//	┌─────────────────────────────────────┐
//	│        fileio.Manager               │  Load/save orchestration,
//	│  (dispatch, containment, logging)   │  error classification
//	└─────────────────────────────────────┘
//	           ↓ resolves through
//	┌─────────────────────────────────────┐
//	│       filter.Registry               │  Ordered filter registry,
//	│  (identifier and extension lookup)  │  plugin surface
//	└─────────────────────────────────────┘
//	           ↓ dispatches to
//	┌─────────────────────────────────────┐
//	│        format filters               │  native JSON, ASCII text,
//	│   (filters/native, ascii, gpkg)     │  SQLite point tables
//	└─────────────────────────────────────┘
//
// Filters produce and consume entity trees (entity.Container,
// entity.PointCloud). Source files carry full double-precision
// coordinates; runtime storage is single precision. The filter package's
// global shift negotiation bridges that gap, keeping large geo-referenced
// coordinates precise by translating them near the origin at load time and
// restoring them on save.
//
// Every failure carries a code from the errors package; fileio.Manager
// converts filter panics into coded errors instead of crashing the host.
//
// # Quick Start
//
//	reg := filter.NewRegistry(slog.Default())
//	filters.RegisterDefaults(reg, nil)
//	defer reg.UnregisterAll()
//
//	manager := fileio.NewManager(reg, logging.New("io", "", nil, slog.Default()))
//	container, err := manager.LoadFromPath("scan.asc", params, "")
package geoio
