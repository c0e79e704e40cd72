package go4c

import "github.com/pkg/errors"

// Errors
var (
	ErrBadPalette     = errors.New("bad palette size")
	ErrBadColor       = errors.New("color outside of palette")
	ErrSelfLoop       = errors.New("edge connects a vertex to itself")
	ErrUnknownVtx     = errors.New("edge or seed references an unknown vertex")
	ErrBadGraphExpr   = errors.New("bad graph expression")
	ErrNilGraph       = errors.New("nil graph")
	ErrLayerNotFound  = errors.New("layer not found")
	ErrBadLayer       = errors.New("bad layer")
	ErrCatalogClosed  = errors.New("catalog is closed")
	ErrCatalogVersion = errors.New("catalog version is incompatible")
	ErrReadOnly       = errors.New("catalog is in read-only mode")
	ErrBadCatalogOpts = errors.New("bad catalog param")
)
