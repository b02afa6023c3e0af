package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/demo"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/storage"
)

// =============================================================================
// Storage
// =============================================================================

// Adapter implementations
var _ storage.Adapter = (*storage.JSONFile)(nil)
var _ storage.Adapter = (*storage.SQLite)(nil)
var _ storage.Adapter = (*storage.Unavailable)(nil)

// Checker implementations
var _ storage.Checker = (*storage.JSONFile)(nil)
var _ storage.Checker = (*storage.SQLite)(nil)
var _ storage.Checker = (*storage.Unavailable)(nil)

// Closer implementations
var _ storage.Closer = (*storage.SQLite)(nil)

// =============================================================================
// Collection Access
// =============================================================================

var _ services.BookStore = (*library.Store)(nil)
var _ services.BookReader = (*services.LibraryService)(nil)
var _ scheduler.BookSource = (*library.Store)(nil)
var _ scheduler.BookSource = (*services.LibraryService)(nil)

// =============================================================================
// Demo Mode
// =============================================================================

var _ demo.Adder = demo.AdderFunc(nil)
