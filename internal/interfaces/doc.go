// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Storage
//
//   - storage.Adapter: Load and Save the whole collection (internal/storage/storage.go)
//   - storage.Checker: Report whether the backing store is usable, for /health
//   - storage.Unavailable: Stand-in for a database that could not be opened
//   - storage.Closer: Release open resources on shutdown
//
// ## Collection Access
//
//   - services.BookReader: Read-only access to the collection (internal/services/interfaces.go)
//   - services.BookStore: BookReader plus Add and Remove
//   - scheduler.BookSource: Snapshot source for backups (internal/scheduler/backup.go)
//
// ## Demo Mode
//
//   - demo.Adder: Target of Seed (internal/demo/books.go)
//
// # Adding a New Storage Driver
//
// To persist the collection somewhere else (e.g., Postgres):
//
//  1. Implement Adapter in internal/storage/
//
//     type Postgres struct {
//         db *gorm.DB
//     }
//
//     func (p *Postgres) Load() ([]entities.Book, error)
//     func (p *Postgres) Save(books []entities.Book) error
//
//     Load must return an empty collection and a nil error when nothing has
//     been saved yet, and wrap ErrUnreadable when stored state is broken.
//
//  2. Add the driver name to storage.New and the STORAGE_DRIVER docs
//
//  3. Add compile-time checks to checks.go
package interfaces
