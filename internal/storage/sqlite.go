package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

// bookRow is the table layout of the SQLite adapter. Position keeps the
// collection order since rows are rewritten on every save.
type bookRow struct {
	ID              uint   `gorm:"primaryKey"`
	Position        int    `gorm:"index"`
	Title           string `gorm:"size:512"`
	Author          string `gorm:"size:256"`
	PublicationYear int
	Genre           string `gorm:"size:100"`
	ReadStatus      bool
	AddedDate       string `gorm:"size:19"`
}

func (bookRow) TableName() string {
	return "books"
}

func rowFromBook(position int, b entities.Book) bookRow {
	return bookRow{
		Position:        position,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Genre:           b.Genre,
		ReadStatus:      b.ReadStatus,
		AddedDate:       b.AddedDate,
	}
}

func (r bookRow) book() entities.Book {
	return entities.Book{
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		Genre:           r.Genre,
		ReadStatus:      r.ReadStatus,
		AddedDate:       r.AddedDate,
	}
}

// SQLite stores the collection in a SQLite database through GORM.
type SQLite struct {
	path string
	db   *gorm.DB
}

// NewSQLite opens (creating if needed) the database at path and migrates
// the books table. Errors wrap ErrUnreadable.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %v", ErrUnreadable, err)
	}

	if err := db.AutoMigrate(&bookRow{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("%w: failed to migrate database: %v", ErrUnreadable, err)
	}

	return &SQLite{path: path, db: db}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// Load returns every row ordered by position.
func (s *SQLite) Load() ([]entities.Book, error) {
	var rows []bookRow
	if err := s.db.Order("position ASC, id ASC").Find(&rows).Error; err != nil {
		return []entities.Book{}, fmt.Errorf("%w: query books: %v", ErrUnreadable, err)
	}

	books := make([]entities.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.book())
	}
	return books, nil
}

// Save replaces all rows with the given collection in a single transaction.
func (s *SQLite) Save(books []entities.Book) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&bookRow{}).Error; err != nil {
			return fmt.Errorf("clear books: %w", err)
		}
		if len(books) == 0 {
			return nil
		}

		rows := make([]bookRow, 0, len(books))
		for i, b := range books {
			rows = append(rows, rowFromBook(i, b))
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("insert books: %w", err)
		}
		return nil
	})
}

// Check pings the underlying connection.
func (s *SQLite) Check() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Unavailable stands in for a backing store that could not be opened.
// Load reports the open error and Save always fails, so the store starts
// empty and nothing overwrites the broken file.
type Unavailable struct {
	path string
	err  error
}

// Path returns the path of the store that failed to open.
func (u *Unavailable) Path() string {
	return u.path
}

// Load returns an empty collection and the open error.
func (u *Unavailable) Load() ([]entities.Book, error) {
	return []entities.Book{}, u.err
}

// Save refuses to write.
func (u *Unavailable) Save([]entities.Book) error {
	return fmt.Errorf("storage unavailable: %w", u.err)
}

// Check reports the open error.
func (u *Unavailable) Check() error {
	return u.err
}

var (
	_ Adapter = (*Unavailable)(nil)
	_ Checker = (*Unavailable)(nil)

	_ Adapter = (*SQLite)(nil)
	_ Checker = (*SQLite)(nil)
	_ Closer  = (*SQLite)(nil)
)
