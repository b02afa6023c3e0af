package entities

import "time"

// AddedDateLayout is the layout of Book.AddedDate ("YYYY-MM-DD HH:MM:SS").
const AddedDateLayout = "2006-01-02 15:04:05"

// MinPublicationYear is the lowest year accepted by the add forms.
const MinPublicationYear = 1000

// Suggested genres offered by the add form. Free text is accepted as well.
const (
	GenreFiction    = "Fiction"
	GenreNonFiction = "Non-Fiction"
	GenreSciFi      = "Sci-Fi"
	GenreMystery    = "Mystery"
	GenreRomance    = "Romance"
	GenreOther      = "Other"
)

// Genres lists the suggested genres in display order.
var Genres = []string{
	GenreFiction,
	GenreNonFiction,
	GenreSciFi,
	GenreMystery,
	GenreRomance,
	GenreOther,
}

// Book is a single entry of the collection. The JSON keys are the on-disk
// format of library.json and must not change.
type Book struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
	Genre           string `json:"genre"`
	ReadStatus      bool   `json:"read_status"`
	AddedDate       string `json:"added_date"`
}

// AddedAt parses AddedDate in the local time zone.
// Returns the zero time if the stored value is malformed.
func (b Book) AddedAt() time.Time {
	t, err := time.ParseInLocation(AddedDateLayout, b.AddedDate, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Decade returns the publication year floored to a multiple of ten.
func (b Book) Decade() int {
	d := b.PublicationYear / 10
	if b.PublicationYear%10 != 0 && b.PublicationYear < 0 {
		d--
	}
	return d * 10
}

// BookInput carries the user-supplied fields of a new record. Tags drive both
// gin form/JSON binding and validation.
type BookInput struct {
	Title           string `json:"title" form:"title" validate:"required,max=300"`
	Author          string `json:"author" form:"author" validate:"required,max=200"`
	PublicationYear int    `json:"publication_year" form:"publication_year" validate:"gte=1000,notfuture"`
	Genre           string `json:"genre" form:"genre" validate:"required,max=100"`
	ReadStatus      bool   `json:"read_status" form:"read_status"`
}
