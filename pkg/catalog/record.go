package catalog

// ID identifies a Record. IDs are unique across the catalog and immutable
// for the life of the record.
type ID int64

// Record is one catalog item.
type Record struct {
	ID            ID     `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ArtistDisplay string `json:"artist_display"`
	Inscriptions  string `json:"inscriptions"`

	// Date bounds are null upstream for undated items.
	DateStart *int `json:"date_start"`
	DateEnd   *int `json:"date_end"`
}

// RecordFields lists the upstream attribute names backing Record, in the
// order they are requested.
var RecordFields = []string{
	"id",
	"title",
	"place_of_origin",
	"artist_display",
	"inscriptions",
	"date_start",
	"date_end",
}
