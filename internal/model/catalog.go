package model

type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort string `json:"sort"`
}

type Series struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort string `json:"sort"`
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Language struct {
	ID       int    `json:"id"`
	LangCode string `json:"lang_code"`
}

// Initial is one row of an alphabetical (or per-year) jump index:
// the first letter of a sort key, or a publication year, with the number of
// rows sharing it.
type Initial struct {
	Initial string `json:"initial"`
	Count   int    `json:"count"`
}

// CustomColumn is one user-defined metadata field declared in the Calibre
// custom_columns table. Datatype drives which physical tables hold the values.
type CustomColumn struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Name       string `json:"name"`
	Datatype   string `json:"datatype"`
	IsMulti    bool   `json:"is_multiple"`
	Normalized bool   `json:"normalized"`
}

// CustomColumnValue is the folded display value of one custom column for one
// book. Multi-valued columns are joined with ", " into a single string.
type CustomColumnValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Note is one entry of the optional Calibre notes database.
type Note struct {
	Item    int    `json:"item"`
	ColName string `json:"colname"`
	Doc     string `json:"doc"`
}
