package openlibraryrepo

// BookMeta is the subset of Open Library metadata the catalog can prefill.
type BookMeta struct {
	Title    string
	Summary  string
	CoverURL string
}

type Repo interface {
	LookupISBN(isbn string) (*BookMeta, error)
}
