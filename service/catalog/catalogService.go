package catalogsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bozdag05/site/model"
	authorrepo "github.com/bozdag05/site/repository/author"
	bookrepo "github.com/bozdag05/site/repository/book"
	genrerepo "github.com/bozdag05/site/repository/genre"
	instancerepo "github.com/bozdag05/site/repository/instance"
)

type ErrCode string

const ErrNotFound ErrCode = "NOT_FOUND"

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func wrap(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Summary backs the landing page: record counts for each entity.
type Summary struct {
	NumBooks              int64 `json:"num_books"`
	NumInstances          int64 `json:"num_instances"`
	NumInstancesAvailable int64 `json:"num_instances_available"`
	NumAuthors            int64 `json:"num_authors"`
}

// BookListing pairs the full book list with the genre facets.
type BookListing struct {
	Books  []model.Book  `json:"books"`
	Genres []model.Genre `json:"genres"`
}

// GenreListing is the by-genre view: matching books, the resolved genre,
// and the full genre list for navigation.
type GenreListing struct {
	Books  []model.Book  `json:"books"`
	Genre  model.Genre   `json:"genre"`
	Genres []model.Genre `json:"genres"`
}

// BookDetail pairs one book with the full genre list for cross-linking.
type BookDetail struct {
	Book   model.Book    `json:"book"`
	Genres []model.Genre `json:"genres"`
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	ListBooks(ctx context.Context) (*BookListing, error)
	ListByGenre(ctx context.Context, genreID int64) (*GenreListing, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	AuthorDetail(ctx context.Context, id int64) (*model.Author, error)
	BookDetail(ctx context.Context, id int64) (*BookDetail, error)
}

type service struct {
	br bookrepo.Repo
	gr genrerepo.Repo
	ar authorrepo.Repo
	ir instancerepo.Repo
}

func New(br bookrepo.Repo, gr genrerepo.Repo, ar authorrepo.Repo, ir instancerepo.Repo) Service {
	return &service{br: br, gr: gr, ar: ar, ir: ir}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	numBooks, err := s.br.Count(ctx)
	if err != nil {
		return nil, err
	}
	numAuthors, err := s.ar.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, available, err := s.ir.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		NumBooks:              numBooks,
		NumInstances:          total,
		NumInstancesAvailable: available,
		NumAuthors:            numAuthors,
	}, nil
}

func (s *service) ListBooks(ctx context.Context) (*BookListing, error) {
	books, err := s.br.List(ctx)
	if err != nil {
		return nil, err
	}
	genres, err := s.gr.List(ctx)
	if err != nil {
		return nil, err
	}
	return &BookListing{Books: books, Genres: genres}, nil
}

func (s *service) ListByGenre(ctx context.Context, genreID int64) (*GenreListing, error) {
	genre, err := s.gr.Detail(ctx, genreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrap(ErrNotFound, "genre not found")
		}
		return nil, err
	}
	books, err := s.br.ListByGenre(ctx, genreID)
	if err != nil {
		return nil, err
	}
	genres, err := s.gr.List(ctx)
	if err != nil {
		return nil, err
	}
	return &GenreListing{Books: books, Genre: *genre, Genres: genres}, nil
}

func (s *service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.ar.List(ctx)
}

func (s *service) AuthorDetail(ctx context.Context, id int64) (*model.Author, error) {
	a, err := s.ar.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrap(ErrNotFound, "author not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *service) BookDetail(ctx context.Context, id int64) (*BookDetail, error) {
	b, err := s.br.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wrap(ErrNotFound, "book not found")
		}
		return nil, err
	}
	genres, err := s.gr.List(ctx)
	if err != nil {
		return nil, err
	}
	return &BookDetail{Book: *b, Genres: genres}, nil
}
