package booksvc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/bozdag05/site/model"
	openlibraryrepo "github.com/bozdag05/site/repository/openlibrary"
)

type repoMock struct {
	createFn         func(ctx context.Context, b *model.Book, genreIDs []int64) error
	updateFn         func(ctx context.Context, b *model.Book, genreIDs []int64) (bool, error)
	detailFn         func(ctx context.Context, id int64) (*model.Book, error)
	deleteFn         func(ctx context.Context, id int64) (bool, error)
	countInstancesFn func(ctx context.Context, bookID int64) (int64, error)

	deletes int
}

func (m *repoMock) Create(ctx context.Context, b *model.Book, genreIDs []int64) error {
	return m.createFn(ctx, b, genreIDs)
}
func (m *repoMock) Update(ctx context.Context, b *model.Book, genreIDs []int64) (bool, error) {
	return m.updateFn(ctx, b, genreIDs)
}
func (m *repoMock) List(ctx context.Context) ([]model.Book, error) { return nil, nil }
func (m *repoMock) ListByGenre(ctx context.Context, genreID int64) ([]model.Book, error) {
	return nil, nil
}
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Book, error) {
	if m.detailFn == nil {
		return &model.Book{ID: id}, nil
	}
	return m.detailFn(ctx, id)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) {
	m.deletes++
	return m.deleteFn(ctx, id)
}
func (m *repoMock) Count(ctx context.Context) (int64, error) { return 0, nil }
func (m *repoMock) CountInstances(ctx context.Context, bookID int64) (int64, error) {
	return m.countInstancesFn(ctx, bookID)
}

type metaMock struct {
	lookupFn func(isbn string) (*openlibraryrepo.BookMeta, error)
}

func (m *metaMock) LookupISBN(isbn string) (*openlibraryrepo.BookMeta, error) {
	return m.lookupFn(isbn)
}

func uniqueISBNErr() error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "books_isbn_key"}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book, genreIDs []int64) error {
			require.Equal(t, "9785171234567", b.ISBN)
			require.Equal(t, []int64{1, 2}, genreIDs)
			b.ID = 42
			return nil
		},
	}
	svc := New(m, nil, nil)

	b, err := svc.Create(context.Background(), model.CreateBookReq{
		Title:    "Crime and Punishment",
		ISBN:     "9785171234567",
		GenreIDs: []int64{1, 2},
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), b.ID)
}

func TestCreate_DuplicateISBNConflict(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book, genreIDs []int64) error {
			return uniqueISBNErr()
		},
	}
	svc := New(m, nil, nil)

	_, err := svc.Create(context.Background(), model.CreateBookReq{
		Title: "Duplicate",
		ISBN:  "9785171234567",
	})
	require.Error(t, err)
	require.Equal(t, ErrISBNTaken, Code(err))
}

func TestCreate_BadInput(t *testing.T) {
	svc := New(&repoMock{}, nil, nil)

	_, err := svc.Create(context.Background(), model.CreateBookReq{Title: "", ISBN: "123"})
	require.Equal(t, ErrBadInput, Code(err))

	_, err = svc.Create(context.Background(), model.CreateBookReq{Title: "T", ISBN: "97851712345678"})
	require.Equal(t, ErrBadInput, Code(err))
}

func TestCreate_PrefillsMetadata(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book, genreIDs []int64) error {
			require.Equal(t, "A novel in six parts", b.Summary)
			require.Equal(t, "https://covers.openlibrary.org/b/id/1-M.jpg", b.Photo)
			b.ID = 1
			return nil
		},
	}
	meta := &metaMock{
		lookupFn: func(isbn string) (*openlibraryrepo.BookMeta, error) {
			return &openlibraryrepo.BookMeta{
				Summary:  "A novel in six parts",
				CoverURL: "https://covers.openlibrary.org/b/id/1-M.jpg",
			}, nil
		},
	}
	svc := New(m, meta, nil)

	_, err := svc.Create(context.Background(), model.CreateBookReq{Title: "T", ISBN: "9785171234567"})
	require.NoError(t, err)
}

func TestCreate_LookupFailureIsNonFatal(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book, genreIDs []int64) error {
			b.ID = 1
			return nil
		},
	}
	meta := &metaMock{
		lookupFn: func(isbn string) (*openlibraryrepo.BookMeta, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := New(m, meta, nil)

	_, err := svc.Create(context.Background(), model.CreateBookReq{Title: "T", ISBN: "9785171234567"})
	require.NoError(t, err)
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, b *model.Book, genreIDs []int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(m, nil, nil)

	_, err := svc.Update(context.Background(), 404, model.UpdateBookReq{Title: "T", ISBN: "123"})
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdate_DuplicateISBNConflict(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, b *model.Book, genreIDs []int64) (bool, error) {
			return false, uniqueISBNErr()
		},
	}
	svc := New(m, nil, nil)

	_, err := svc.Update(context.Background(), 1, model.UpdateBookReq{Title: "T", ISBN: "123"})
	require.Equal(t, ErrISBNTaken, Code(err))
}

func TestDelete_RestrictedWithInstances(t *testing.T) {
	m := &repoMock{
		countInstancesFn: func(ctx context.Context, bookID int64) (int64, error) { return 2, nil },
	}
	svc := New(m, nil, nil)

	err := svc.Delete(context.Background(), 7)
	require.Error(t, err)
	require.Equal(t, ErrHasInstances, Code(err))
	require.Zero(t, m.deletes)
}

func TestDelete_WithoutInstances(t *testing.T) {
	m := &repoMock{
		countInstancesFn: func(ctx context.Context, bookID int64) (int64, error) { return 0, nil },
		deleteFn:         func(ctx context.Context, id int64) (bool, error) { return true, nil },
	}
	svc := New(m, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 7))
	require.Equal(t, 1, m.deletes)
}

func TestDelete_FKViolationMapsToConflict(t *testing.T) {
	// the database RESTRICT backstop, in case a copy appears between the
	// count and the delete
	m := &repoMock{
		countInstancesFn: func(ctx context.Context, bookID int64) (int64, error) { return 0, nil },
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			return false, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
		},
	}
	svc := New(m, nil, nil)

	err := svc.Delete(context.Background(), 7)
	require.Equal(t, ErrHasInstances, Code(err))
}
