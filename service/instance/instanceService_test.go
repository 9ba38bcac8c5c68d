package instancesvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/bozdag05/site/model"
	instancerepo "github.com/bozdag05/site/repository/instance"
)

type repoMock struct {
	createFn func(ctx context.Context, bi *model.BookInstance) error
	detailFn func(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	updateFn func(ctx context.Context, bi *model.BookInstance) (bool, error)

	updates int
}

func (m *repoMock) Create(ctx context.Context, bi *model.BookInstance) error {
	return m.createFn(ctx, bi)
}
func (m *repoMock) Detail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	return m.detailFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, bi *model.BookInstance) (bool, error) {
	m.updates++
	return m.updateFn(ctx, bi)
}
func (m *repoMock) UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time) (bool, error) {
	return true, nil
}
func (m *repoMock) ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BookInstance, error) {
	return nil, nil
}
func (m *repoMock) ListAll(ctx context.Context, f instancerepo.Filter) ([]model.BookInstance, error) {
	return nil, nil
}
func (m *repoMock) Counts(ctx context.Context) (int64, int64, error) { return 0, 0, nil }

func TestCreate_DefaultsToMaintenance(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, bi *model.BookInstance) error {
			require.Equal(t, model.StatusMaintenance, bi.Status)
			require.NotEqual(t, uuid.Nil, bi.ID)
			require.Nil(t, bi.BorrowerID)
			require.Nil(t, bi.DueBack)
			return nil
		},
	}
	svc := New(m)

	bi, err := svc.Create(context.Background(), model.CreateInstanceReq{BookID: 3, Imprint: "Penguin Classics, 2003"})
	require.NoError(t, err)
	require.Equal(t, int64(3), bi.BookID)
}

func TestCreate_RandomIDs(t *testing.T) {
	seen := map[uuid.UUID]bool{}
	m := &repoMock{
		createFn: func(ctx context.Context, bi *model.BookInstance) error {
			require.False(t, seen[bi.ID])
			seen[bi.ID] = true
			return nil
		},
	}
	svc := New(m)
	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), model.CreateInstanceReq{BookID: 1, Imprint: "x"})
		require.NoError(t, err)
	}
}

func TestCreate_UnknownBook(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, bi *model.BookInstance) error {
			return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
		},
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), model.CreateInstanceReq{BookID: 404, Imprint: "x"})
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdate_EnforcesLoanStateCoupling(t *testing.T) {
	id := uuid.New()
	borrower := int64(5)
	m := &repoMock{
		detailFn: func(ctx context.Context, got uuid.UUID) (*model.BookInstance, error) {
			return &model.BookInstance{ID: id, BookID: 1, Status: model.StatusAvailable}, nil
		},
		updateFn: func(ctx context.Context, bi *model.BookInstance) (bool, error) { return true, nil },
	}
	svc := New(m)

	// borrower without on_loan
	_, err := svc.Update(context.Background(), id, model.UpdateInstanceReq{
		Imprint: "x", Status: model.StatusAvailable, BorrowerID: &borrower,
	})
	require.Equal(t, ErrLoanState, Code(err))

	// on_loan without borrower
	_, err = svc.Update(context.Background(), id, model.UpdateInstanceReq{
		Imprint: "x", Status: model.StatusOnLoan,
	})
	require.Equal(t, ErrLoanState, Code(err))

	require.Zero(t, m.updates)

	// a proper checkout passes
	due := time.Now().AddDate(0, 0, 21)
	bi, err := svc.Update(context.Background(), id, model.UpdateInstanceReq{
		Imprint: "x", Status: model.StatusOnLoan, BorrowerID: &borrower, DueBack: &due,
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusOnLoan, bi.Status)
	require.Equal(t, int64(1), bi.BookID)
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m)

	_, err := svc.Update(context.Background(), uuid.New(), model.UpdateInstanceReq{
		Imprint: "x", Status: model.StatusAvailable,
	})
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	svc := New(&repoMock{})
	_, err := svc.Update(context.Background(), uuid.New(), model.UpdateInstanceReq{
		Imprint: "x", Status: "lost",
	})
	require.Equal(t, ErrBadInput, Code(err))
}
