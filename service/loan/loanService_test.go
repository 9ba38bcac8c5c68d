package loansvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bozdag05/site/model"
)

type repoMock struct {
	detailFn         func(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	updateDueBackFn  func(ctx context.Context, id uuid.UUID, dueBack time.Time) (bool, error)
	listByBorrowerFn func(ctx context.Context, borrowerID int64) ([]model.BookInstance, error)
	listAllFn        func(ctx context.Context, f Filter) ([]model.BookInstance, error)

	dueBackWrites int
}

func (m *repoMock) Detail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	return m.detailFn(ctx, id)
}

func (m *repoMock) UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time) (bool, error) {
	m.dueBackWrites++
	if m.updateDueBackFn == nil {
		return true, nil
	}
	return m.updateDueBackFn(ctx, id, dueBack)
}

func (m *repoMock) ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BookInstance, error) {
	return m.listByBorrowerFn(ctx, borrowerID)
}

func (m *repoMock) ListAll(ctx context.Context, f Filter) ([]model.BookInstance, error) {
	return m.listAllFn(ctx, f)
}

func fixedNow() time.Time { return time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC) }

func librarian() Caller { return Caller{UserID: 1, Role: model.RoleLibrarian} }

func onLoanInstance(id uuid.UUID) *model.BookInstance {
	borrower := int64(5)
	due := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	return &model.BookInstance{
		ID: id, BookID: 3, Imprint: "Vintage, 2004",
		DueBack: &due, BorrowerID: &borrower, Status: model.StatusOnLoan,
	}
}

func TestRenew_Success(t *testing.T) {
	id := uuid.New()
	newDate := time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC)

	m := &repoMock{
		detailFn: func(ctx context.Context, got uuid.UUID) (*model.BookInstance, error) {
			require.Equal(t, id, got)
			return onLoanInstance(id), nil
		},
		updateDueBackFn: func(ctx context.Context, got uuid.UUID, dueBack time.Time) (bool, error) {
			require.Equal(t, id, got)
			require.Equal(t, newDate, dueBack)
			return true, nil
		},
	}
	svc := NewWithClock(m, fixedNow)

	bi, err := svc.Renew(context.Background(), librarian(), id, newDate)
	require.NoError(t, err)
	require.NotNil(t, bi.DueBack)
	require.Equal(t, newDate, *bi.DueBack)
	// only the due date moved
	require.Equal(t, model.StatusOnLoan, bi.Status)
	require.NotNil(t, bi.BorrowerID)
}

func TestRenew_ForbiddenWithoutCapability(t *testing.T) {
	id := uuid.New()
	m := &repoMock{
		detailFn: func(ctx context.Context, got uuid.UUID) (*model.BookInstance, error) {
			t.Fatal("lookup must not run for a forbidden caller")
			return nil, nil
		},
	}
	svc := NewWithClock(m, fixedNow)

	_, err := svc.Renew(context.Background(), Caller{UserID: 9, Role: model.RoleUser}, id, fixedNow())
	require.Error(t, err)
	require.Equal(t, ErrForbidden, Code(err))
	require.Zero(t, m.dueBackWrites)
}

func TestRenew_NotFoundBeforeValidation(t *testing.T) {
	m := &repoMock{
		detailFn: func(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewWithClock(m, fixedNow)

	// the candidate is invalid too, but NotFound must win
	_, err := svc.Renew(context.Background(), librarian(), uuid.New(), fixedNow().AddDate(0, 0, -5))
	require.Equal(t, ErrNotFound, Code(err))
	require.Zero(t, m.dueBackWrites)
}

func TestRenew_RejectsBadDates(t *testing.T) {
	id := uuid.New()
	m := &repoMock{
		detailFn: func(ctx context.Context, got uuid.UUID) (*model.BookInstance, error) {
			return onLoanInstance(id), nil
		},
	}
	svc := NewWithClock(m, fixedNow)

	_, err := svc.Renew(context.Background(), librarian(), id, fixedNow().AddDate(0, 0, -1))
	require.Equal(t, ErrDatePast, Code(err))

	_, err = svc.Renew(context.Background(), librarian(), id, fixedNow().AddDate(0, 0, 29))
	require.Equal(t, ErrDateTooFar, Code(err))

	require.Zero(t, m.dueBackWrites)
}

func TestMyLoans_OrderPreserved(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	borrower := int64(5)
	m := &repoMock{
		listByBorrowerFn: func(ctx context.Context, borrowerID int64) ([]model.BookInstance, error) {
			require.Equal(t, borrower, borrowerID)
			out := make([]model.BookInstance, len(dates))
			for i := range dates {
				d := dates[i]
				out[i] = model.BookInstance{ID: uuid.New(), DueBack: &d, BorrowerID: &borrower, Status: model.StatusOnLoan}
			}
			return out, nil
		},
	}
	svc := New(m)

	loans, err := svc.MyLoans(context.Background(), borrower)
	require.NoError(t, err)
	require.Len(t, loans, 3)
	for i, want := range dates {
		require.Equal(t, want, *loans[i].DueBack)
	}
}

func TestAllInstances_PassesFilter(t *testing.T) {
	status := model.StatusAvailable
	m := &repoMock{
		listAllFn: func(ctx context.Context, f Filter) ([]model.BookInstance, error) {
			require.NotNil(t, f.Status)
			require.Equal(t, status, *f.Status)
			require.Nil(t, f.BorrowerID)
			return nil, nil
		},
	}
	svc := New(m)

	_, err := svc.AllInstances(context.Background(), Filter{Status: &status})
	require.NoError(t, err)
}
