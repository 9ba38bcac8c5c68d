package instancerepo

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bozdag05/site/model"
)

// Filter narrows the administrative listing. Nil fields are ignored.
type Filter struct {
	Status     *model.LoanStatus
	BorrowerID *int64
}

type Repo interface {
	Create(ctx context.Context, bi *model.BookInstance) error
	Detail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error)
	Update(ctx context.Context, bi *model.BookInstance) (bool, error)

	// UpdateDueBack writes the renewal date and nothing else.
	UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time) (bool, error)

	// ListByBorrower is the patron view: on-loan copies, most urgent first.
	ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BookInstance, error)

	// ListAll is the staff view over every copy, optionally filtered.
	ListAll(ctx context.Context, f Filter) ([]model.BookInstance, error)

	Counts(ctx context.Context) (total, available int64, err error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const instanceCols = "id, book_id, imprint, due_back, borrower_id, status"

func (r *repo) Create(ctx context.Context, bi *model.BookInstance) error {
	const q = `
		INSERT INTO book_instances (id, book_id, imprint, due_back, borrower_id, status)
		VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.db.ExecContext(ctx, q, bi.ID, bi.BookID, bi.Imprint, bi.DueBack, bi.BorrowerID, bi.Status)
	return err
}

func (r *repo) Detail(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	const q = `
		SELECT id, book_id, imprint, due_back, borrower_id, status
		FROM book_instances
		WHERE id = $1`
	var bi model.BookInstance
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&bi.ID, &bi.BookID, &bi.Imprint, &bi.DueBack, &bi.BorrowerID, &bi.Status,
	)
	if err != nil {
		return nil, err
	}
	return &bi, nil
}

func (r *repo) Update(ctx context.Context, bi *model.BookInstance) (bool, error) {
	const q = `
		UPDATE book_instances
		SET imprint = $2, due_back = $3, borrower_id = $4, status = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, bi.ID, bi.Imprint, bi.DueBack, bi.BorrowerID, bi.Status)
	if err != nil {
		return false, errors.Wrap(err, "update instance")
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) UpdateDueBack(ctx context.Context, id uuid.UUID, dueBack time.Time) (bool, error) {
	const q = `
		UPDATE book_instances
		SET due_back = $2
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, dueBack)
	if err != nil {
		return false, errors.Wrap(err, "update due_back")
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ListByBorrower(ctx context.Context, borrowerID int64) ([]model.BookInstance, error) {
	const q = `
		SELECT id, book_id, imprint, due_back, borrower_id, status
		FROM book_instances
		WHERE borrower_id = $1 AND status = 'on_loan'
		ORDER BY due_back ASC`
	rows, err := r.db.QueryContext(ctx, q, borrowerID)
	if err != nil {
		return nil, errors.Wrap(err, "list by borrower")
	}
	return scanInstances(rows)
}

func (r *repo) ListAll(ctx context.Context, f Filter) ([]model.BookInstance, error) {
	b := psql.Select(instanceCols).
		From("book_instances").
		OrderBy("due_back ASC NULLS LAST", "id")
	if f.Status != nil {
		b = b.Where(sq.Eq{"status": *f.Status})
	}
	if f.BorrowerID != nil {
		b = b.Where(sq.Eq{"borrower_id": *f.BorrowerID})
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build instance query")
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list instances")
	}
	return scanInstances(rows)
}

func (r *repo) Counts(ctx context.Context) (total, available int64, err error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'available')
		FROM book_instances`
	if err := r.db.QueryRowContext(ctx, q).Scan(&total, &available); err != nil {
		return 0, 0, errors.Wrap(err, "instance counts")
	}
	return total, available, nil
}

func scanInstances(rows *sql.Rows) ([]model.BookInstance, error) {
	defer rows.Close()
	var out []model.BookInstance
	for rows.Next() {
		var bi model.BookInstance
		if err := rows.Scan(&bi.ID, &bi.BookID, &bi.Imprint, &bi.DueBack, &bi.BorrowerID, &bi.Status); err != nil {
			return nil, errors.Wrap(err, "scan instance")
		}
		out = append(out, bi)
	}
	return out, rows.Err()
}
