package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/errs"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

var _ Repository = (*repository)(nil)

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	itemsTableName        = `items`
	loansTableName        = `loans`
	reservationsTableName = `reservations`
	borrowersTableName    = `borrowers`

	loansOneActiveIdx         = `loans_one_active_idx`
	reservationsOnePendingIdx = `reservations_one_pending_idx`
)

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	itemColumns = []string{"id", "barcode", "isbn", "title", "author", "publication_year",
		"total_copies", "available_copies", "status", "created_at"}
	loanColumns        = []string{"id", "item_id", "borrower_id", "kind", "status", "issued_at", "returned_at"}
	reservationColumns = []string{"id", "item_id", "borrower_id", "status", "notified", "notified_at", "created_at"}
)

// querier is satisfied by both the pool and a pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (r *repository) InTx(ctx context.Context, fn func(tx Tx) error) (err error) {
	pgTx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = pgTx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := pgTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.log.Error("rollback", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(&pgTxStore{tx: pgTx}); err != nil {
		return err
	}
	if err = pgTx.Commit(ctx); err != nil {
		return translate(errors.Wrap(err, "commit"))
	}
	return nil
}

// translate maps driver errors onto the errs taxonomy.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrap(errs.ErrNotFound, err.Error())
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			switch pgErr.ConstraintName {
			case loansOneActiveIdx:
				return errs.ErrAlreadyIssued
			case reservationsOnePendingIdx:
				return errs.ErrDuplicateRequest
			}
		case pgerrcode.CheckViolation:
			return errors.Wrap(errs.ErrInvariant, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}

func getItem(ctx context.Context, q querier, b sq.SelectBuilder) (model.Item, error) {
	query, args, err := b.Limit(1).ToSql()
	if err != nil {
		return model.Item{}, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return model.Item{}, err
	}
	defer rows.Close()

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return model.Item{}, translate(err)
	}
	return item, nil
}

func listItems(ctx context.Context, q querier, b sq.SelectBuilder) ([]model.Item, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return items, nil
}

func listReservations(ctx context.Context, q querier, b sq.SelectBuilder) ([]model.Reservation, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Reservation])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return res, nil
}

func selectItems() sq.SelectBuilder {
	return qb.Select(itemColumns...).From(itemsTableName)
}

func (r *repository) GetItemByKey(ctx context.Context, barcode string) (model.Item, error) {
	item, err := getItem(ctx, r.db, selectItems().Where(sq.Eq{"barcode": barcode}))
	return item, errors.Wrapf(err, "item %q", barcode)
}

func (r *repository) GetItemByID(ctx context.Context, id int64) (model.Item, error) {
	item, err := getItem(ctx, r.db, selectItems().Where(sq.Eq{"id": id}))
	return item, errors.Wrapf(err, "item %d", id)
}

func (r *repository) ExistsByKey(ctx context.Context, barcode string) (bool, error) {
	var exists bool
	q := `select exists(select 1 from items where barcode = $1)`
	if err := r.db.QueryRow(ctx, q, barcode).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) ListAvailable(ctx context.Context) ([]model.Item, error) {
	return r.Search(ctx, model.ItemFilter{AvailableOnly: true})
}

func (r *repository) ListByIDs(ctx context.Context, ids []int64) ([]model.Item, error) {
	if len(ids) == 0 {
		return []model.Item{}, nil
	}
	return listItems(ctx, r.db, selectItems().Where(sq.Eq{"id": ids}).OrderBy("id"))
}

func (r *repository) ListByCreationDesc(ctx context.Context, n int) ([]model.Item, error) {
	b := selectItems().
		Where(sq.NotEq{"created_at": nil}).
		OrderBy("created_at desc", "id desc")
	if n > 0 {
		b = b.Limit(uint64(n))
	}
	return listItems(ctx, r.db, b)
}

func (r *repository) ListByIDDesc(ctx context.Context, n int) ([]model.Item, error) {
	b := selectItems().OrderBy("id desc")
	if n > 0 {
		b = b.Limit(uint64(n))
	}
	return listItems(ctx, r.db, b)
}

func (r *repository) Search(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	b := selectItems()
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		b = b.Where(sq.Or{
			sq.ILike{"title": like},
			sq.ILike{"author": like},
			sq.ILike{"isbn": like},
			sq.ILike{"barcode": like},
		})
	}
	if len(filter.Authors) > 0 {
		b = b.Where(sq.Eq{"author": filter.Authors})
	}
	if len(filter.ExcludeIDs) > 0 {
		b = b.Where(sq.NotEq{"id": filter.ExcludeIDs})
	}
	if filter.AvailableOnly {
		b = b.Where(sq.Gt{"available_copies": 0}).Where(sq.Eq{"status": model.ItemAvailable})
	}
	if filter.YearFrom > 0 {
		b = b.Where(sq.GtOrEq{"publication_year": filter.YearFrom}).Where(sq.NotEq{"publication_year": 0})
	}
	if filter.YearTo > 0 {
		b = b.Where(sq.LtOrEq{"publication_year": filter.YearTo}).Where(sq.NotEq{"publication_year": 0})
	}
	b = b.OrderBy("id")
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	r.log.Debug("Search", zap.Any("filter", filter))
	return listItems(ctx, r.db, b)
}

func (r *repository) ListPendingByBorrower(ctx context.Context, borrowerID int64) ([]model.Reservation, error) {
	return listReservations(ctx, r.db, qb.Select(reservationColumns...).
		From(reservationsTableName).
		Where(sq.Eq{"borrower_id": borrowerID, "status": model.ReservationPending}).
		OrderBy("created_at", "id"))
}

func (r *repository) ListNotified(ctx context.Context) ([]model.Reservation, error) {
	return listReservations(ctx, r.db, qb.Select(reservationColumns...).
		From(reservationsTableName).
		Where(sq.Eq{"status": model.ReservationNotified}).
		OrderBy("notified_at desc", "id"))
}

func (r *repository) GetBorrower(ctx context.Context, id int64) (model.Borrower, error) {
	query, args, err := qb.Select("id", "username", "points").
		From(borrowersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Borrower{}, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Borrower{}, err
	}
	defer rows.Close()

	b, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Borrower])
	if err != nil {
		return model.Borrower{}, errors.Wrapf(translate(err), "borrower %d", id)
	}
	return b, nil
}

type pgTxStore struct {
	tx pgx.Tx
}

func (s *pgTxStore) LockItemByKey(ctx context.Context, barcode string) (model.Item, error) {
	item, err := getItem(ctx, s.tx, selectItems().Where(sq.Eq{"barcode": barcode}).Suffix("FOR UPDATE"))
	return item, errors.Wrapf(err, "item %q", barcode)
}

func (s *pgTxStore) LockItemByID(ctx context.Context, id int64) (model.Item, error) {
	item, err := getItem(ctx, s.tx, selectItems().Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"))
	return item, errors.Wrapf(err, "item %d", id)
}

func (s *pgTxStore) UpdateItemCopies(ctx context.Context, item model.Item) error {
	query, args, err := qb.Update(itemsTableName).
		Set("available_copies", item.AvailableCopies).
		Set("status", item.Status).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := s.tx.Exec(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() != 1 {
		return errors.Wrapf(errs.ErrNotFound, "item %d", item.ID)
	}
	return nil
}

func (s *pgTxStore) FindActiveLoan(ctx context.Context, borrowerID, itemID int64) (model.Loan, error) {
	query, args, err := qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"borrower_id": borrowerID, "item_id": itemID, "status": model.LoanActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	rows, err := s.tx.Query(ctx, query, args...)
	if err != nil {
		return model.Loan{}, err
	}
	defer rows.Close()

	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return model.Loan{}, errors.Wrapf(translate(err), "active loan borrower %d item %d", borrowerID, itemID)
	}
	return loan, nil
}

func (s *pgTxStore) InsertLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Insert(loansTableName).
		Columns("item_id", "borrower_id", "kind", "status", "issued_at", "returned_at").
		Values(loan.ItemID, loan.BorrowerID, loan.Kind, loan.Status, loan.IssuedAt, loan.ReturnedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	if err = s.tx.QueryRow(ctx, query, args...).Scan(&loan.ID); err != nil {
		return model.Loan{}, translate(err)
	}
	return loan, nil
}

func (s *pgTxStore) UpdateLoan(ctx context.Context, loan model.Loan) error {
	query, args, err := qb.Update(loansTableName).
		Set("kind", loan.Kind).
		Set("status", loan.Status).
		Set("returned_at", loan.ReturnedAt).
		Where(sq.Eq{"id": loan.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := s.tx.Exec(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() != 1 {
		return errors.Wrapf(errs.ErrNotFound, "loan %d", loan.ID)
	}
	return nil
}

func (s *pgTxStore) FindPending(ctx context.Context, borrowerID, itemID int64) (model.Reservation, error) {
	res, err := listReservations(ctx, s.tx, qb.Select(reservationColumns...).
		From(reservationsTableName).
		Where(sq.Eq{"borrower_id": borrowerID, "item_id": itemID, "status": model.ReservationPending}).
		Limit(1))
	if err != nil {
		return model.Reservation{}, err
	}
	if len(res) == 0 {
		return model.Reservation{}, errors.Wrapf(errs.ErrNotFound, "pending reservation borrower %d item %d", borrowerID, itemID)
	}
	return res[0], nil
}

func (s *pgTxStore) FindPendingByItem(ctx context.Context, itemID int64) ([]model.Reservation, error) {
	return listReservations(ctx, s.tx, qb.Select(reservationColumns...).
		From(reservationsTableName).
		Where(sq.Eq{"item_id": itemID, "status": model.ReservationPending}).
		OrderBy("created_at", "id").
		Suffix("FOR UPDATE"))
}

func (s *pgTxStore) LockReservation(ctx context.Context, id int64) (model.Reservation, error) {
	res, err := listReservations(ctx, s.tx, qb.Select(reservationColumns...).
		From(reservationsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE"))
	if err != nil {
		return model.Reservation{}, err
	}
	if len(res) == 0 {
		return model.Reservation{}, errors.Wrapf(errs.ErrNotFound, "reservation %d", id)
	}
	return res[0], nil
}

func (s *pgTxStore) InsertReservation(ctx context.Context, rv model.Reservation) (model.Reservation, error) {
	query, args, err := qb.Insert(reservationsTableName).
		Columns("item_id", "borrower_id", "status", "notified", "notified_at", "created_at").
		Values(rv.ItemID, rv.BorrowerID, rv.Status, rv.Notified, rv.NotifiedAt, rv.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	if err = s.tx.QueryRow(ctx, query, args...).Scan(&rv.ID); err != nil {
		return model.Reservation{}, translate(err)
	}
	return rv, nil
}

func (s *pgTxStore) UpdateReservationStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	query, args, err := qb.Update(reservationsTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := s.tx.Exec(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() != 1 {
		return errors.Wrapf(errs.ErrNotFound, "reservation %d", id)
	}
	return nil
}

func (s *pgTxStore) MarkNotified(ctx context.Context, id int64, at time.Time) (bool, error) {
	query, args, err := qb.Update(reservationsTableName).
		Set("status", model.ReservationNotified).
		Set("notified", true).
		Set("notified_at", at).
		Where(sq.Eq{"id": id, "status": model.ReservationPending}).
		ToSql()
	if err != nil {
		return false, err
	}
	tag, err := s.tx.Exec(ctx, query, args...)
	if err != nil {
		return false, translate(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *pgTxStore) AddPoints(ctx context.Context, borrowerID int64, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, errors.Wrapf(errs.ErrInvariant, "points delta %d", delta)
	}
	q := `
update borrowers
    set points = points + @delta
where id = @borrower_id
returning points`
	args := pgx.NamedArgs{
		"borrower_id": borrowerID,
		"delta":       delta,
	}
	var total int64
	if err := s.tx.QueryRow(ctx, q, args).Scan(&total); err != nil {
		return 0, errors.Wrapf(translate(err), "borrower %d", borrowerID)
	}
	return total, nil
}
