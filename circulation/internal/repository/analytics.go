package repository

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

var gq = goqu.Dialect("postgres")

func (r *repository) AggregateCountsSince(ctx context.Context, since time.Time) ([]model.ItemCount, error) {
	query, args, err := gq.From(loansTableName).
		Select(goqu.C("item_id"), goqu.COUNT(goqu.Star()).As("cnt")).
		Where(
			goqu.C("issued_at").Gte(since),
			goqu.C("status").In(string(model.LoanActive), string(model.LoanCompleted)),
		).
		GroupBy(goqu.C("item_id")).
		Order(goqu.I("cnt").Desc(), goqu.C("item_id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build aggregate")
	}
	r.log.Debug("AggregateCountsSince", zap.String("q", query), zap.Time("since", since))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ItemCount])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return counts, nil
}

func (r *repository) BorrowedAuthors(ctx context.Context, borrowerID int64) ([]string, error) {
	query, args, err := gq.From(goqu.T(loansTableName).As("l")).
		Join(goqu.T(itemsTableName).As("i"), goqu.On(goqu.I("l.item_id").Eq(goqu.I("i.id")))).
		SelectDistinct(goqu.I("i.author")).
		Where(goqu.I("l.borrower_id").Eq(borrowerID), goqu.I("i.author").Neq("")).
		Order(goqu.I("i.author").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build authors")
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *repository) BorrowedItemIDs(ctx context.Context, borrowerID int64) ([]int64, error) {
	query, args, err := gq.From(loansTableName).
		SelectDistinct(goqu.C("item_id")).
		Where(goqu.C("borrower_id").Eq(borrowerID)).
		Order(goqu.C("item_id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build item ids")
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (r *repository) CountItems(ctx context.Context) (int64, error) {
	return r.count(ctx, itemsTableName)
}

func (r *repository) CountBorrowers(ctx context.Context) (int64, error) {
	return r.count(ctx, borrowersTableName)
}

func (r *repository) count(ctx context.Context, table string) (int64, error) {
	query, args, err := gq.From(table).Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return 0, err
	}
	var n int64
	if err = r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}
	return n, nil
}
