package postgres

import (
	"context"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
)

var ErrDuplicate = errors.New("duplicate order id")

type OrderPostgresRepo struct {
	db *gorm.DB
}

func NewOrderPostgres(db *gorm.DB) *OrderPostgresRepo {
	return &OrderPostgresRepo{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *OrderPostgresRepo) Create(ctx context.Context, o models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row, err := toRow(o)
	if err != nil {
		return err
	}
	if err := r.db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(ErrDuplicate, "order %s", o.ID)
		}
		return errors.Wrap(err, "postgres create order")
	}
	return nil
}

func (r *OrderPostgresRepo) Get(ctx context.Context, id string) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	var row orderRow
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return models.Order{}, errors.Wrapf(err, "postgres get order %s", id)
	}
	return fromRow(row)
}

func (r *OrderPostgresRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []orderRow
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "postgres list orders")
	}
	out := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		o, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Update locks the row, merges patch into the stored document and writes it
// back in one transaction.
func (r *OrderPostgresRepo) Update(ctx context.Context, id string, patch models.OrderPatch) (models.Order, models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, models.Order{}, err
	}
	var before, after models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var row orderRow
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", id).
			First(&row).Error; err != nil {
			return err
		}

		cur, err := fromRow(row)
		if err != nil {
			return err
		}
		before = cur
		after = cur.Apply(patch)

		next, err := toRow(after)
		if err != nil {
			return err
		}
		return tx.Save(&next).Error
	})
	if err != nil {
		return models.Order{}, models.Order{}, errors.Wrapf(err, "postgres update order %s", id)
	}
	return before, after, nil
}

// Delete removes the order. When statuses are given the row is only removed
// while its status is one of them.
func (r *OrderPostgresRepo) Delete(ctx context.Context, id string, statuses ...models.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q := r.db.Where("id = ?", id)
	if len(statuses) > 0 {
		q = q.Where("status IN (?)", statusStrings(statuses))
	}
	res := q.Delete(&orderRow{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "postgres delete order %s", id)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var row orderRow
	if err := r.db.Select("id, status").Where("id = ?", id).First(&row).Error; err != nil {
		return errors.Wrapf(err, "postgres delete order %s", id)
	}
	return &lifecycle.StateError{From: models.Status(row.Status), Trigger: lifecycle.TriggerDelete}
}

func statusStrings(statuses []models.Status) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}
