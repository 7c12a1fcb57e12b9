package postgres_test

import (
	"context"
	"testing"
	"time"

	gorm "github.com/jinzhu/gorm"
	"github.com/ory/dockertest/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	repo "mk-orders/internal/repository"
	pg "mk-orders/internal/repository/postgres"
)

type pgEnv struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	DB       *gorm.DB
	PG       *pg.OrderPostgresRepo
	R        *repo.Repository
}

func upPostgres(t *testing.T) *pgEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_DB=orders",
		"POSTGRES_USER=app",
		"POSTGRES_PASSWORD=app",
	})
	require.NoError(t, err)

	env := &pgEnv{pool: pool, resource: resource}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	require.NoError(t, pool.Retry(func() error {
		db, err := pg.ConnectDB(pg.Config{
			Host:     "localhost",
			Port:     resource.GetPort("5432/tcp"),
			Username: "app",
			Password: "app",
			DbName:   "orders",
			SslMode:  "disable",
		})
		if err != nil {
			return err
		}
		if err := pg.Migrate(db); err != nil {
			return err
		}
		env.DB = db
		env.PG = pg.NewOrderPostgres(db)
		env.R = repo.NewRepository(db, time.Minute, 4)
		return nil
	}))
	t.Cleanup(func() {
		env.R.Close()
		_ = env.DB.Close()
	})

	return env
}

func draft(id string) models.Order {
	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	ship := created.AddDate(0, 1, 0)
	return models.Order{
		ID:     id,
		Status: models.StatusDraft,
		Meta: models.Meta{
			OrderDate:  created,
			ShipDate:   &ship,
			ShipMethod: models.ShipSea,
			Name:       "Order 2026-04-01",
		},
		Items:      models.Lines{{Key: "Jackets|Alpine|Brown|S", Qty: 2}},
		History:    models.History{},
		Timestamps: models.Timestamps{Created: models.Stamp(created)},
	}
}

func Test_Postgres_CreateUpdateGet_Positive(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	require.NoError(t, env.PG.Create(ctx, draft("o1")))

	got, err := env.PG.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, 2, got.Total)
	require.Equal(t, models.ShipSea, got.Meta.ShipMethod)
	require.NotNil(t, got.Timestamps.Created)

	accepted := models.StatusAccepted
	at := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	before, after, err := env.PG.Update(ctx, "o1", models.OrderPatch{
		Status:     &accepted,
		Timestamps: models.Timestamps{Accepted: models.Stamp(at)},
		History:    []models.HistoryEntry{{Event: models.EventAccepted, At: at}},
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusDraft, before.Status)
	require.Equal(t, models.StatusAccepted, after.Status)

	got, err = env.PG.Get(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, got.Timestamps.Created, "created stamp survives the merge")
	require.True(t, at.Equal(*got.Timestamps.Accepted))
	require.Len(t, got.History, 1)

	all, err := env.PG.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func Test_Postgres_Create_DuplicateID_Error(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	require.NoError(t, env.PG.Create(ctx, draft("dup")))
	err := env.PG.Create(ctx, draft("dup"))
	require.ErrorIs(t, err, pg.ErrDuplicate)
}

func Test_Postgres_LegacyNestedItemsAreNormalized(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	require.NoError(t, env.PG.Create(ctx, draft("legacy")))
	require.NoError(t, env.DB.Exec(
		`UPDATE orders SET items = ?, total = 0 WHERE id = ?`,
		`{"Jackets":{"Alpine":{"Brown":{"S":2,"M":"3","L":0}}}}`, "legacy",
	).Error)

	got, err := env.PG.Get(ctx, "legacy")
	require.NoError(t, err)
	require.Equal(t, 5, got.Total)
	require.Len(t, got.Items, 2)
}

func Test_Postgres_Delete(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	require.NoError(t, env.PG.Create(ctx, draft("del")))
	require.NoError(t, env.PG.Delete(ctx, "del"))

	err := env.PG.Delete(ctx, "del")
	require.Error(t, err)
	require.True(t, gorm.IsRecordNotFoundError(errors.Cause(err)))

	_, err = env.R.Get(ctx, "del")
	require.ErrorIs(t, err, lifecycle.ErrNotFound)
}

func Test_Postgres_DeleteOnlyInStatuses(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	require.NoError(t, env.PG.Create(ctx, draft("locked")))
	accepted := models.StatusAccepted
	_, _, err := env.PG.Update(ctx, "locked", models.OrderPatch{Status: &accepted})
	require.NoError(t, err)

	err = env.PG.Delete(ctx, "locked", models.DraftAndPending...)
	var se *lifecycle.StateError
	require.ErrorAs(t, err, &se)
	require.Equal(t, models.StatusAccepted, se.From)

	_, err = env.PG.Get(ctx, "locked")
	require.NoError(t, err)

	err = env.PG.Delete(ctx, "gone", models.DraftAndPending...)
	require.True(t, gorm.IsRecordNotFoundError(errors.Cause(err)))
}

func Test_Postgres_DroppedTable_IsStoreUnavailable(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	require.NoError(t, env.DB.DropTable("orders").Error)

	_, err := env.R.List(ctx, nil)
	require.ErrorIs(t, err, lifecycle.ErrStoreUnavailable)

	_, err = env.R.Update(ctx, "x", models.OrderPatch{})
	require.ErrorIs(t, err, lifecycle.ErrStoreUnavailable)
}

func Test_Repository_Postgres_Roundtrip(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	o := draft("")
	id, err := env.R.Create(ctx, o)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	n, err := env.R.Warm(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := env.R.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
}
