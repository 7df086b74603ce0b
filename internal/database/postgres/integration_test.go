//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

const fixtureDDL = `
CREATE SCHEMA sales;
CREATE TABLE sales.orders (
	id         integer PRIMARY KEY,
	code       varchar(16) NOT NULL,
	note       text,
	amount     numeric(12,2),
	placed_at  timestamptz(3),
	ttl        interval DAY TO SECOND(2),
	paid       boolean
);`

func TestExtractAgainstPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("shop"),
		tcpostgres.WithUsername("pgmeta"),
		tcpostgres.WithPassword("pgmeta"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, fixtureDDL)
	require.NoError(t, err)
	require.NoError(t, conn.Close(ctx))

	d := New()
	require.NoError(t, d.Connect(ctx, dsn))
	defer d.Close()

	info, err := d.ServerInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shop", info.Database)
	assert.Equal(t, "pgmeta", info.User)

	tree, err := metadata.Extract(ctx, d, metadata.Filter{Schema: "sales", Table: "orders"})
	require.NoError(t, err)
	require.Equal(t, []string{"shop"}, tree.Databases())

	orders := tree["shop"]["sales"]["orders"]
	require.Len(t, orders, 7)

	length := int64(16)
	assert.Equal(t, metadata.Column{Type: "varchar", Required: true, Attrs: metadata.CharacterAttrs{Length: &length}}, orders["code"])
	assert.Equal(t, metadata.FamilyCharacter, orders["note"].Family())
	assert.False(t, orders["note"].Required)

	amount, ok := orders["amount"].Attrs.(metadata.NumericAttrs)
	require.True(t, ok)
	assert.Equal(t, int64(12), *amount.Precision)
	assert.Equal(t, int64(2), *amount.Scale)
	assert.Equal(t, int64(10), *amount.PrecisionRadix)

	placed, ok := orders["placed_at"].Attrs.(metadata.DateTimeAttrs)
	require.True(t, ok)
	assert.Equal(t, int64(3), *placed.Precision)

	ttl, ok := orders["ttl"].Attrs.(metadata.IntervalAttrs)
	require.True(t, ok)
	assert.Equal(t, "DAY TO SECOND", *ttl.IntervalType)

	assert.True(t, orders["id"].Required)
	assert.Equal(t, metadata.FamilyNumeric, orders["id"].Family())
	assert.Equal(t, metadata.FamilyOther, orders["paid"].Family())
}
