package otp

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/fixitworks/fixit/internal/user/domain"
	"github.com/fixitworks/fixit/internal/user/repository"
	"github.com/fixitworks/fixit/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserStoreFixture(t *testing.T) (*UserStore, userdomain.Repository) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&userdomain.User{}))
	users := repository.New(conn)
	return NewUserStore(users), users
}

func TestUserStoreRoundTrip(t *testing.T) {
	store, users := newUserStoreFixture(t)
	ctx := context.Background()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &userdomain.User{
		ID:    node.Generate(),
		Name:  "A",
		Email: "a@example.com",
	}))

	expires := time.Now().UTC().Add(10 * time.Minute).Truncate(time.Second)
	require.NoError(t, store.Save(ctx, "a@example.com", Record{Code: "123456", ExpiresAt: expires}))

	rec, err := store.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", rec.Code)

	require.NoError(t, store.Delete(ctx, "a@example.com"))

	_, err = store.Get(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// Delete also cleared the row columns.
	user, err := users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, user.ResetCode)
	assert.Nil(t, user.ResetCodeExpiresAt)
}

func TestUserStoreUnknownEmail(t *testing.T) {
	store, _ := newUserStoreFixture(t)
	_, err := store.Get(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}
