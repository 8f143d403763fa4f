package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, database.InitDB())
	return database
}

func TestUpsertUser_Idempotent(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.UpsertUser(1, "alice", "Alice"))
	require.NoError(t, database.UpsertUser(1, "alice2", "Someone Else"))

	user, err := database.GetUser(1)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "Alice", user.FirstName)
}

func TestUpsertUser_KeepsBanFlag(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.UpsertUser(1, "alice", "Alice"))
	require.NoError(t, database.SetBanned(1, true))

	// A repeated upsert must not unban
	require.NoError(t, database.UpsertUser(1, "alice", "Alice"))

	banned, err := database.IsBanned(1)
	require.NoError(t, err)
	require.True(t, banned)
}

func TestIsBanned_UnknownUser(t *testing.T) {
	database := newTestDB(t)

	banned, err := database.IsBanned(999)
	require.NoError(t, err)
	require.False(t, banned)

	// The check must not create a row
	user, err := database.GetUser(999)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestSetBanned_UnknownUserIsNoop(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.SetBanned(999, true))

	user, err := database.GetUser(999)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestSetBanned_Roundtrip(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.UpsertUser(1, "alice", "Alice"))
	require.NoError(t, database.SetBanned(1, true))

	banned, err := database.IsBanned(1)
	require.NoError(t, err)
	require.True(t, banned)

	require.NoError(t, database.SetBanned(1, false))

	banned, err = database.IsBanned(1)
	require.NoError(t, err)
	require.False(t, banned)
}

func TestListUsers_StorageOrder(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.UpsertUser(10, "a", "A"))
	require.NoError(t, database.UpsertUser(20, "b", "B"))
	require.NoError(t, database.UpsertUser(30, "", ""))

	users, err := database.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, int64(10), users[0].ID)
	require.Equal(t, int64(20), users[1].ID)
	require.Equal(t, int64(30), users[2].ID)
	require.False(t, users[0].CreatedAt.IsZero())
}

func TestListUsers_OrderIgnoresCreatedAt(t *testing.T) {
	database := newTestDB(t)

	// A backdated row must not jump ahead in the listing
	_, err := database.Exec(
		`INSERT INTO users (id, username, first_name, created_at) VALUES (?, ?, ?, ?)`,
		int64(5), "late", "Late", "2030-01-01 00:00:00",
	)
	require.NoError(t, err)
	_, err = database.Exec(
		`INSERT INTO users (id, username, first_name, created_at) VALUES (?, ?, ?, ?)`,
		int64(9), "early", "Early", "2020-01-01 00:00:00",
	)
	require.NoError(t, err)

	users, err := database.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, int64(5), users[0].ID)
	require.Equal(t, int64(9), users[1].ID)
}

func TestStats(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.UpsertUser(1, "a", "A"))
	require.NoError(t, database.UpsertUser(2, "b", "B"))
	require.NoError(t, database.UpsertUser(3, "c", "C"))
	require.NoError(t, database.SetBanned(2, true))

	for i := 0; i < 5; i++ {
		require.NoError(t, database.LogRequest(1, "text", "BTC"))
	}

	stats, err := database.Stats()
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalUsers)
	require.Equal(t, 1, stats.BannedUsers)
	require.Equal(t, 5, stats.TotalRequests)
	require.Equal(t, 3, stats.JoinedToday)
}

func TestStats_Empty(t *testing.T) {
	database := newTestDB(t)

	stats, err := database.Stats()
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalUsers)
	require.Equal(t, 0, stats.BannedUsers)
	require.Equal(t, 0, stats.TotalRequests)
	require.Equal(t, 0, stats.JoinedToday)
}
