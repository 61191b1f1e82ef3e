package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const ownerID int64 = 42

func Test_Login_Steps(t *testing.T) {
	req := require.New(t)
	store := NewStore(24 * time.Hour)
	now := time.Now().UTC()

	req.Equal(None, store.Current(ownerID))

	store.Begin(ownerID)
	req.Equal(AwaitingUsername, store.Current(ownerID))

	store.Advance(ownerID)
	req.Equal(AwaitingPassword, store.Current(ownerID))

	// Advance only moves off the username prompt
	store.Advance(ownerID)
	req.Equal(AwaitingPassword, store.Current(ownerID))

	store.Authenticate(ownerID, now)
	req.Equal(Authenticated, store.Current(ownerID))
	req.True(store.Valid(ownerID, now))

	store.Delete(ownerID)
	req.Equal(None, store.Current(ownerID))
	req.False(store.Valid(ownerID, now))
}

func Test_MidLogin_Session_Is_Not_Valid(t *testing.T) {
	req := require.New(t)
	store := NewStore(24 * time.Hour)
	now := time.Now().UTC()

	store.Begin(ownerID)
	req.False(store.Valid(ownerID, now))

	store.Advance(ownerID)
	req.False(store.Valid(ownerID, now))
}

func Test_Expiry_Deletes_Session(t *testing.T) {
	req := require.New(t)
	store := NewStore(24 * time.Hour)
	loginAt := time.Now().UTC()

	store.Authenticate(ownerID, loginAt)
	req.True(store.Valid(ownerID, loginAt.Add(23*time.Hour)))

	// Exactly at the TTL the session is already expired
	req.False(store.Valid(ownerID, loginAt.Add(24*time.Hour)))

	// The failed check removed the entry, a second check is idempotent
	req.Equal(None, store.Current(ownerID))
	req.False(store.Valid(ownerID, loginAt.Add(24*time.Hour)))
}

func Test_Begin_Resets_Authenticated_Session(t *testing.T) {
	req := require.New(t)
	store := NewStore(24 * time.Hour)
	now := time.Now().UTC()

	store.Authenticate(ownerID, now)
	store.Begin(ownerID)

	req.Equal(AwaitingUsername, store.Current(ownerID))
	req.False(store.Valid(ownerID, now))
}
