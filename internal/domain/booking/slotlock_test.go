package booking

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
	"github.com/venuebook/venuebook-api/internal/pkg/slotlock"
)

func anyArgs(expected, actual []interface{}) error { return nil }

func TestCreateRejectsWhileSlotLocked(t *testing.T) {
	env := setupService()
	v := env.catalog.add("Hall", 100, 100)

	db, mock := redismock.NewClientMock()
	env.svc.SetLocker(slotlock.New(db, 10*time.Second))

	key := slotlock.Key(v.ID, caldate.MustParse("2025-07-01"))
	mock.CustomMatch(anyArgs).ExpectSetNX(key, "", 10*time.Second).SetVal(false)

	_, err := env.svc.Create(context.Background(), validInput(v.ID, "2025-07-01"))
	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.Zero(t, env.repo.creates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHoldsAndReleasesSlotLock(t *testing.T) {
	env := setupService()
	v := env.catalog.add("Hall", 100, 100)

	db, mock := redismock.NewClientMock()
	env.svc.SetLocker(slotlock.New(db, 10*time.Second))

	key := slotlock.Key(v.ID, caldate.MustParse("2025-07-01"))
	mock.CustomMatch(anyArgs).ExpectSetNX(key, "", 10*time.Second).SetVal(true)
	mock.CustomMatch(anyArgs).ExpectEval("", []string{key}, "").SetVal(int64(1))

	_, err := env.svc.Create(context.Background(), validInput(v.ID, "2025-07-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, env.repo.creates)
	assert.NoError(t, mock.ExpectationsWereMet())
}
