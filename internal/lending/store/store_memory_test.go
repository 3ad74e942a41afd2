package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraria/internal/lending/models"
	id "libraria/pkg/domain"
	"libraria/pkg/platform/sentinel"
)

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	log := New()
	at := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	first, err := log.Append(ctx, 1, 10, models.TypeBorrow, models.StatusActive, at)
	require.NoError(t, err)
	second, err := log.Append(ctx, 2, 10, models.TypeReturn, models.StatusCompleted, at.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, id.TransactionID(1), first.ID)
	assert.Equal(t, id.TransactionID(2), second.ID)
	assert.Equal(t, 2, log.Count(ctx))
}

func TestAppendRejectsZeroTimestamp(t *testing.T) {
	log := New()
	_, err := log.Append(context.Background(), 1, 1, models.TypeBorrow, models.StatusActive, time.Time{})
	require.ErrorIs(t, err, sentinel.ErrInvalidState)
	assert.Zero(t, log.Count(context.Background()))
}

func TestListsAreSnapshots(t *testing.T) {
	ctx := context.Background()
	log := New()
	now := time.Now()
	for _, m := range []id.MemberID{1, 2, 1} {
		_, err := log.Append(ctx, m, 5, models.TypeBorrow, models.StatusActive, now)
		require.NoError(t, err)
	}

	all := log.List(ctx)
	require.Len(t, all, 3)
	all[0].Status = models.StatusCompleted
	assert.Equal(t, models.StatusActive, log.List(ctx)[0].Status)

	mine := log.ListByMember(ctx, 1)
	require.Len(t, mine, 2)
	assert.Equal(t, id.TransactionID(1), mine[0].ID)
	assert.Equal(t, id.TransactionID(3), mine[1].ID)

	assert.Empty(t, log.ListByMember(ctx, 9))
	assert.NotNil(t, log.ListByMember(ctx, 9))
}
