package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeVisit(t *testing.T, f *fixture, queue *QueueService, serviceID uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	item, err := queue.Enqueue(ctx, f.businessID, f.car.ID, []uuid.UUID{serviceID}, &f.staff.ID)
	require.NoError(t, err)
	_, err = queue.Start(ctx, f.businessID, item.ID)
	require.NoError(t, err)
	_, err = queue.Complete(ctx, f.businessID, item.ID)
	require.NoError(t, err)
	return item.ID
}

func ratingPtr(r int) *int { return &r }

func TestRatingAveragesOverRatedEntriesOnly(t *testing.T) {
	f := newFixture(t)
	queue, history := f.newEngine(t)
	ctx := context.Background()

	completeVisit(t, f, queue, f.serviceA.ID)
	completeVisit(t, f, queue, f.serviceB.ID)

	entries, err := history.ForBusiness(ctx, f.businessID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Only one of the two completions is rated; the unrated one must not
	// drag the average down.
	_, err = history.Annotate(ctx, f.businessID, entries[0].ID, "", ratingPtr(5))
	require.NoError(t, err)

	staff := f.readStaff(t)
	require.Len(t, staff, 1)
	assert.Equal(t, 2, staff[0].Performance.ServicesCompleted)
	assert.Equal(t, 5.0, staff[0].Performance.AverageRating)

	_, err = history.Annotate(ctx, f.businessID, entries[1].ID, "", ratingPtr(3))
	require.NoError(t, err)

	staff = f.readStaff(t)
	assert.Equal(t, 4.0, staff[0].Performance.AverageRating)
}

func TestReplacingRatingDoesNotDoubleCount(t *testing.T) {
	f := newFixture(t)
	queue, history := f.newEngine(t)
	ctx := context.Background()

	completeVisit(t, f, queue, f.serviceA.ID)
	entries, err := history.ForBusiness(ctx, f.businessID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = history.Annotate(ctx, f.businessID, entries[0].ID, "", ratingPtr(5))
	require.NoError(t, err)
	_, err = history.Annotate(ctx, f.businessID, entries[0].ID, "", ratingPtr(3))
	require.NoError(t, err)

	staff := f.readStaff(t)
	require.Len(t, staff, 1)
	assert.Equal(t, 3.0, staff[0].Performance.AverageRating)
}

func TestAnnotateNotesOnlyLeavesRatingUntouched(t *testing.T) {
	f := newFixture(t)
	queue, history := f.newEngine(t)
	ctx := context.Background()

	completeVisit(t, f, queue, f.serviceA.ID)
	entries, err := history.ForBusiness(ctx, f.businessID)
	require.NoError(t, err)

	_, err = history.Annotate(ctx, f.businessID, entries[0].ID, "", ratingPtr(4))
	require.NoError(t, err)

	updated, err := history.Annotate(ctx, f.businessID, entries[0].ID, "owner asked for wax next time", nil)
	require.NoError(t, err)
	assert.Equal(t, "owner asked for wax next time", updated.Notes)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)

	staff := f.readStaff(t)
	assert.Equal(t, 4.0, staff[0].Performance.AverageRating)
}
