package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mlapinski/openmemo/internal/db"
	"github.com/mlapinski/openmemo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepoTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func newTestCard(id string) *domain.Card {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Card{
		ID:        id,
		Question:  "What is the capital of France?",
		Answer:    "Paris",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLiteCardRepo_CreateAndGet(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	repo := NewSQLiteCardRepo(sqlDB)
	ctx := context.Background()

	card := newTestCard("card-1")
	card.Resources = []domain.Resource{
		{ID: "res-1", CardID: "card-1", Filename: "paris.png", MimeType: "image/png", Data: []byte{1, 2, 3}},
	}
	require.NoError(t, repo.Create(ctx, card))

	got, err := repo.GetByID(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, card.Question, got.Question)
	assert.Equal(t, card.Answer, got.Answer)
	require.Len(t, got.Resources, 1)
	assert.Equal(t, "paris.png", got.Resources[0].Filename)
}

func TestSQLiteCardRepo_GetByID_NotFound(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	repo := NewSQLiteCardRepo(sqlDB)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteCardRepo_List(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	repo := NewSQLiteCardRepo(sqlDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestCard("card-1")))
	require.NoError(t, repo.Create(ctx, newTestCard("card-2")))

	cards, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestSQLiteCardRepo_Update(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	repo := NewSQLiteCardRepo(sqlDB)
	ctx := context.Background()

	card := newTestCard("card-1")
	require.NoError(t, repo.Create(ctx, card))

	card.Answer = "Paris, France"
	require.NoError(t, repo.Update(ctx, card))

	got, err := repo.GetByID(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris, France", got.Answer)
}

func TestSQLiteCardRepo_Update_NotFound(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	repo := NewSQLiteCardRepo(sqlDB)

	err := repo.Update(context.Background(), newTestCard("missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteCardRepo_Delete(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	repo := NewSQLiteCardRepo(sqlDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestCard("card-1")))
	require.NoError(t, repo.Delete(ctx, "card-1"))

	_, err := repo.GetByID(ctx, "card-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteLUStateRepo_CreateAndGet(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	cardRepo := NewSQLiteCardRepo(sqlDB)
	luRepo := NewSQLiteLUStateRepo(sqlDB)
	ctx := context.Background()

	require.NoError(t, cardRepo.Create(ctx, newTestCard("card-1")))

	lu := &domain.LUState{
		Grade: domain.GradeNotRecognized, NumReviews: 1, AvgGrade: 2.5,
		Priority: domain.PriorityMid, Difficulty: 0.0, Status: domain.StatusMemorized,
	}
	require.NoError(t, luRepo.Create(ctx, "card-1", lu))

	got, err := luRepo.GetByCardID(ctx, "card-1")
	require.NoError(t, err)
	assert.Equal(t, "card-1", got.OpaqueRef)
	assert.Equal(t, domain.StatusMemorized, got.Status)
	assert.Nil(t, got.LastReview)
	assert.Nil(t, got.NextReview)
}

func TestSQLiteLUStateRepo_Update_RoundTripsTimestamps(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	cardRepo := NewSQLiteCardRepo(sqlDB)
	luRepo := NewSQLiteLUStateRepo(sqlDB)
	ctx := context.Background()

	require.NoError(t, cardRepo.Create(ctx, newTestCard("card-1")))
	lu := &domain.LUState{
		Grade: domain.GradeNotRecognized, NumReviews: 1, AvgGrade: 2.5,
		Priority: domain.PriorityMid, Difficulty: 0.0, Status: domain.StatusMemorized,
	}
	require.NoError(t, luRepo.Create(ctx, "card-1", lu))

	last := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	next := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	lu.LastReview = &last
	lu.NextReview = &next
	lu.Status = domain.StatusFinalDrill
	require.NoError(t, luRepo.Update(ctx, "card-1", lu))

	got, err := luRepo.GetByCardID(ctx, "card-1")
	require.NoError(t, err)
	require.NotNil(t, got.LastReview)
	require.NotNil(t, got.NextReview)
	assert.True(t, got.LastReview.Equal(last))
	assert.True(t, got.NextReview.Equal(next))
	assert.Equal(t, domain.StatusFinalDrill, got.Status)
}

func TestSQLiteLUStateRepo_ListDue(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	cardRepo := NewSQLiteCardRepo(sqlDB)
	luRepo := NewSQLiteLUStateRepo(sqlDB)
	ctx := context.Background()

	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 5)

	require.NoError(t, cardRepo.Create(ctx, newTestCard("due")))
	require.NoError(t, luRepo.Create(ctx, "due", &domain.LUState{
		NumReviews: 1, AvgGrade: 2.5, Priority: domain.PriorityMid,
		Status: domain.StatusMemorized, NextReview: &past,
	}))

	require.NoError(t, cardRepo.Create(ctx, newTestCard("not-due")))
	require.NoError(t, luRepo.Create(ctx, "not-due", &domain.LUState{
		NumReviews: 1, AvgGrade: 2.5, Priority: domain.PriorityMid,
		Status: domain.StatusMemorized, NextReview: &future,
	}))

	require.NoError(t, cardRepo.Create(ctx, newTestCard("drill")))
	require.NoError(t, luRepo.Create(ctx, "drill", &domain.LUState{
		NumReviews: 1, AvgGrade: 2.5, Priority: domain.PriorityMid,
		Status: domain.StatusFinalDrill,
	}))

	due, err := luRepo.ListDue(ctx, now)
	require.NoError(t, err)

	var refs []string
	for _, lu := range due {
		refs = append(refs, lu.OpaqueRef.(string))
	}
	assert.ElementsMatch(t, []string{"due", "drill"}, refs)
}

func TestSQLiteLUStateRepo_Delete_NotFound(t *testing.T) {
	sqlDB := openRepoTestDB(t)
	luRepo := NewSQLiteLUStateRepo(sqlDB)

	err := luRepo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
