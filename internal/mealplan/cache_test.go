package mealplan

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedRepository_FindByID(t *testing.T) {
	mockRepo := new(MockRepository)
	cached := NewCachedRepository(mockRepo, 8, time.Minute)

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).
		Return(&MealPlan{ID: id, Name: "Diet Plan", Price: decimal.NewFromInt(30000)}, nil).Once()

	first, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	second, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, cached.Len())
	mockRepo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestCachedRepository_MissNotCached(t *testing.T) {
	mockRepo := new(MockRepository)
	cached := NewCachedRepository(mockRepo, 8, time.Minute)

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, ErrNotFound).Twice()

	_, err := cached.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cached.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 0, cached.Len())
	mockRepo.AssertExpectations(t)
}

func TestCachedRepository_Expires(t *testing.T) {
	mockRepo := new(MockRepository)
	cached := NewCachedRepository(mockRepo, 8, 20*time.Millisecond)

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(&MealPlan{ID: id}, nil)

	_, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "FindByID", 2)
}

func TestCachedRepository_CallerCannotMutateCache(t *testing.T) {
	mockRepo := new(MockRepository)
	cached := NewCachedRepository(mockRepo, 8, time.Minute)

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(&MealPlan{ID: id, Name: "Diet Plan"}, nil).Once()

	plan, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	plan.Name = "changed"

	again, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Diet Plan", again.Name)
}

func TestCachedRepository_CreatePopulates(t *testing.T) {
	mockRepo := new(MockRepository)
	cached := NewCachedRepository(mockRepo, 8, time.Minute)

	id := uuid.New()
	params := CreateMealPlanParams{Name: "Royal Plan", Price: decimal.NewFromInt(60000)}
	mockRepo.On("Create", mock.Anything, params).Return(&MealPlan{ID: id, Name: "Royal Plan"}, nil)

	_, err := cached.Create(context.Background(), params)
	require.NoError(t, err)

	plan, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Royal Plan", plan.Name)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, id)
}

func TestCachedRepository_Refresh(t *testing.T) {
	mockRepo := new(MockRepository)
	cached := NewCachedRepository(mockRepo, 8, time.Minute)

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(&MealPlan{ID: id, IsActive: true}, nil).Once()
	mockRepo.On("FindByID", mock.Anything, id).Return(&MealPlan{ID: id, IsActive: false}, nil).Once()

	_, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)

	fresh, err := cached.Refresh(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, fresh.IsActive)

	again, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, again.IsActive)
	mockRepo.AssertNumberOfCalls(t, "FindByID", 2)
}

func TestCachedRepository_RefreshEvictsDeleted(t *testing.T) {
	mockRepo := new(MockRepository)
	cached := NewCachedRepository(mockRepo, 8, time.Minute)

	id := uuid.New()
	mockRepo.On("FindByID", mock.Anything, id).Return(&MealPlan{ID: id}, nil).Once()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, ErrNotFound).Once()

	_, err := cached.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 1, cached.Len())

	_, err = cached.Refresh(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, cached.Len())
}
