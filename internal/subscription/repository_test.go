package subscription

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var subColumns = []string{
	"id", "user_id", "plan_id", "meal_types", "delivery_days", "allergies", "phone_number",
	"total_price", "status", "start_date", "end_date", "pause_start_date", "pause_end_date",
	"version", "created_at", "updated_at",
}

func setupSubscriptionMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func subRow(rows *sqlmock.Rows, id, user, plan uuid.UUID, status Status, version int) *sqlmock.Rows {
	start := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id.String(), user.String(), plan.String(), "{Breakfast,Dinner}", "{Monday,Thursday}", nil, "081234567890",
		"516000.00", string(status), start, start.AddDate(0, 1, 0), nil, nil,
		version, start, start,
	)
}

var subWithPlanColumns = append(append([]string{}, subColumns...), "plan_name")

func subWithPlanRow(rows *sqlmock.Rows, id, user, plan uuid.UUID, status Status, version int, planName string) *sqlmock.Rows {
	start := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id.String(), user.String(), plan.String(), "{Breakfast,Dinner}", "{Monday,Thursday}", nil, "081234567890",
		"516000.00", string(status), start, start.AddDate(0, 1, 0), nil, nil,
		version, start, start, planName,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	id, user, plan := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	sub := &Subscription{
		ID:           id,
		UserID:       user,
		PlanID:       plan,
		MealTypes:    pq.StringArray{"Breakfast", "Dinner"},
		DeliveryDays: pq.StringArray{"Monday", "Thursday"},
		PhoneNumber:  "081234567890",
		TotalPrice:   decimal.NewFromInt(516000),
		Status:       StatusActive,
		StartDate:    start,
		EndDate:      start.AddDate(0, 1, 0),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subscriptions")).
		WithArgs(id, user, plan, sub.MealTypes, sub.DeliveryDays, nil, "081234567890",
			sub.TotalPrice, StatusActive, start, start.AddDate(0, 1, 0)).
		WillReturnRows(subRow(sqlmock.NewRows(subColumns), id, user, plan, StatusActive, 1))

	created, err := repo.Create(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, []string{"Breakfast", "Dinner"}, []string(created.MealTypes))
	assert.True(t, created.TotalPrice.Equal(decimal.NewFromInt(516000)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	id, user, plan := uuid.New(), uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("JOIN meal_plans mp ON mp.id = s.plan_id WHERE s.id = $1")).
		WithArgs(id).
		WillReturnRows(subWithPlanRow(sqlmock.NewRows(subWithPlanColumns), id, user, plan, StatusPaused, 2, "Protein Plan"))

	sub, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Protein Plan", sub.PlanName)
	assert.Equal(t, user, sub.UserID)
	assert.Equal(t, StatusPaused, sub.Status)
	assert.Nil(t, sub.Allergies)
	assert.Nil(t, sub.PauseStartDate)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(subWithPlanColumns))

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListByUserAndStatus(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	user, plan := uuid.New(), uuid.New()
	cols := append(append([]string{}, subColumns...), "plan_name")
	start := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cols).AddRow(
		uuid.NewString(), user.String(), plan.String(), "{Lunch}", "{Friday}", "shellfish", "081234567890",
		"129000.00", "active", start, start.AddDate(0, 1, 0), nil, nil, 1, start, start, "Diet Plan",
	)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.user_id = $1 AND s.status = $2 ORDER BY s.created_at DESC")).
		WithArgs(user, StatusActive).
		WillReturnRows(rows)

	items, err := repo.ListByUserAndStatus(context.Background(), user, StatusActive)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Diet Plan", items[0].PlanName)
	require.NotNil(t, items[0].Allergies)
	assert.Equal(t, "shellfish", *items[0].Allergies)
}

func TestRepository_ListAll_Filters(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	cols := append(append([]string{}, subColumns...), "plan_name")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM subscriptions s WHERE 1=1 AND s.status = $1 AND s.created_at >= $2 AND s.created_at < $3")).
		WithArgs(StatusActive, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs(StatusActive, from, to, 2, 0).
		WillReturnRows(sqlmock.NewRows(cols))

	items, total, err := repo.ListAll(context.Background(), Filter{Status: StatusActive, From: &from, To: &to, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAll_NoFilters(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM subscriptions s WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(20, 40).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, subColumns...), "plan_name")))

	_, _, err := repo.ListAll(context.Background(), Filter{Limit: 20, Offset: 40})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateState(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	id, user, plan := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE subscriptions SET status = $3")).
		WithArgs(id, 1, StatusPaused, start, end).
		WillReturnRows(subRow(sqlmock.NewRows(subColumns), id, user, plan, StatusPaused, 2))

	sub, err := repo.UpdateState(context.Background(), id, 1, StateChange{Status: StatusPaused, PauseStartDate: &start, PauseEndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateState_VersionConflict(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND version = $2")).
		WithArgs(id, 4, StatusCancelled, nil, nil).
		WillReturnRows(sqlmock.NewRows(subColumns))

	_, err := repo.UpdateState(context.Background(), id, 4, StateChange{Status: StatusCancelled})
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestRepository_ListPausedDue(t *testing.T) {
	repo, mock, close := setupSubscriptionMock(t)
	defer close()

	day := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.status = 'paused' AND s.pause_end_date <= $1")).
		WithArgs(day).
		WillReturnRows(subWithPlanRow(sqlmock.NewRows(subWithPlanColumns), uuid.New(), uuid.New(), uuid.New(), StatusPaused, 2, "Diet Plan"))

	items, err := repo.ListPausedDue(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Diet Plan", items[0].PlanName)
}
