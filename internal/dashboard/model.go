package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

type Metrics struct {
	NewSubscriptions         int64           `db:"new_subscriptions" json:"new_subscriptions"`
	MRR                      decimal.Decimal `db:"mrr" json:"mrr" swaggertype:"string" example:"774000.00"`
	Reactivations            int64           `db:"reactivations" json:"reactivations"`
	TotalActiveSubscriptions int64           `db:"total_active_subscriptions" json:"total_active_subscriptions"`
}

// Window bounds the new subscription count. Nil bounds are open; To is exclusive.
type Window struct {
	From *time.Time
	To   *time.Time
}

type Query struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}
