package model

import (
	"context"
	"time"

	"feedbackdash/pkg/log"
)

// Activity is one dispatched dashboard action.
type Activity struct {
	Id          int       `json:"id" gorm:"primaryKey"`
	Action      string    `json:"action" gorm:"size:64;index;NOT NULL"`
	Outcome     string    `json:"outcome" gorm:"size:16;NOT NULL"`
	Detail      string    `json:"detail" gorm:"type:text"`
	RequestId   string    `json:"request_id" gorm:"size:64"`
	CreatedTime time.Time `json:"created_time" gorm:"datetime;autoCreateTime;index"`
}

func AddActivity(ctx context.Context, a *Activity) error {
	return DB.WithContext(ctx).Create(a).Error
}

// ListActivities returns activities newest first.
func ListActivities(start, limit int) ([]Activity, int64, error) {
	var items []Activity
	var total int64
	if err := DB.Model(&Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := DB.Model(&Activity{}).Order("id desc").Offset(start).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func DeleteActivitiesBefore(t time.Time) (int64, error) {
	res := DB.Where("created_time < ?", t).Delete(&Activity{})
	return res.RowsAffected, res.Error
}

// ActivityLog records dashboard actions into the activity table.
type ActivityLog struct{}

func (ActivityLog) RecordActivity(ctx context.Context, action, outcome, detail string) error {
	a := &Activity{
		Action:  action,
		Outcome: outcome,
		Detail:  detail,
	}
	if v, ok := ctx.Value(log.CtxRequestId).(string); ok {
		a.RequestId = v
	}
	return AddActivity(ctx, a)
}
