package services

import (
	"fmt"
	"time"

	"github.com/robsoriano/wellness-hub-plan/models"

	"gorm.io/gorm"
)

// Domain event types published to the sink.
const (
	EventMealPlanAssigned = "meal_plan_assigned"
	EventProgressLogged   = "progress_logged"
)

type eventDeps struct {
	db   *gorm.DB
	rt   *RealtimeHub
	push *PushService
}

var _events eventDeps

// InitEventDeps wires the outbound sink once at startup. Hub and push may be
// nil; the bus degrades to persistence only.
func InitEventDeps(db *gorm.DB, rt *RealtimeHub, push *PushService) {
	_events = eventDeps{db: db, rt: rt, push: push}
}

// EmitEvent publishes a domain event: persisted notification row, websocket
// broadcast, mobile push. Safe to call from anywhere; the engine never waits
// on delivery and a sink failure never fails the mutation that emitted it.
// The row is written inline so the event is durable before the mutation
// returns; broadcast and push leave the caller's goroutine.
func EmitEvent(userID uint, typ, title, message string, relatedID uint) {
	if _events.db == nil {
		return // not initialized (tests without a sink)
	}
	n := &models.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		CreatedAt: time.Now(),
	}
	_ = _events.db.Create(n).Error

	go func() {
		if _events.rt != nil {
			_events.rt.BroadcastToUser(userID, map[string]any{
				"kind":         "notification.created",
				"notification": n,
			})
		}
		if _events.push != nil {
			_events.push.PushToUser(userID, title, message, map[string]string{
				"type":           typ,
				"notificationId": fmt.Sprintf("%d", n.ID),
			})
		}
	}()
}
