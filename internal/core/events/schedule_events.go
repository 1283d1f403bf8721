package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeShiftAssigned     = "shift.assigned"
	EventTypeTimeOffApproved   = "timeoff.approved"
	EventTypeTimeOffRejected   = "timeoff.rejected"
	EventTypeShiftSwapApproved = "shiftswap.approved"
)

type ShiftAssignedEvent struct {
	BaseEvent
	ShiftID   int64     `json:"shift_id"`
	UserID    int64     `json:"user_id"`
	ManagerID int64     `json:"manager_id"`
	StartTime time.Time `json:"start_time"`
}

func NewShiftAssignedEvent(shiftID, userID, managerID int64, startTime time.Time) *ShiftAssignedEvent {
	return &ShiftAssignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeShiftAssigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"shift_id":   shiftID,
				"user_id":    userID,
				"manager_id": managerID,
				"start_time": startTime,
			},
		},
		ShiftID:   shiftID,
		UserID:    userID,
		ManagerID: managerID,
		StartTime: startTime,
	}
}

type TimeOffReviewedEvent struct {
	BaseEvent
	RequestID  int64     `json:"request_id"`
	UserID     int64     `json:"user_id"`
	ReviewerID int64     `json:"reviewer_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

func NewTimeOffReviewedEvent(eventType string, requestID, userID, reviewerID int64, startDate, endDate time.Time) *TimeOffReviewedEvent {
	return &TimeOffReviewedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":  requestID,
				"user_id":     userID,
				"reviewer_id": reviewerID,
				"start_date":  startDate,
				"end_date":    endDate,
			},
		},
		RequestID:  requestID,
		UserID:     userID,
		ReviewerID: reviewerID,
		StartDate:  startDate,
		EndDate:    endDate,
	}
}

type ShiftSwapApprovedEvent struct {
	BaseEvent
	RequestID        int64 `json:"request_id"`
	RequesterID      int64 `json:"requester_id"`
	TargetUserID     int64 `json:"target_user_id"`
	RequesterShiftID int64 `json:"requester_shift_id"`
	TargetShiftID    int64 `json:"target_shift_id"`
}

func NewShiftSwapApprovedEvent(requestID, requesterID, targetUserID, requesterShiftID, targetShiftID int64) *ShiftSwapApprovedEvent {
	return &ShiftSwapApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeShiftSwapApproved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":         requestID,
				"requester_id":       requesterID,
				"target_user_id":     targetUserID,
				"requester_shift_id": requesterShiftID,
				"target_shift_id":    targetShiftID,
			},
		},
		RequestID:        requestID,
		RequesterID:      requesterID,
		TargetUserID:     targetUserID,
		RequesterShiftID: requesterShiftID,
		TargetShiftID:    targetShiftID,
	}
}
