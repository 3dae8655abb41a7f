package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskFollowupReminder = "followups.reminder"

const TaskOverdueSweep = "followups.sweep_overdue"

type FollowupReminderPayload struct {
	FollowupID string `json:"followupId"`
}

func NewFollowupReminderTask(payload FollowupReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFollowupReminder, data), nil
}

func ParseFollowupReminderPayload(task *asynq.Task) (FollowupReminderPayload, error) {
	var payload FollowupReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FollowupReminderPayload{}, err
	}
	return payload, nil
}

func NewOverdueSweepTask() *asynq.Task {
	return asynq.NewTask(TaskOverdueSweep, nil)
}
