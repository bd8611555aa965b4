package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskProcessActiveCampaigns = "campaigns.process_active"

const TaskProcessCampaign = "campaigns.process"

const TaskResetQuotas = "senders.reset_quotas"

type ProcessCampaignPayload struct {
	CampaignID string `json:"campaignId"`
}

func NewProcessActiveCampaignsTask() *asynq.Task {
	return asynq.NewTask(TaskProcessActiveCampaigns, nil)
}

func NewResetQuotasTask() *asynq.Task {
	return asynq.NewTask(TaskResetQuotas, nil)
}

func NewProcessCampaignTask(payload ProcessCampaignPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProcessCampaign, data), nil
}

func ParseProcessCampaignPayload(task *asynq.Task) (ProcessCampaignPayload, error) {
	var payload ProcessCampaignPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProcessCampaignPayload{}, err
	}
	return payload, nil
}
