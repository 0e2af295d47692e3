package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskDesignCycleRecompute = "designs.cycle.recompute"

const TaskSplitCycleRecompute = "splits.cycle.recompute"

const TaskProductionStatusRecompute = "productions.status.recompute"

// ProductionRecomputePayload targets one production. A zero ProductionID
// asks for every production in the validator's status domain.
type ProductionRecomputePayload struct {
	ProductionID int64 `json:"productionId,omitempty"`
}

func NewDesignCycleTask() *asynq.Task {
	return asynq.NewTask(TaskDesignCycleRecompute, nil)
}

func NewSplitCycleTask() *asynq.Task {
	return asynq.NewTask(TaskSplitCycleRecompute, nil)
}

func NewProductionRecomputeTask(payload ProductionRecomputePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProductionStatusRecompute, data), nil
}

func ParseProductionRecomputePayload(task *asynq.Task) (ProductionRecomputePayload, error) {
	var payload ProductionRecomputePayload
	if len(task.Payload()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProductionRecomputePayload{}, err
	}
	return payload, nil
}
