package interfaces

import (
	"time"

	"telehealth_flow/internal/domain/entities"
)

type IFlowMetrics interface {
	ObserveOperation(op string, elapsed time.Duration, errorKind string)
	TransitionRecorded(from, to entities.FlowStatus)
}
