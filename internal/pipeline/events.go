package pipeline

// Stage identifies one step of the inference pipeline.
type Stage string

const (
	StageIntake   Stage = "intake"
	StageMatching Stage = "matching"
	StagePlanning Stage = "planning"
)

// stages in execution order.
var stages = []Stage{StageIntake, StageMatching, StagePlanning}

// Status is the lifecycle state of a stage.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusAnalyzing Status = "analyzing"
	StatusComplete  Status = "complete"
	StatusFailed    Status = "failed"
)

// Event is one progressive update sent to the consumer. Every stage emits
// an analyzing event when it starts and a complete event with its payload
// when it settles; a pipeline-level fault emits a single terminal failed
// event instead.
type Event struct {
	RunID   string `json:"run_id"`
	Stage   Stage  `json:"stage"`
	Status  Status `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}
