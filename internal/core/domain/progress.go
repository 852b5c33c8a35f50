package domain

// ProgressStage names a checkpoint in the import pipeline.
type ProgressStage string

// Progress stages, in the order they are reported.
const (
	StageParsing  ProgressStage = "parsing"
	StageOrders   ProgressStage = "orders"
	StageItems    ProgressStage = "items"
	StageImages   ProgressStage = "images"
	StageComplete ProgressStage = "complete"
)

// ProgressEvent is a single progress notification.
// Zero-valued counters mean "not applicable to this event".
type ProgressEvent struct {
	Stage          ProgressStage `json:"stage"`
	Message        string        `json:"message"`
	OrdersFound    int           `json:"ordersFound,omitempty"`
	CurrentOrder   int           `json:"currentOrder,omitempty"`
	TotalItems     int           `json:"totalItems,omitempty"`
	ProcessedItems int           `json:"processedItems,omitempty"`
	CurrentItem    string        `json:"currentItem,omitempty"`
}

// ProgressFunc receives progress events synchronously, in order.
// It must not influence parsing; a nil ProgressFunc is valid.
type ProgressFunc func(ProgressEvent)

// Emit calls f if it is non-nil.
func (f ProgressFunc) Emit(event ProgressEvent) {
	if f != nil {
		f(event)
	}
}
