package models

// Per-item outcomes of a batch create.
const (
	BatchStatusSuccess   = "success"
	BatchStatusDuplicate = "duplicate"
	BatchStatusError     = "error"
)

// BatchItemResult is the outcome for one input row
type BatchItemResult struct {
	Index   int    `json:"index"`
	English string `json:"english"`
	Status  string `json:"status"`
	ID      int64  `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResult accumulates per-item outcomes of a batch create
type BatchResult struct {
	Items     []BatchItemResult `json:"results"`
	Success   int               `json:"success"`
	Duplicate int               `json:"duplicate"`
	Failed    int               `json:"error"`
}

func (r *BatchResult) AddSuccess(index int, english string, id int64) {
	r.Items = append(r.Items, BatchItemResult{Index: index, English: english, Status: BatchStatusSuccess, ID: id})
	r.Success++
}

func (r *BatchResult) AddDuplicate(index int, english string) {
	r.Items = append(r.Items, BatchItemResult{Index: index, English: english, Status: BatchStatusDuplicate})
	r.Duplicate++
}

func (r *BatchResult) AddError(index int, english string, err error) {
	r.Items = append(r.Items, BatchItemResult{Index: index, English: english, Status: BatchStatusError, Error: err.Error()})
	r.Failed++
}
