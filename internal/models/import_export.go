package models

import "time"

type ImportStatus string

const (
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
)

type ImportValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

type ImportSummary struct {
	Status         ImportStatus            `json:"status"`
	TotalRows      int                     `json:"total_rows"`
	ProcessedRows  int                     `json:"processed_rows"`
	SuccessCount   int                     `json:"success_count"`
	ErrorCount     int                     `json:"error_count"`
	ImportedTasks  []string                `json:"imported_tasks"`
	ReplacedTasks  []string                `json:"replaced_tasks,omitempty"`
	Errors         []ImportValidationError `json:"errors"`
	ProcessingTime time.Duration           `json:"processing_time"`
}
