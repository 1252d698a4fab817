package platform

import "encoding/json"

// Dataset mirrors the platform's dataset resource.
type Dataset struct {
	ID                      string            `json:"id"`
	Name                    string            `json:"name"`
	Description             *string           `json:"description"`
	CreatedAt               string            `json:"created_at"`
	InputsSchemaDefinition  json.RawMessage   `json:"inputs_schema_definition"`
	OutputsSchemaDefinition json.RawMessage   `json:"outputs_schema_definition"`
	ExternallyManaged       *bool             `json:"externally_managed"`
	Transformations         []json.RawMessage `json:"transformations"`
	DataType                string            `json:"data_type"`
}

// DatasetCreateRequest carries the fields accepted on dataset creation.
type DatasetCreateRequest struct {
	Name                    string            `json:"name"`
	Description             *string           `json:"description"`
	CreatedAt               string            `json:"created_at"`
	InputsSchemaDefinition  json.RawMessage   `json:"inputs_schema_definition"`
	OutputsSchemaDefinition json.RawMessage   `json:"outputs_schema_definition"`
	ExternallyManaged       *bool             `json:"externally_managed"`
	Transformations         []json.RawMessage `json:"transformations"`
	DataType                string            `json:"data_type"`
}

// Example mirrors one labeled record inside a dataset.
type Example struct {
	ID        string          `json:"id"`
	Inputs    json.RawMessage `json:"inputs"`
	Outputs   json.RawMessage `json:"outputs"`
	Metadata  map[string]any  `json:"metadata"`
	CreatedAt string          `json:"created_at"`
}

// ExampleCreateRequest carries one example for bulk creation.
type ExampleCreateRequest struct {
	DatasetID string          `json:"dataset_id"`
	Inputs    json.RawMessage `json:"inputs"`
	Outputs   json.RawMessage `json:"outputs"`
	Metadata  map[string]any  `json:"metadata"`
	CreatedAt string          `json:"created_at"`
	Split     string          `json:"split"`
}

// Experiment mirrors the platform's session resource recording one
// evaluation run over a dataset snapshot.
type Experiment struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	ReferenceDatasetID string          `json:"reference_dataset_id"`
	DefaultDatasetID   *string         `json:"default_dataset_id"`
	StartTime          *string         `json:"start_time"`
	EndTime            *string         `json:"end_time"`
	Extra              json.RawMessage `json:"extra"`
	TraceTier          *string         `json:"trace_tier"`
}

// ExperimentCreateRequest carries the fields accepted on session creation.
type ExperimentCreateRequest struct {
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	ReferenceDatasetID string          `json:"reference_dataset_id"`
	DefaultDatasetID   *string         `json:"default_dataset_id"`
	StartTime          *string         `json:"start_time"`
	EndTime            *string         `json:"end_time"`
	Extra              json.RawMessage `json:"extra"`
	TraceTier          *string         `json:"trace_tier"`
}

// Run mirrors one traced execution belonging to an experiment session.
type Run struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	RunType            string            `json:"run_type"`
	StartTime          *string           `json:"start_time"`
	EndTime            *string           `json:"end_time"`
	Inputs             json.RawMessage   `json:"inputs"`
	Outputs            json.RawMessage   `json:"outputs"`
	Extra              json.RawMessage   `json:"extra"`
	Error              *string           `json:"error"`
	Serialized         json.RawMessage   `json:"serialized"`
	ParentRunID        *string           `json:"parent_run_id"`
	Events             []json.RawMessage `json:"events"`
	Tags               []string          `json:"tags"`
	TraceID            string            `json:"trace_id"`
	DottedOrder        string            `json:"dotted_order"`
	SessionID          string            `json:"session_id"`
	SessionName        *string           `json:"session_name"`
	ReferenceExampleID *string           `json:"reference_example_id"`
	InputAttachments   json.RawMessage   `json:"input_attachments"`
	OutputAttachments  json.RawMessage   `json:"output_attachments"`
}

// RunCreateRequest carries one run for batch creation. Identity fields
// (ID, TraceID, DottedOrder, ParentRunID) are preserved so the trace tree
// topology survives migration.
type RunCreateRequest struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	RunType            string            `json:"run_type"`
	StartTime          *string           `json:"start_time"`
	EndTime            *string           `json:"end_time"`
	Inputs             json.RawMessage   `json:"inputs"`
	Outputs            json.RawMessage   `json:"outputs"`
	Extra              json.RawMessage   `json:"extra"`
	Error              *string           `json:"error"`
	Serialized         json.RawMessage   `json:"serialized"`
	ParentRunID        *string           `json:"parent_run_id"`
	Events             []json.RawMessage `json:"events"`
	Tags               []string          `json:"tags"`
	TraceID            string            `json:"trace_id"`
	DottedOrder        string            `json:"dotted_order"`
	SessionID          string            `json:"session_id"`
	SessionName        *string           `json:"session_name"`
	ReferenceExampleID *string           `json:"reference_example_id"`
	InputAttachments   json.RawMessage   `json:"input_attachments"`
	OutputAttachments  json.RawMessage   `json:"output_attachments"`
}

// RunQueryRequest filters runs by session identifiers with cursor pagination.
type RunQueryRequest struct {
	SessionIDs     []string `json:"session"`
	Cursor         string   `json:"cursor,omitempty"`
	SkipPagination bool     `json:"skip_pagination"`
}

// RunQueryCursors carries the pagination state of a run query response.
type RunQueryCursors struct {
	Next *string `json:"next"`
}

// RunQueryResponse is one page of a cursor-paginated run query.
type RunQueryResponse struct {
	Runs    []Run           `json:"runs"`
	Cursors RunQueryCursors `json:"cursors"`
}

// RunBatchRequest wraps runs submitted to the batch ingestion endpoint.
type RunBatchRequest struct {
	Post []RunCreateRequest `json:"post"`
}

// AnnotationQueue mirrors the platform's human-review queue resource.
type AnnotationQueue struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         *string         `json:"description"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
	DefaultDataset      *string         `json:"default_dataset"`
	NumReviewersPerItem *int            `json:"num_reviewers_per_item"`
	EnableReservations  *bool           `json:"enable_reservations"`
	ReservationMinutes  *int            `json:"reservation_minutes"`
	RubricItems         json.RawMessage `json:"rubric_items"`
	RubricInstructions  *string         `json:"rubric_instructions"`
	SessionIDs          []string        `json:"session_ids"`
}

// AnnotationQueueCreateRequest carries the fields accepted on queue creation.
type AnnotationQueueCreateRequest struct {
	Name                string          `json:"name"`
	Description         *string         `json:"description"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
	DefaultDataset      *string         `json:"default_dataset"`
	NumReviewersPerItem *int            `json:"num_reviewers_per_item"`
	EnableReservations  *bool           `json:"enable_reservations"`
	ReservationMinutes  *int            `json:"reservation_minutes"`
	RubricItems         json.RawMessage `json:"rubric_items"`
	RubricInstructions  *string         `json:"rubric_instructions"`
	SessionIDs          []string        `json:"session_ids"`
}

// Rule mirrors an automation rule attached to a tracing project.
type Rule struct {
	ID                           string          `json:"id"`
	DisplayName                  string          `json:"display_name"`
	SessionID                    string          `json:"session_id"`
	IsEnabled                    bool            `json:"is_enabled"`
	DatasetID                    *string         `json:"dataset_id"`
	SamplingRate                 float64         `json:"sampling_rate"`
	Filter                       *string         `json:"filter"`
	TraceFilter                  *string         `json:"trace_filter"`
	TreeFilter                   *string         `json:"tree_filter"`
	AddToAnnotationQueueID       *string         `json:"add_to_annotation_queue_id"`
	AddToDatasetID               *string         `json:"add_to_dataset_id"`
	AddToDatasetPreferCorrection *bool           `json:"add_to_dataset_prefer_correction"`
	UseCorrectionsDataset        *bool           `json:"use_corrections_dataset"`
	NumFewShotExamples           *int            `json:"num_few_shot_examples"`
	ExtendOnly                   *bool           `json:"extend_only"`
	Transient                    *bool           `json:"transient"`
	BackfillFrom                 *string         `json:"backfill_from"`
	Evaluators                   json.RawMessage `json:"evaluators"`
	CodeEvaluators               json.RawMessage `json:"code_evaluators"`
	Alerts                       json.RawMessage `json:"alerts"`
	Webhooks                     json.RawMessage `json:"webhooks"`
}

// RuleCreateRequest carries the fields accepted on rule creation.
type RuleCreateRequest struct {
	DisplayName                  string          `json:"display_name"`
	SessionID                    string          `json:"session_id"`
	IsEnabled                    bool            `json:"is_enabled"`
	DatasetID                    *string         `json:"dataset_id"`
	SamplingRate                 float64         `json:"sampling_rate"`
	Filter                       *string         `json:"filter"`
	TraceFilter                  *string         `json:"trace_filter"`
	TreeFilter                   *string         `json:"tree_filter"`
	AddToAnnotationQueueID       *string         `json:"add_to_annotation_queue_id"`
	AddToDatasetID               *string         `json:"add_to_dataset_id"`
	AddToDatasetPreferCorrection *bool           `json:"add_to_dataset_prefer_correction"`
	UseCorrectionsDataset        *bool           `json:"use_corrections_dataset"`
	NumFewShotExamples           *int            `json:"num_few_shot_examples"`
	ExtendOnly                   *bool           `json:"extend_only"`
	Transient                    *bool           `json:"transient"`
	BackfillFrom                 *string         `json:"backfill_from"`
	Evaluators                   json.RawMessage `json:"evaluators"`
	CodeEvaluators               json.RawMessage `json:"code_evaluators"`
	Alerts                       json.RawMessage `json:"alerts"`
	Webhooks                     json.RawMessage `json:"webhooks"`
}

// PromptCommit is one versioned prompt manifest with its model configuration.
type PromptCommit struct {
	Owner      string          `json:"owner"`
	Repo       string          `json:"repo"`
	CommitHash string          `json:"commit_hash"`
	Manifest   json.RawMessage `json:"manifest"`
}
