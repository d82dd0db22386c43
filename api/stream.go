package api

import "time"

// MsgType is a message type for streaming run progress
type MsgType string

const (
	StartRunMsg  MsgType = "run_start"
	FinishJobMsg MsgType = "job_finish"
	FinishRunMsg MsgType = "run_finish"
)

// Size limits for program input and output embedded in messages
const (
	MaxDataHeight = 40
	MaxDataWidth  = 80
)

// Header is the common header for all streaming messages
type Header struct {
	RunUuid string  `json:"run_uuid"`
	MsgType MsgType `json:"msg_type"`
}

// StartRun message sent before the first job is dispatched
type StartRun struct {
	Header
	Mode        string `json:"mode"`
	JobCount    int    `json:"job_count"`
	Workers     int    `json:"workers"`
	StartedTime string `json:"started_time"`
}

// FinishJob message sent for every classified job
type FinishJob struct {
	Header
	JobId    int     `json:"job_id"`
	Verdict  string  `json:"verdict"`
	Passed   bool    `json:"passed"`
	Message  *string `json:"message"`
	Input    string  `json:"input"`
	Expected string  `json:"expected"`
	Actual   string  `json:"actual"`
}

// FinishRun message sent once all dispatched jobs reported
type FinishRun struct {
	Header
	Passed          int    `json:"passed"`
	Failed          int    `json:"failed"`
	ReferenceErrors int    `json:"reference_errors"`
	NotExecuted     int    `json:"not_executed"`
	FinishedTime    string `json:"finished_time"`
}

func NewHeader(runUuid string, msgType MsgType) Header {
	return Header{
		RunUuid: runUuid,
		MsgType: msgType,
	}
}

func NewStartRun(runUuid string, mode string, jobCount int, workers int) StartRun {
	return StartRun{
		Header:      NewHeader(runUuid, StartRunMsg),
		Mode:        mode,
		JobCount:    jobCount,
		Workers:     workers,
		StartedTime: time.Now().Format(time.RFC3339),
	}
}

func NewFinishJob(runUuid string, jobId int, verdict string, passed bool, message *string,
	input, expected, actual []byte) FinishJob {
	return FinishJob{
		Header:   NewHeader(runUuid, FinishJobMsg),
		JobId:    jobId,
		Verdict:  verdict,
		Passed:   passed,
		Message:  message,
		Input:    TrimToRect(input, MaxDataHeight, MaxDataWidth),
		Expected: TrimToRect(expected, MaxDataHeight, MaxDataWidth),
		Actual:   TrimToRect(actual, MaxDataHeight, MaxDataWidth),
	}
}

func NewFinishRun(runUuid string, passed, failed, referenceErrors, notExecuted int) FinishRun {
	return FinishRun{
		Header:          NewHeader(runUuid, FinishRunMsg),
		Passed:          passed,
		Failed:          failed,
		ReferenceErrors: referenceErrors,
		NotExecuted:     notExecuted,
		FinishedTime:    time.Now().Format(time.RFC3339),
	}
}
