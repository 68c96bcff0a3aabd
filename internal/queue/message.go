package queue

import (
	"encoding/json"
	"time"
)

// MessageVersion is the current payload schema version.
const MessageVersion = 1

// Message is the payload sent to analysis workers.
type Message struct {
	AnalysisID string `json:"analysisId"`
	ResumeID   string `json:"resumeId,omitempty"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// NewMessage builds a message stamped with the enqueue time.
func NewMessage(analysisID, resumeID, requestID string, now time.Time) Message {
	return Message{
		AnalysisID: analysisID,
		ResumeID:   resumeID,
		RequestID:  requestID,
		EnqueuedAt: now.UTC().Format(time.RFC3339),
		Version:    MessageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
