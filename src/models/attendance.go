package models

import "time"

// AttendanceStatus สถานะการเช็คชื่อ
type AttendanceStatus string

const (
	StatusOnTime AttendanceStatus = "ontime"
	StatusLate   AttendanceStatus = "late"
	StatusAbsent AttendanceStatus = "absent"
)

// Attended is true for on-time and late marks.
func (s AttendanceStatus) Attended() bool {
	return s == StatusOnTime || s == StatusLate
}

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusOnTime, StatusLate, StatusAbsent:
		return true
	}
	return false
}

// AttendanceRecord one mark, keyed by (EventID, StudentID)
type AttendanceRecord struct {
	EventID   string           `json:"eventId" example:"665f1b2c9d1e8a0012ab34cd"`
	StudentID string           `json:"studentId" example:"665f1b2c9d1e8a0012ab34ce"`
	Status    AttendanceStatus `json:"status" example:"ontime"`
	Timestamp time.Time        `json:"timestamp"`
}

// ToggleRequest optional mark time; server clock is used when omitted
type ToggleRequest struct {
	At *time.Time `json:"at"`
}

// ToggleResult Status is empty when the record was removed
type ToggleResult struct {
	Removed bool             `json:"removed"`
	Status  AttendanceStatus `json:"status,omitempty"`
}
