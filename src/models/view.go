package models

import "time"

// AttendanceCounts counters shown on the reports page
type AttendanceCounts struct {
	OnTime    int `json:"onTime"`
	Late      int `json:"late"`
	Absent    int `json:"absent"`
	NotMarked int `json:"notMarked"`
}

// AttendanceSummary today's events vs every event
type AttendanceSummary struct {
	Today      AttendanceCounts `json:"today"`
	Cumulative AttendanceCounts `json:"cumulative"`
}

type CoursePercentage struct {
	Course     string  `json:"course" example:"BSIT"`
	Percentage float64 `json:"percentage" example:"75"`
}

type YearLevelPercentage struct {
	YearLevel  string  `json:"yearLevel" example:"1st Year"`
	Percentage float64 `json:"percentage" example:"50"`
}

// EventTrackerPoint one point of the dashboard line chart
type EventTrackerPoint struct {
	EventID string  `json:"eventId"`
	Label   string  `json:"label" example:"2024-09-02"`
	Tracker float64 `json:"tracker" example:"66.67"`
	Today   bool    `json:"today"`
}

// TodayAttendanceRow แถวของตารางการเช็คชื่อวันนี้
type TodayAttendanceRow struct {
	EventID       string           `json:"eventId"`
	EventTitle    string           `json:"eventTitle"`
	StudentNumber string           `json:"id"`
	Name          string           `json:"name"`
	Course        string           `json:"course"`
	YearLevel     string           `json:"yrlvl"`
	Time          time.Time        `json:"time"`
	Status        AttendanceStatus `json:"status"`
}

// RosterEntry Status is empty for students not marked yet
type RosterEntry struct {
	Student   Student          `json:"student"`
	Status    AttendanceStatus `json:"status,omitempty"`
	MarkedAt  *time.Time       `json:"markedAt,omitempty"`
	CheckedIn bool             `json:"checkedIn"`
}

type EventRoster struct {
	Event   Event         `json:"event"`
	Entries []RosterEntry `json:"students"`
	Tracker float64       `json:"tracker"`
}

type Dashboard struct {
	Courses         []CoursePercentage    `json:"courseAttendance"`
	YearLevels      []YearLevelPercentage `json:"yearLevelAttendance"`
	Trackers        []EventTrackerPoint   `json:"trackers"`
	TodayAttendance []TodayAttendanceRow  `json:"todayAttendance"`
}

// SweepReport response of the admin sweep endpoints
type SweepReport struct {
	SweptEventIDs []string          `json:"sweptEventIds"`
	Errors        map[string]string `json:"errors,omitempty"`
}
