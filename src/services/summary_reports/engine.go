package summary_reports

import (
	"fmt"
	"math"
	"sort"
	"time"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/storage"
)

// Snapshot is what every aggregate is computed from. It may be slightly stale.
type Snapshot struct {
	Events   []models.Event
	Students []models.Student
	// Records keyed by event id
	Records map[string][]models.AttendanceRecord
}

// percentage returns attended/eligible*100 rounded to 2 decimals, 0 when eligible is 0.
func percentage(attended, eligible int) float64 {
	if eligible <= 0 || attended <= 0 {
		return 0
	}
	if attended > eligible {
		attended = eligible
	}
	p := float64(attended) / float64(eligible) * 100
	return math.Round(p*100) / 100
}

// ComputeEventTracker counts eligible students holding an on-time or late record.
func ComputeEventTracker(event models.Event, students []models.Student, records []models.AttendanceRecord) float64 {
	eligible := event.EligibleStudents(students)
	ids := make(map[string]struct{}, len(eligible))
	for _, s := range eligible {
		ids[s.ID] = struct{}{}
	}

	attended := 0
	for _, r := range storage.Dedupe(records) {
		if _, ok := ids[r.StudentID]; ok && r.Status.Attended() {
			attended++
		}
	}
	return percentage(attended, len(eligible))
}

// attendedStudents ids of students with at least one on-time or late record in any event.
func attendedStudents(allRecords []models.AttendanceRecord) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, r := range allRecords {
		if r.Status.Attended() {
			ids[r.StudentID] = struct{}{}
		}
	}
	return ids
}

// coverage groups students by key and returns, per group, the share of students who
// attended at least once.
func coverage(students []models.Student, allRecords []models.AttendanceRecord, key func(models.Student) string) map[string]float64 {
	attended := attendedStudents(allRecords)
	totals := make(map[string]int)
	covered := make(map[string]int)
	for _, s := range students {
		k := key(s)
		totals[k]++
		if _, ok := attended[s.ID]; ok {
			covered[k]++
		}
	}

	out := make(map[string]float64, len(totals))
	for k, total := range totals {
		out[k] = percentage(covered[k], total)
	}
	return out
}

// ComputeCourseSummary is the share of each course's students with at least one
// on-time or late record across all events.
func ComputeCourseSummary(students []models.Student, allRecords []models.AttendanceRecord) map[string]float64 {
	return coverage(students, allRecords, func(s models.Student) string { return s.Course })
}

// ComputeYearLevelSummary same as ComputeCourseSummary, keyed by year level.
func ComputeYearLevelSummary(students []models.Student, allRecords []models.AttendanceRecord) map[string]float64 {
	summary := coverage(students, allRecords, func(s models.Student) string { return s.YearLevel })
	for _, lvl := range models.YearLevels {
		if _, ok := summary[lvl]; !ok {
			summary[lvl] = 0
		}
	}
	return summary
}

// CourseSummary orders ComputeCourseSummary by course name. Courses listed in `courses`
// with no students still show up at 0.
func CourseSummary(courses []string, students []models.Student, allRecords []models.AttendanceRecord) []models.CoursePercentage {
	summary := ComputeCourseSummary(students, allRecords)
	for _, c := range courses {
		if _, ok := summary[c]; !ok {
			summary[c] = 0
		}
	}
	names := make([]string, 0, len(summary))
	for c := range summary {
		names = append(names, c)
	}
	sort.Strings(names)

	out := make([]models.CoursePercentage, 0, len(names))
	for _, c := range names {
		out = append(out, models.CoursePercentage{Course: c, Percentage: summary[c]})
	}
	return out
}

// YearLevelSummary the four standard levels first, any others after in name order.
func YearLevelSummary(students []models.Student, allRecords []models.AttendanceRecord) []models.YearLevelPercentage {
	summary := ComputeYearLevelSummary(students, allRecords)
	out := make([]models.YearLevelPercentage, 0, len(summary))
	seen := make(map[string]struct{}, len(models.YearLevels))
	for _, lvl := range models.YearLevels {
		seen[lvl] = struct{}{}
		out = append(out, models.YearLevelPercentage{YearLevel: lvl, Percentage: summary[lvl]})
	}

	extra := make([]string, 0)
	for lvl := range summary {
		if _, ok := seen[lvl]; !ok {
			extra = append(extra, lvl)
		}
	}
	sort.Strings(extra)
	for _, lvl := range extra {
		out = append(out, models.YearLevelPercentage{YearLevel: lvl, Percentage: summary[lvl]})
	}
	return out
}

// countEvent adds the event's statuses to c. Only eligible students count, so the four
// counters always add up to the number of eligible students.
func countEvent(c *models.AttendanceCounts, event models.Event, students []models.Student, records []models.AttendanceRecord) {
	ids := eligibleIDs(event, students)
	marked := 0
	for _, r := range storage.Dedupe(records) {
		if _, ok := ids[r.StudentID]; ok && tally(c, r.Status) {
			marked++
		}
	}
	c.NotMarked += len(ids) - marked
}

func eligibleIDs(event models.Event, students []models.Student) map[string]struct{} {
	eligible := event.EligibleStudents(students)
	ids := make(map[string]struct{}, len(eligible))
	for _, s := range eligible {
		ids[s.ID] = struct{}{}
	}
	return ids
}

func tally(c *models.AttendanceCounts, status models.AttendanceStatus) bool {
	switch status {
	case models.StatusOnTime:
		c.OnTime++
	case models.StatusLate:
		c.Late++
	case models.StatusAbsent:
		c.Absent++
	default:
		return false
	}
	return true
}

// sameDay reports whether a and b fall on the same calendar date in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// TodayEvents returns the events whose window overlaps now's calendar day.
func TodayEvents(events []models.Event, now time.Time, classifier attendance.Classifier) ([]models.Event, error) {
	today := make([]models.Event, 0)
	for _, e := range events {
		w, err := classifier.Window(e)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		if w.Covers(now, classifier.Location()) {
			today = append(today, e)
		}
	}
	return today, nil
}

// ComputeAttendanceSummary counts statuses of records stamped today and of all records.
// Today's not-marked is the eligible students of today's events minus those holding any
// record for that event.
func ComputeAttendanceSummary(snap Snapshot, now time.Time, classifier attendance.Classifier) (models.AttendanceSummary, error) {
	today, err := TodayEvents(snap.Events, now, classifier)
	if err != nil {
		return models.AttendanceSummary{}, err
	}
	isToday := make(map[string]bool, len(today))
	for _, e := range today {
		isToday[e.ID] = true
	}

	loc := classifier.Location()
	var summary models.AttendanceSummary
	for _, e := range snap.Events {
		records := snap.Records[e.ID]
		countEvent(&summary.Cumulative, e, snap.Students, records)

		ids := eligibleIDs(e, snap.Students)
		marked := 0
		for _, r := range storage.Dedupe(records) {
			if _, ok := ids[r.StudentID]; !ok || !r.Status.Valid() {
				continue
			}
			marked++
			if sameDay(r.Timestamp, now, loc) {
				tally(&summary.Today, r.Status)
			}
		}
		if isToday[e.ID] {
			summary.Today.NotMarked += len(ids) - marked
		}
	}
	return summary, nil
}

// TrackerSeries one freshly computed tracker per event, in start order.
func TrackerSeries(snap Snapshot, now time.Time, classifier attendance.Classifier) ([]models.EventTrackerPoint, error) {
	events := sortedByStart(snap.Events)
	points := make([]models.EventTrackerPoint, 0, len(events))
	for _, e := range events {
		w, err := classifier.Window(e)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		points = append(points, models.EventTrackerPoint{
			EventID: e.ID,
			Label:   e.StartDate,
			Tracker: ComputeEventTracker(e, snap.Students, snap.Records[e.ID]),
			Today:   w.Covers(now, classifier.Location()),
		})
	}
	return points, nil
}

// TodayAttendance rows for every record stamped today, latest mark first.
func TodayAttendance(snap Snapshot, now time.Time, classifier attendance.Classifier) ([]models.TodayAttendanceRow, error) {
	if _, err := TodayEvents(snap.Events, now, classifier); err != nil {
		return nil, err
	}
	byID := make(map[string]models.Student, len(snap.Students))
	for _, s := range snap.Students {
		byID[s.ID] = s
	}

	rows := make([]models.TodayAttendanceRow, 0)
	for _, e := range snap.Events {
		for _, r := range storage.Dedupe(snap.Records[e.ID]) {
			s, ok := byID[r.StudentID]
			if !ok || !sameDay(r.Timestamp, now, classifier.Location()) {
				continue
			}
			rows = append(rows, models.TodayAttendanceRow{
				EventID:       e.ID,
				EventTitle:    e.Title,
				StudentNumber: s.StudentNumber,
				Name:          s.Name,
				Course:        s.Course,
				YearLevel:     s.YearLevel,
				Time:          r.Timestamp.In(classifier.Location()),
				Status:        r.Status,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time.After(rows[j].Time) })
	return rows, nil
}

// BuildEventRoster lists the event's eligible students by name with their current status.
func BuildEventRoster(event models.Event, students []models.Student, records []models.AttendanceRecord) models.EventRoster {
	byStudent := make(map[string]models.AttendanceRecord, len(records))
	for _, r := range storage.Dedupe(records) {
		byStudent[r.StudentID] = r
	}

	eligible := event.EligibleStudents(students)
	sort.SliceStable(eligible, func(i, j int) bool { return eligible[i].Name < eligible[j].Name })

	entries := make([]models.RosterEntry, 0, len(eligible))
	for _, s := range eligible {
		entry := models.RosterEntry{Student: s}
		if r, ok := byStudent[s.ID]; ok {
			at := r.Timestamp
			entry.Status = r.Status
			entry.MarkedAt = &at
			entry.CheckedIn = r.Status.Attended()
		}
		entries = append(entries, entry)
	}
	return models.EventRoster{
		Event:   event,
		Entries: entries,
		Tracker: ComputeEventTracker(event, students, records),
	}
}

// BuildDashboard everything the dashboard page shows, from one snapshot.
func BuildDashboard(snap Snapshot, now time.Time, classifier attendance.Classifier) (models.Dashboard, error) {
	all := flatten(snap.Records)

	trackers, err := TrackerSeries(snap, now, classifier)
	if err != nil {
		return models.Dashboard{}, err
	}
	today, err := TodayAttendance(snap, now, classifier)
	if err != nil {
		return models.Dashboard{}, err
	}

	return models.Dashboard{
		Courses:         CourseSummary(eventCourses(snap.Events), snap.Students, all),
		YearLevels:      YearLevelSummary(snap.Students, all),
		Trackers:        trackers,
		TodayAttendance: today,
	}, nil
}

func flatten(byEvent map[string][]models.AttendanceRecord) []models.AttendanceRecord {
	all := make([]models.AttendanceRecord, 0)
	for _, records := range byEvent {
		all = append(all, storage.Dedupe(records)...)
	}
	return all
}

func eventCourses(events []models.Event) []string {
	courses := make([]string, 0)
	seen := make(map[string]struct{})
	for _, e := range events {
		for _, c := range e.Courses {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				courses = append(courses, c)
			}
		}
	}
	return courses
}

func sortedByStart(events []models.Event) []models.Event {
	out := append([]models.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate == out[j].StartDate {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].StartDate < out[j].StartDate
	})
	return out
}
