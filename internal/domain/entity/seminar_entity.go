package entity

import "time"

type AttendanceStatus string

const (
	AttendanceAttend   AttendanceStatus = "ATTENDANCE"
	AttendanceLateness AttendanceStatus = "LATENESS"
	AttendanceAbsence  AttendanceStatus = "ABSENCE"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceAttend, AttendanceLateness, AttendanceAbsence:
		return true
	}
	return false
}

// Counts reports whether the status adds to a member's total attendance.
func (s AttendanceStatus) Counts() bool {
	return s == AttendanceAttend || s == AttendanceLateness
}

type Seminar struct {
	ID                  int64
	Name                string
	OpenTime            time.Time
	AttendanceCloseTime *time.Time
	LatenessCloseTime   *time.Time
	AttendanceCode      *string
	StarterID           *int64
	RegisterTime        time.Time
}

// Started reports whether attendance has been opened for the seminar.
func (s *Seminar) Started() bool {
	return s.AttendanceCode != nil && s.AttendanceCloseTime != nil && s.LatenessCloseTime != nil
}

// StatusAt returns the attendance status for a check-in at t, or false when attendance is closed.
func (s *Seminar) StatusAt(t time.Time) (AttendanceStatus, bool) {
	if !s.Started() {
		return "", false
	}
	if !t.After(*s.AttendanceCloseTime) {
		return AttendanceAttend, true
	}
	if !t.After(*s.LatenessCloseTime) {
		return AttendanceLateness, true
	}
	return "", false
}

type SeminarAttendance struct {
	ID         int64
	SeminarID  int64
	MemberID   int64
	MemberName string
	Status     AttendanceStatus
	AttendTime time.Time
	// Excuse is the member's reason for a late or missed seminar.
	Excuse *string
}
