package entity

import (
	"time"
)

// Member is the aggregate root for the member domain
// Passwords are stored as bcrypt hashes in Password field
type Member struct {
	ID              int64
	LoginID         string
	EmailAddress    string
	Password        string
	RealName        string
	NickName        string
	Birthday        *time.Time
	StudentID       *string
	Generation      float64
	Point           int
	Level           int
	Merit           int
	Demerit         int
	TotalAttendance int
	ThumbnailID     *int64
	ThumbnailPath   string
	Jobs            []JobType
	RegisterTime    time.Time
}

// GenerationOf returns the club generation for a member who joins at t.
// The club started in 2009; the second half of a year counts as a half generation.
func GenerationOf(t time.Time) float64 {
	g := float64(t.Year() - 2009)
	if t.Month() >= time.July {
		g += 0.5
	}
	return g
}

// HasJob reports whether the member holds any of jobs.
func (m *Member) HasJob(jobs ...JobType) bool {
	for _, have := range m.Jobs {
		for _, want := range jobs {
			if have == want {
				return true
			}
		}
	}
	return false
}
