package entity

import "time"

// PointLog records one change of a member's point balance.
// Spent rows carry a negative Point.
type PointLog struct {
	ID          int64
	MemberID    int64
	Point       int
	Detail      string
	PresentedID *int64
	IsSpent     bool
	Time        time.Time
}

type MeritType struct {
	ID      int64
	Merit   int
	IsMerit bool
	Detail  string
}

type MeritLog struct {
	ID          int64
	AwarderID   int64
	AwarderName string
	GiverID     int64
	GiverName   string
	MeritTypeID int64
	Merit       int
	IsMerit     bool
	Detail      string
	Time        time.Time
}
