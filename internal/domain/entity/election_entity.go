package entity

import "time"

type Election struct {
	ID           int64
	Name         string
	Description  string
	MemberID     int64
	RegisterTime time.Time
	IsAvailable  bool
}

type ElectionCandidate struct {
	ID           int64
	ElectionID   int64
	MemberID     int64
	MemberName   string
	MemberJobID  int64
	JobName      JobType
	Description  string
	VoteCount    int
	RegisterTime time.Time
}

type ElectionVoter struct {
	ElectionID int64
	MemberID   int64
	IsVoted    bool
}
