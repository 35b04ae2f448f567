package entity

import "time"

type CtfContest struct {
	ID           int64
	Name         string
	Description  string
	CreatorID    int64
	CreatorName  string
	IsJoinable   bool
	RegisterTime time.Time
}
