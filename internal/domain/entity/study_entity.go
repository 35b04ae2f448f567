package entity

import "time"

type Study struct {
	ID            int64
	Title         string
	Information   string
	Year          int
	Season        int
	GitLink       *string
	NoteLink      *string
	EtcLink       *string
	HeadMemberID  int64
	ThumbnailID   *int64
	ThumbnailPath string
	RegisterTime  time.Time
}

func (s *Study) IsHead(memberID int64) bool {
	return s.HeadMemberID == memberID
}

// StudyMember is a participant with the name shown on the study page.
type StudyMember struct {
	MemberID int64
	RealName string
}
