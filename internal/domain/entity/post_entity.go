package entity

import "time"

type Category struct {
	ID       int64
	Name     string
	Slug     string
	ParentID *int64
}

type Post struct {
	ID            int64
	CategoryID    int64
	MemberID      int64
	WriterName    string
	Title         string
	Content       string
	VisitCount    int
	IPAddress     string
	AllowComment  bool
	IsNotice      bool
	IsSecret      bool
	IsTemp        bool
	Password      *string
	ThumbnailID   *int64
	ThumbnailPath string
	LikeCount     int
	DislikeCount  int
	RegisterTime  time.Time
	UpdateTime    time.Time
}

func (p *Post) IsWriter(memberID int64) bool {
	return p.MemberID == memberID
}

type Comment struct {
	ID                  int64
	PostID              int64
	MemberID            int64
	ParentID            *int64
	Content             string
	IPAddress           string
	RegisterTime        time.Time
	WriterName          string
	WriterThumbnailPath string
	LikeCount           int
	DislikeCount        int
}

func (c *Comment) IsWriter(memberID int64) bool {
	return c.MemberID == memberID
}
