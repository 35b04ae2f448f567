package entity

import "time"

type BorrowStatus string

const (
	BorrowRequests       BorrowStatus = "REQUESTS"
	BorrowDenied         BorrowStatus = "DENIED"
	BorrowInBorrowing    BorrowStatus = "IN_BORROWING"
	BorrowReturnRequests BorrowStatus = "RETURN_REQUESTS"
	BorrowReturned       BorrowStatus = "RETURNED"
	BorrowReturnDenied   BorrowStatus = "RETURN_DENIED"
)

// BorrowPeriod is how long an approved borrow lasts.
const BorrowPeriod = 14 * 24 * time.Hour

// MaxBorrowRequests is the number of requested or in-hand books a member may have.
const MaxBorrowRequests = 5

type Book struct {
	ID              int64
	Title           string
	Author          string
	TotalQuantity   int
	CurrentQuantity int
	ThumbnailID     *int64
	ThumbnailPath   string
	RegisterDate    time.Time
}

type BookBorrowInfo struct {
	ID              int64
	MemberID        int64
	MemberRealName  string
	MemberEmail     string
	BookID          int64
	BookTitle       string
	BookAuthor      string
	Status          BorrowStatus
	RegisterTime    time.Time
	BorrowDate      *time.Time
	ExpireDate      *time.Time
	LastRequestDate time.Time
}

// Overdue reports whether the book is still out after its expire date.
func (b *BookBorrowInfo) Overdue(now time.Time) bool {
	if b.ExpireDate == nil {
		return false
	}
	out := b.Status == BorrowInBorrowing || b.Status == BorrowReturnRequests
	return out && now.After(*b.ExpireDate)
}

type BookBorrowLog struct {
	ID             int64
	BorrowInfoID   int64
	BookTitle      string
	BookAuthor     string
	MemberRealName string
	BorrowStatus   BorrowStatus
	Time           time.Time
}
