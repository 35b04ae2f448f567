package apperror

import "net/http"

// ErrorCode identifies a business failure. The name is what clients see in error.code.
type ErrorCode struct {
	Name    string
	Status  int
	Message string
}

func code(name string, status int, message string) ErrorCode {
	return ErrorCode{Name: name, Status: status, Message: message}
}

var (
	// Common
	InvalidPageRequest = code("INVALID_PAGE_REQUEST", http.StatusBadRequest, "invalid page request")
	AccessDenied       = code("ACCESS_DENIED", http.StatusForbidden, "access denied")
	FileSaveFailed     = code("FILE_SAVE_FAILED", http.StatusInternalServerError, "failed to save file")
	ThumbnailNotImage  = code("THUMBNAIL_NOT_IMAGE", http.StatusBadRequest, "thumbnail must be an image")

	// Member
	MemberNotFound           = code("MEMBER_NOT_FOUND", http.StatusNotFound, "member not found")
	MemberEmailDuplicate     = code("MEMBER_EMAIL_DUPLICATE", http.StatusBadRequest, "email already in use")
	MemberLoginIDDuplicate   = code("MEMBER_LOGIN_ID_DUPLICATE", http.StatusBadRequest, "login id already in use")
	MemberStudentIDDuplicate = code("MEMBER_STUDENT_ID_DUPLICATE", http.StatusBadRequest, "student id already in use")
	MemberWrongPassword      = code("MEMBER_WRONG_PASSWORD", http.StatusBadRequest, "wrong password")
	MemberWrongIDOrPassword  = code("MEMBER_WRONG_ID_OR_PASSWORD", http.StatusUnauthorized, "wrong login id or password")
	MemberJobNotFound        = code("MEMBER_JOB_NOT_FOUND", http.StatusNotFound, "member job not found")
	AuthCodeMismatch         = code("AUTH_CODE_MISMATCH", http.StatusBadRequest, "auth code does not match")

	// Point
	PointNotEnough     = code("POINT_NOT_ENOUGH", http.StatusBadRequest, "not enough points")
	PointInvalidAmount = code("POINT_INVALID_AMOUNT", http.StatusBadRequest, "point must be positive")
	PointSelfPresent   = code("POINT_SELF_PRESENT", http.StatusBadRequest, "cannot present points to yourself")

	// Post, category
	CategoryNotFound      = code("CATEGORY_NOT_FOUND", http.StatusNotFound, "category not found")
	PostNotFound          = code("POST_NOT_FOUND", http.StatusNotFound, "post not found")
	PostNotWriter         = code("POST_NOT_WRITER", http.StatusForbidden, "only the writer can modify this post")
	PostPasswordMismatch  = code("POST_PASSWORD_MISMATCH", http.StatusBadRequest, "post password does not match")
	PostCommentNotAllowed = code("POST_COMMENT_NOT_ALLOWED", http.StatusBadRequest, "comments are not allowed on this post")

	// Comment
	CommentNotFound  = code("COMMENT_NOT_FOUND", http.StatusNotFound, "comment not found")
	CommentNotWriter = code("COMMENT_NOT_WRITER", http.StatusForbidden, "only the writer can modify this comment")

	// Merit
	MeritTypeNotFound = code("MERIT_TYPE_NOT_FOUND", http.StatusNotFound, "merit type not found")
	MeritLogNotFound  = code("MERIT_LOG_NOT_FOUND", http.StatusNotFound, "merit log not found")

	// Election
	ElectionNotFound            = code("ELECTION_NOT_FOUND", http.StatusNotFound, "election not found")
	ElectionCannotDelete        = code("ELECTION_CANNOT_DELETE", http.StatusBadRequest, "an open election cannot be deleted")
	ElectionCandidateInvalidJob = code("ELECTION_CANDIDATE_INVALID_JOB", http.StatusBadRequest, "this job cannot be elected")
	ElectionCandidateNotFound   = code("ELECTION_CANDIDATE_NOT_FOUND", http.StatusNotFound, "candidate not found")
	ElectionNotAvailable        = code("ELECTION_NOT_AVAILABLE", http.StatusBadRequest, "election is not open")
	ElectionVoterNotFound       = code("ELECTION_VOTER_NOT_FOUND", http.StatusForbidden, "not a voter of this election")
	ElectionAlreadyVoted        = code("ELECTION_ALREADY_VOTED", http.StatusBadRequest, "already voted")

	// Study
	StudyNotFound         = code("STUDY_NOT_FOUND", http.StatusNotFound, "study not found")
	StudyCannotAccessible = code("STUDY_CANNOT_ACCESSIBLE", http.StatusBadRequest, "only the study head can do this")

	// Seminar
	SeminarNotFound               = code("SEMINAR_NOT_FOUND", http.StatusNotFound, "seminar not found")
	SeminarNotStarted             = code("SEMINAR_NOT_STARTED", http.StatusBadRequest, "seminar has not started")
	SeminarAttendanceCodeMismatch = code("SEMINAR_ATTENDANCE_CODE_MISMATCH", http.StatusBadRequest, "attendance code does not match")
	SeminarAttendanceClosed       = code("SEMINAR_ATTENDANCE_CLOSED", http.StatusBadRequest, "attendance is closed")
	SeminarAlreadyAttended        = code("SEMINAR_ALREADY_ATTENDED", http.StatusBadRequest, "already attended")
	SeminarInvalidTime            = code("SEMINAR_INVALID_TIME", http.StatusBadRequest, "invalid attendance close time")
	SeminarAttendanceNotFound     = code("SEMINAR_ATTENDANCE_NOT_FOUND", http.StatusNotFound, "seminar attendance not found")
	SeminarExcuseNotAllowed       = code("SEMINAR_EXCUSE_NOT_ALLOWED", http.StatusBadRequest, "excuses are only for lateness or absence")
	SeminarInvalidStatus          = code("SEMINAR_INVALID_STATUS", http.StatusBadRequest, "invalid attendance status")

	// Game
	GameNotStarted     = code("GAME_NOT_STARTED", http.StatusNotFound, "no game played today")
	GameAlreadyPlayed  = code("GAME_ALREADY_PLAYED", http.StatusBadRequest, "today's game was already played")
	GameFinished       = code("GAME_FINISHED", http.StatusBadRequest, "the game is over")
	GameInvalidGuess   = code("GAME_INVALID_GUESS", http.StatusBadRequest, "guess must be 4 distinct digits")
	GameInvalidBetting = code("GAME_INVALID_BETTING", http.StatusBadRequest, "betting point is out of range")

	// Library
	BookNotFound                    = code("BOOK_NOT_FOUND", http.StatusNotFound, "book not found")
	BookNotAvailable                = code("BOOK_NOT_AVAILABLE", http.StatusBadRequest, "no copies left to borrow")
	BorrowNotFound                  = code("BORROW_NOT_FOUND", http.StatusNotFound, "borrow not found")
	BorrowStatusIsNotRequests       = code("BORROW_STATUS_IS_NOT_REQUESTS", http.StatusBadRequest, "borrow is not waiting for approval")
	BorrowStatusIsNotReturnRequests = code("BORROW_STATUS_IS_NOT_RETURN_REQUESTS", http.StatusBadRequest, "borrow is not waiting for return")
	BorrowStatusIsNotBorrowing      = code("BORROW_STATUS_IS_NOT_BORROWING", http.StatusBadRequest, "book is not borrowed")
	BorrowRequestLimit              = code("BORROW_REQUEST_LIMIT", http.StatusBadRequest, "borrow request limit reached")

	// CTF
	CtfContestNotFound = code("CTF_CONTEST_NOT_FOUND", http.StatusNotFound, "ctf contest not found")
)
