// Package fakes holds in-memory implementations of the repository ports for tests.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type pair [2]int64

// Store is the shared state behind every fake repository so joins resolve.
type Store struct {
	mu  sync.Mutex
	seq int64

	members     map[int64]*entity.Member
	jobs        map[int64]entity.JobType
	files       map[int64]*entity.File
	thumbnails  map[int64]*entity.Thumbnail
	categories  map[int64]*entity.Category
	posts       map[int64]*entity.Post
	postFiles   map[pair]bool
	postLikes   map[pair]bool
	postDislike map[pair]bool
	reads       map[pair]bool
	comments    map[int64]*entity.Comment
	cmtLikes    map[pair]bool
	cmtDislikes map[pair]bool
	pointLogs   []entity.PointLog
	meritTypes  map[int64]*entity.MeritType
	meritLogs   []entity.MeritLog
	elections   map[int64]*entity.Election
	candidates  map[int64]*entity.ElectionCandidate
	voters      map[pair]*entity.ElectionVoter
	studies     map[int64]*entity.Study
	studyMember map[pair]bool
	seminars    map[int64]*entity.Seminar
	attendances map[pair]*entity.SeminarAttendance
	books       map[int64]*entity.Book
	borrows     map[int64]*entity.BookBorrowInfo
	borrowLogs  []entity.BookBorrowLog
	contests    map[int64]*entity.CtfContest
}

func NewStore() *Store {
	s := &Store{
		members:     map[int64]*entity.Member{},
		jobs:        map[int64]entity.JobType{},
		files:       map[int64]*entity.File{},
		thumbnails:  map[int64]*entity.Thumbnail{},
		categories:  map[int64]*entity.Category{},
		posts:       map[int64]*entity.Post{},
		postFiles:   map[pair]bool{},
		postLikes:   map[pair]bool{},
		postDislike: map[pair]bool{},
		reads:       map[pair]bool{},
		comments:    map[int64]*entity.Comment{},
		cmtLikes:    map[pair]bool{},
		cmtDislikes: map[pair]bool{},
		meritTypes:  map[int64]*entity.MeritType{},
		elections:   map[int64]*entity.Election{},
		candidates:  map[int64]*entity.ElectionCandidate{},
		voters:      map[pair]*entity.ElectionVoter{},
		studies:     map[int64]*entity.Study{},
		studyMember: map[pair]bool{},
		seminars:    map[int64]*entity.Seminar{},
		attendances: map[pair]*entity.SeminarAttendance{},
		books:       map[int64]*entity.Book{},
		borrows:     map[int64]*entity.BookBorrowInfo{},
		contests:    map[int64]*entity.CtfContest{},
	}
	for i, j := range entity.AllJobs {
		s.jobs[int64(i+1)] = j
	}
	return s
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func (s *Store) JobID(job entity.JobType) int64 {
	for id, j := range s.jobs {
		if j == job {
			return id
		}
	}
	return 0
}

func dup(constraint string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, constraint)
}

func page[T any](items []T, p repository.PageRequest) ([]T, int64) {
	total := int64(len(items))
	from := p.Offset()
	if from >= len(items) {
		return []T{}, total
	}
	to := from + p.Size
	if to > len(items) {
		to = len(items)
	}
	return items[from:to], total
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Tx runs fn directly; the fakes have no rollback.
type Tx struct{}

func (Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ repository.Transactor = Tx{}

func now() time.Time { return time.Now() }
