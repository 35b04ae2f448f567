package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type dayMember struct {
	day      string
	memberID int64
}

// Games is an in-memory GameStore.
type Games struct {
	mu     sync.Mutex
	games  map[dayMember]entity.BaseballGame
	earned map[string]map[int64]int
}

func NewGames() *Games {
	return &Games{games: map[dayMember]entity.BaseballGame{}, earned: map[string]map[int64]int{}}
}

func cloneGame(g entity.BaseballGame) *entity.BaseballGame {
	g.Guesses = append([]entity.BaseballGuess(nil), g.Guesses...)
	return &g
}

func (s *Games) CreateBaseball(_ context.Context, day string, g *entity.BaseballGame) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := dayMember{day, g.MemberID}
	if _, ok := s.games[k]; ok {
		return false, nil
	}
	s.games[k] = *cloneGame(*g)
	return true, nil
}

func (s *Games) GetBaseball(_ context.Context, day string, memberID int64) (*entity.BaseballGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[dayMember{day, memberID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneGame(g), nil
}

func (s *Games) UpdateBaseball(_ context.Context, day string, memberID int64, fn func(g *entity.BaseballGame) error) (*entity.BaseballGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := dayMember{day, memberID}
	cur, ok := s.games[k]
	if !ok {
		return nil, repository.ErrNotFound
	}
	g := cloneGame(cur)
	if err := fn(g); err != nil {
		return nil, err
	}
	s.games[k] = *cloneGame(*g)
	return g, nil
}

func (s *Games) DeleteBaseball(_ context.Context, day string, memberID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, dayMember{day, memberID})
	return nil
}

func (s *Games) AddEarned(_ context.Context, day string, memberID int64, point int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.earned[day] == nil {
		s.earned[day] = map[int64]int{}
	}
	s.earned[day][memberID] += point
	return nil
}

func (s *Games) TopEarned(_ context.Context, day string, n int) ([]entity.GameScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.GameScore, 0, len(s.earned[day]))
	for id, p := range s.earned[day] {
		out = append(out, entity.GameScore{MemberID: id, Point: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Point != out[j].Point {
			return out[i].Point > out[j].Point
		}
		return out[i].MemberID > out[j].MemberID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

var _ repository.GameStore = (*Games)(nil)
