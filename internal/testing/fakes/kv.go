package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

// Tokens is an in-memory TokenStore. TTLs are recorded but never expire entries.
type Tokens struct {
	mu   sync.Mutex
	ttls map[string]time.Duration
}

func NewTokens() *Tokens { return &Tokens{ttls: map[string]time.Duration{}} }

func (t *Tokens) Save(_ context.Context, token string, ttl time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ttls[token] = ttl
	return nil
}

func (t *Tokens) Exists(_ context.Context, token string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ttls[token]
	return ok, nil
}

func (t *Tokens) Delete(_ context.Context, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ttls, token)
	return nil
}

// TTL returns the last TTL saved for token.
func (t *Tokens) TTL(token string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ttl, ok := t.ttls[token]
	return ttl, ok
}

func (t *Tokens) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ttls)
}

// Codes is an in-memory AuthCodeStore.
type Codes struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewCodes() *Codes { return &Codes{codes: map[string]string{}} }

func (c *Codes) Save(_ context.Context, email, code string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[email] = code
	return nil
}

func (c *Codes) Get(_ context.Context, email string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	code, ok := c.codes[email]
	return code, ok, nil
}

func (c *Codes) Delete(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.codes, email)
	return nil
}

// Index is a PostIndex that matches the query as a case-insensitive substring of title or content.
type Index struct {
	mu    sync.Mutex
	posts map[int64]entity.Post
}

func NewIndex() *Index { return &Index{posts: map[int64]entity.Post{}} }

func (x *Index) Index(_ context.Context, p *entity.Post) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.posts[p.ID] = *p
	return nil
}

func (x *Index) Delete(_ context.Context, postID int64) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.posts, postID)
	return nil
}

func (x *Index) Search(_ context.Context, query string, p repository.PageRequest) ([]int64, int64, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	var ids []int64
	for id, post := range x.posts {
		if contains(post.Title, query) || contains(post.Content, query) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	items, total := page(ids, p)
	return items, total, nil
}

func (x *Index) Has(postID int64) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, ok := x.posts[postID]
	return ok
}

// Queue records every published body.
type Queue struct {
	mu     sync.Mutex
	Bodies []any
}

func (q *Queue) PublishJSON(_ context.Context, body any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Bodies = append(q.Bodies, body)
	return nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.Bodies)
}

var (
	_ repository.TokenStore    = (*Tokens)(nil)
	_ repository.AuthCodeStore = (*Codes)(nil)
	_ repository.PostIndex     = (*Index)(nil)
)
