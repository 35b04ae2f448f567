package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
)

type CategoryRepository struct{ s *Store }

func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s} }

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.categories {
		if o.Slug == c.Slug {
			return dup("category_slug_key")
		}
	}
	c.ID = r.s.next()
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Category, 0, len(r.s.categories))
	for _, id := range sortedIDs(r.s.categories) {
		out = append(out, *r.s.categories[id])
	}
	return out, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.categories, id)
	for pid, p := range r.s.posts {
		if p.CategoryID == id {
			r.s.deletePost(pid)
		}
	}
	return nil
}

// deletePost removes a post and its comments; callers hold the lock.
func (s *Store) deletePost(id int64) {
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
}

type PostRepository struct{ s *Store }

func (s *Store) Posts() *PostRepository { return &PostRepository{s} }

func (r *PostRepository) view(p *entity.Post) entity.Post {
	cp := *p
	if m, ok := r.s.members[p.MemberID]; ok {
		cp.WriterName = m.NickName
	}
	if p.ThumbnailID != nil {
		if t, ok := r.s.thumbnails[*p.ThumbnailID]; ok {
			cp.ThumbnailPath = t.Path
		}
	}
	for k := range r.s.postLikes {
		if k[1] == p.ID {
			cp.LikeCount++
		}
	}
	for k := range r.s.postDislike {
		if k[1] == p.ID {
			cp.DislikeCount++
		}
	}
	return cp
}

func (r *PostRepository) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.next()
	p.RegisterTime = now()
	p.UpdateTime = p.RegisterTime
	cp := *p
	r.s.posts[p.ID] = &cp
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id int64) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.view(p)
	return &v, nil
}

func (r *PostRepository) Update(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdateTime = now()
	cp := *p
	r.s.posts[p.ID] = &cp
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deletePost(id)
	return nil
}

func (r *PostRepository) List(_ context.Context, categoryID *int64, p repository.PageRequest) ([]entity.Post, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Post
	for _, id := range sortedIDs(r.s.posts) {
		post := r.s.posts[id]
		if post.IsTemp || (categoryID != nil && post.CategoryID != *categoryID) {
			continue
		}
		out = append(out, r.view(post))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsNotice != out[j].IsNotice {
			return out[i].IsNotice
		}
		return out[i].ID > out[j].ID
	})
	items, total := page(out, p)
	return items, total, nil
}

func (r *PostRepository) ListByIDs(_ context.Context, ids []int64) ([]entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Post
	for _, id := range ids {
		if p, ok := r.s.posts[id]; ok {
			out = append(out, r.view(p))
		}
	}
	return out, nil
}

func (r *PostRepository) AddFile(_ context.Context, postID, fileID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.postFiles[pair{postID, fileID}] = true
	return nil
}

func (r *PostRepository) MarkRead(_ context.Context, memberID, postID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pair{memberID, postID}
	if r.s.reads[k] {
		return false, nil
	}
	r.s.reads[k] = true
	return true, nil
}

func (r *PostRepository) IncrementVisit(_ context.Context, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	p.VisitCount++
	return nil
}

func toggle(mu sync.Locker, set map[pair]bool, k pair) bool {
	mu.Lock()
	defer mu.Unlock()
	if set[k] {
		delete(set, k)
		return false
	}
	set[k] = true
	return true
}

func (r *PostRepository) ToggleLike(_ context.Context, memberID, postID int64) (bool, error) {
	return toggle(&r.s.mu, r.s.postLikes, pair{memberID, postID}), nil
}

func (r *PostRepository) ToggleDislike(_ context.Context, memberID, postID int64) (bool, error) {
	return toggle(&r.s.mu, r.s.postDislike, pair{memberID, postID}), nil
}

type CommentRepository struct{ s *Store }

func (s *Store) Comments() *CommentRepository { return &CommentRepository{s} }

func (r *CommentRepository) view(c *entity.Comment) entity.Comment {
	cp := *c
	if m, ok := r.s.members[c.MemberID]; ok {
		cp.WriterName = m.NickName
		if m.ThumbnailID != nil {
			if t, ok := r.s.thumbnails[*m.ThumbnailID]; ok {
				cp.WriterThumbnailPath = t.Path
			}
		}
	}
	for k := range r.s.cmtLikes {
		if k[1] == c.ID {
			cp.LikeCount++
		}
	}
	for k := range r.s.cmtDislikes {
		if k[1] == c.ID {
			cp.DislikeCount++
		}
	}
	return cp
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.next()
	c.RegisterTime = now()
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id int64) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v := r.view(c)
	return &v, nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID int64) ([]entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Comment
	for _, id := range sortedIDs(r.s.comments) {
		if c := r.s.comments[id]; c.PostID == postID {
			out = append(out, r.view(c))
		}
	}
	return out, nil
}

func (r *CommentRepository) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.comments[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.MemberID = c.MemberID
	cur.Content = c.Content
	return nil
}

func (r *CommentRepository) ToggleLike(_ context.Context, memberID, commentID int64) (bool, error) {
	return toggle(&r.s.mu, r.s.cmtLikes, pair{memberID, commentID}), nil
}

func (r *CommentRepository) ToggleDislike(_ context.Context, memberID, commentID int64) (bool, error) {
	return toggle(&r.s.mu, r.s.cmtDislikes, pair{memberID, commentID}), nil
}

func (r *CommentRepository) ClearReactions(_ context.Context, commentID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k := range r.s.cmtLikes {
		if k[1] == commentID {
			delete(r.s.cmtLikes, k)
		}
	}
	for k := range r.s.cmtDislikes {
		if k[1] == commentID {
			delete(r.s.cmtDislikes, k)
		}
	}
	return nil
}

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.PostRepository     = (*PostRepository)(nil)
	_ repository.CommentRepository  = (*CommentRepository)(nil)
)
