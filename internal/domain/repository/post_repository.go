package repository

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
	// Delete removes the category together with its posts.
	Delete(ctx context.Context, id int64) error
}

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id int64) error
	// List returns non-temporary posts, notices first then newest. A nil categoryID lists every category.
	List(ctx context.Context, categoryID *int64, page PageRequest) ([]entity.Post, int64, error)
	ListByIDs(ctx context.Context, ids []int64) ([]entity.Post, error)
	AddFile(ctx context.Context, postID, fileID int64) error
	// MarkRead returns true the first time memberID reads postID.
	MarkRead(ctx context.Context, memberID, postID int64) (bool, error)
	IncrementVisit(ctx context.Context, postID int64) error
	// ToggleLike adds or removes a like and reports whether it is now set.
	ToggleLike(ctx context.Context, memberID, postID int64) (bool, error)
	ToggleDislike(ctx context.Context, memberID, postID int64) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	ToggleLike(ctx context.Context, memberID, commentID int64) (bool, error)
	ToggleDislike(ctx context.Context, memberID, commentID int64) (bool, error)
	ClearReactions(ctx context.Context, commentID int64) error
}
