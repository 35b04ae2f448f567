package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/internal/domain/entity"
	repo "github.com/keeper31337/homepage-api/internal/domain/repository"
	"github.com/keeper31337/homepage-api/pkg/apperror"
)

// DeletedCommentContent replaces the content of a deleted comment.
const DeletedCommentContent = "(deleted comment)"

type CommentService struct {
	Comments        repo.CommentRepository
	Posts           repo.PostRepository
	Files           *FileService
	Tx              repo.Transactor
	VirtualMemberID int64
	Logger          *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, posts repo.PostRepository, files *FileService, tx repo.Transactor, virtualMemberID int64, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Posts: posts, Files: files, Tx: tx, VirtualMemberID: virtualMemberID, Logger: logger}
}

func (s *CommentService) Create(ctx context.Context, memberID, postID int64, parentID *int64, content, ip string) (*entity.Comment, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, apperror.PostNotFound, "postId", postID)
	}
	if !p.AllowComment {
		return nil, apperror.New(postID, "postId", apperror.PostCommentNotAllowed)
	}
	if parentID != nil {
		parent, err := s.Comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, notFound(err, apperror.CommentNotFound, "parentId", *parentID)
		}
		if parent.PostID != postID {
			return nil, apperror.New(*parentID, "parentId", apperror.CommentNotFound)
		}
	}
	c := &entity.Comment{PostID: postID, MemberID: memberID, ParentID: parentID, Content: content, IPAddress: ip}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByPost returns the comments of a post with writer thumbnails resolved to URLs.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]entity.Comment, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return nil, notFound(err, apperror.PostNotFound, "postId", postID)
	}
	comments, err := s.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].WriterThumbnailPath = s.Files.ThumbnailURL(comments[i].WriterThumbnailPath)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, memberID, commentID int64, content string) (*entity.Comment, error) {
	c, err := s.writerComment(ctx, memberID, commentID)
	if err != nil {
		return nil, err
	}
	c.Content = content
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, notFound(err, apperror.CommentNotFound, "commentId", commentID)
	}
	return c, nil
}

// Delete hands the comment to the virtual member, blanks its content and drops its reactions.
// The row stays so replies keep their parent.
func (s *CommentService) Delete(ctx context.Context, memberID, commentID int64) error {
	c, err := s.writerComment(ctx, memberID, commentID)
	if err != nil {
		return err
	}
	return runTx(ctx, s.Tx, func(ctx context.Context) error {
		c.MemberID = s.VirtualMemberID
		c.Content = DeletedCommentContent
		if err := s.Comments.Update(ctx, c); err != nil {
			return err
		}
		return s.Comments.ClearReactions(ctx, commentID)
	})
}

func (s *CommentService) ToggleLike(ctx context.Context, memberID, commentID int64) (bool, error) {
	if _, err := s.Comments.GetByID(ctx, commentID); err != nil {
		return false, notFound(err, apperror.CommentNotFound, "commentId", commentID)
	}
	return s.Comments.ToggleLike(ctx, memberID, commentID)
}

func (s *CommentService) ToggleDislike(ctx context.Context, memberID, commentID int64) (bool, error) {
	if _, err := s.Comments.GetByID(ctx, commentID); err != nil {
		return false, notFound(err, apperror.CommentNotFound, "commentId", commentID)
	}
	return s.Comments.ToggleDislike(ctx, memberID, commentID)
}

func (s *CommentService) writerComment(ctx context.Context, memberID, commentID int64) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err, apperror.CommentNotFound, "commentId", commentID)
	}
	if !c.IsWriter(memberID) {
		return nil, apperror.New(commentID, "commentId", apperror.CommentNotWriter)
	}
	return c, nil
}
