package service

import (
	"context"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context, int, int) ([]*models.Post, error)
	deleteFn        func(context.Context, uint) error
	likeFn          func(context.Context, uint, uint) error
	unlikeFn        func(context.Context, uint, uint) error
	addCommentFn    func(context.Context, *models.Comment) error
	getCommentFn    func(context.Context, uint, uint) (*models.Comment, error)
	deleteCommentFn func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *postRepoStub) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	return s.getCommentFn(ctx, postID, commentID)
}
func (s *postRepoStub) DeleteComment(ctx context.Context, postID, commentID uint) error {
	return s.deleteCommentFn(ctx, postID, commentID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id, UserID: 1}, nil },
		listFn:          func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		likeFn:          func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:        func(_ context.Context, _, _ uint) error { return nil },
		addCommentFn:    func(_ context.Context, _ *models.Comment) error { return nil },
		getCommentFn:    func(_ context.Context, _, _ uint) (*models.Comment, error) { return &models.Comment{ID: 1, UserID: 1}, nil },
		deleteCommentFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(_ context.Context, _ *models.User) error { return nil }
func (s *userRepoStub) Update(_ context.Context, _ *models.User) error { return nil }
func (s *userRepoStub) Delete(_ context.Context, _ uint) error         { return nil }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "John Doe", Avatar: "https://www.gravatar.com/avatar/abc"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
	}
}

func TestPostService_CreatePost_SnapshotsAuthor(t *testing.T) {
	postRepo := noopPostRepo()
	var created *models.Post
	postRepo.createFn = func(_ context.Context, post *models.Post) error {
		created = post
		return nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	post, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Text: "hello world"})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, "John Doe", post.Name)
	assert.Equal(t, "https://www.gravatar.com/avatar/abc", post.Avatar)
}

func TestPostService_CreatePost_UnknownUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewPostService(noopPostRepo(), userRepo)
	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 99, Text: "hello"})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostService_DeletePost_OnlyAuthor(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}

	svc := NewPostService(postRepo, noopUserRepo())

	t.Run("author may delete", func(t *testing.T) {
		assert.NoError(t, svc.DeletePost(context.Background(), 1, 10))
	})

	t.Run("other users are rejected", func(t *testing.T) {
		err := svc.DeletePost(context.Background(), 2, 10)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		assert.Equal(t, "notauthorized", appErr.Field)
	})
}

func TestPostService_LikePost(t *testing.T) {
	t.Run("missing post", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, models.NewFieldNotFoundError("nopostfound", "No post found with that ID")
		}

		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.LikePost(context.Background(), 1, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("duplicate like", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.likeFn = func(_ context.Context, _, _ uint) error {
			return models.NewConflictError("alreadyliked", "User already liked this post")
		}

		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.LikePost(context.Background(), 1, 10)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "alreadyliked", appErr.Field)
	})

	t.Run("returns refreshed post", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Likes: []models.Like{{UserID: 1, PostID: id}}}, nil
		}

		svc := NewPostService(postRepo, noopUserRepo())
		post, err := svc.LikePost(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Len(t, post.Likes, 1)
	})
}

func TestPostService_AddComment_SnapshotsAuthor(t *testing.T) {
	postRepo := noopPostRepo()
	var created *models.Comment
	postRepo.addCommentFn = func(_ context.Context, comment *models.Comment) error {
		created = comment
		return nil
	}

	svc := NewPostService(postRepo, noopUserRepo())
	_, err := svc.AddComment(context.Background(), CommentInput{UserID: 1, PostID: 10, Text: "nice post"})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "nice post", created.Text)
	assert.Equal(t, "John Doe", created.Name)
	assert.Equal(t, uint(10), created.PostID)
}

func TestPostService_DeleteComment(t *testing.T) {
	t.Run("missing comment", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getCommentFn = func(_ context.Context, _, _ uint) (*models.Comment, error) {
			return nil, models.NewFieldNotFoundError("commentnotexists", "Comment does not exist")
		}

		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.DeleteComment(context.Background(), 1, 10, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "commentnotexists", appErr.Field)
	})

	t.Run("only author may delete", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getCommentFn = func(_ context.Context, _, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, UserID: 1}, nil
		}

		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.DeleteComment(context.Background(), 2, 10, 5)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "notauthorized", appErr.Field)
	})

	t.Run("success", func(t *testing.T) {
		postRepo := noopPostRepo()
		deleted := false
		postRepo.deleteCommentFn = func(_ context.Context, _, _ uint) error {
			deleted = true
			return nil
		}

		svc := NewPostService(postRepo, noopUserRepo())
		_, err := svc.DeleteComment(context.Background(), 1, 10, 5)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}
