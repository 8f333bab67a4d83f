package storage

import (
	"context"
	"errors"
	"time"

	"github.com/treehollow/socialite/pkg/internal/models"
)

// ErrNotFound is returned by every lookup whose subject does not exist.
// Implementations translate their backend's own miss (for example
// gorm.ErrRecordNotFound) into this sentinel.
var ErrNotFound = errors.New("record not found")

// PostQuery narrows ListPosts / CountPosts. Viewer and FriendIDs feed the
// visibility predicate: public posts always match, friends-only posts match
// when the author is the viewer or in FriendIDs, only-me posts match for
// the author alone. A nil Viewer matches public posts only. Soft-deleted
// posts never match.
type PostQuery struct {
	Viewer    *uint
	FriendIDs []uint
	AuthorID  *uint
	Take      int
	Offset    int
}

// Store is the persistence boundary of the engine. Every method that the
// contract calls atomic must be all-or-nothing inside one implementation
// specific transaction scope.
type Store interface {
	// Accounts
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, id uint) (models.Account, error)
	GetAccountByName(ctx context.Context, name string) (models.Account, error)
	SaveAccount(ctx context.Context, account *models.Account) error
	// ListAccountsSample returns up to limit accounts drawn uniformly from
	// the pool excluding the given ids.
	ListAccountsSample(ctx context.Context, exclude []uint, limit int) ([]models.Account, error)

	// Posts
	CreatePost(ctx context.Context, post *models.Post) error
	// GetPost excludes soft-deleted rows.
	GetPost(ctx context.Context, id uint) (models.Post, error)
	SavePost(ctx context.Context, post *models.Post) error
	SoftDeletePost(ctx context.Context, id uint) error
	ListPosts(ctx context.Context, q PostQuery) ([]*models.Post, error)
	CountPosts(ctx context.Context, q PostQuery) (int64, error)
	CountPostComments(ctx context.Context, postID uint) (int64, error)
	// BatchPostCommentCounts and friends aggregate metrics for one feed page
	// in a single pass.
	BatchPostCommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	BatchPostReactionTallies(ctx context.Context, postIDs []uint) (map[uint]map[models.ReactionSymbol]int64, error)
	BatchViewerPostReactions(ctx context.Context, viewer uint, postIDs []uint) (map[uint]models.ReactionSymbol, error)

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	// GetComment returns soft-deleted rows too; callers decide whether a
	// deleted comment is addressable for their operation.
	GetComment(ctx context.Context, id uint) (models.Comment, error)
	SaveComment(ctx context.Context, comment *models.Comment) error
	SoftDeleteComment(ctx context.Context, id uint) error
	// ListCommentsByPost returns the whole forest of a post, deleted rows
	// included, ordered by (created_at, id).
	ListCommentsByPost(ctx context.Context, postID uint) ([]*models.Comment, error)

	// Reactions
	GetReaction(ctx context.Context, accountID uint, target models.Target) (models.ReactionSymbol, error)
	UpsertReaction(ctx context.Context, accountID uint, target models.Target, symbol models.ReactionSymbol) error
	DeleteReaction(ctx context.Context, accountID uint, target models.Target) error
	ReactionTally(ctx context.Context, target models.Target) (int64, map[models.ReactionSymbol]int64, error)

	// Friend graph
	GetFriendRequest(ctx context.Context, id uint) (models.FriendRequest, error)
	// GetFriendRequestBetween matches either direction; returns nil when no
	// row exists.
	GetFriendRequestBetween(ctx context.Context, a, b uint) (*models.FriendRequest, error)
	CreateFriendRequest(ctx context.Context, request *models.FriendRequest) error
	SaveFriendRequest(ctx context.Context, request *models.FriendRequest) error
	DeleteFriendRequest(ctx context.Context, id uint) error
	// AcceptFriendRequest flips the row to accepted and creates both
	// friendship edges in one atomic step.
	AcceptFriendRequest(ctx context.Context, request *models.FriendRequest) error
	// Unfriend removes both edges and the accepted request row atomically,
	// resetting the pair to a blank slate.
	Unfriend(ctx context.Context, a, b uint) error
	HasFriendship(ctx context.Context, a, b uint) (bool, error)
	ListFriendIDs(ctx context.Context, accountID uint) ([]uint, error)
	ListFriendIDsOfMany(ctx context.Context, accountIDs []uint) (map[uint][]uint, error)
	ListFriends(ctx context.Context, accountID uint) ([]models.Account, error)
	ListPendingRequests(ctx context.Context, accountID uint) ([]models.FriendRequest, error)
	// ListPendingInvolving returns pending rows where the account is either
	// side, for the suggestion exclusion set.
	ListPendingInvolving(ctx context.Context, accountID uint) ([]models.FriendRequest, error)

	// Notifications
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, accountID uint, take, offset int) ([]models.Notification, int64, error)
	MarkNotificationsRead(ctx context.Context, accountID uint, ids []uint) error

	// Maintenance
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) error
	PurgeReadNotificationsBefore(ctx context.Context, cutoff time.Time) error
}
