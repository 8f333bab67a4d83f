package models

type FriendRequestStatus = string

const (
	FriendRequestPending  = FriendRequestStatus("pending")
	FriendRequestAccepted = FriendRequestStatus("accepted")
	FriendRequestRejected = FriendRequestStatus("rejected")
)

// FriendRequest holds the single logical relationship row between two users.
// A rejected row is recycled when the request is resent, so repeated
// reject/resend cycles never grow the table.
type FriendRequest struct {
	BaseModel

	FromID uint    `json:"from_id" gorm:"index:idx_friend_request_pair"`
	From   Account `json:"from"`
	ToID   uint    `json:"to_id" gorm:"index:idx_friend_request_pair"`
	To     Account `json:"to"`

	Status FriendRequestStatus `json:"status" gorm:"default:'pending'"`
}

// Friendship is one direction of an accepted relationship. Both directions
// are created and deleted atomically; (A,B) without (B,A) is a bug.
type Friendship struct {
	BaseModel

	AccountID uint    `json:"account_id" gorm:"uniqueIndex:idx_friendship_pair"`
	FriendID  uint    `json:"friend_id" gorm:"uniqueIndex:idx_friendship_pair"`
	Friend    Account `json:"friend"`
}

type FriendStatus = string

const (
	FriendStatusSelf            = FriendStatus("self")
	FriendStatusAccepted        = FriendStatus("accepted")
	FriendStatusPendingSent     = FriendStatus("pending_sent")
	FriendStatusPendingReceived = FriendStatus("pending_received")
	FriendStatusNone            = FriendStatus("none")
)

// FriendSuggestion is one ranked candidate from the suggestion ranker.
type FriendSuggestion struct {
	Account     Account `json:"account"`
	MutualCount int64   `json:"mutual_count"`
}
