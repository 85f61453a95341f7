package api

import (
	"context"
	"net/http"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var (
	_ domain.FriendsAPI = (*Client)(nil)
	_ domain.WorkoutAPI = (*Client)(nil)
	_ domain.ProfileAPI = (*Client)(nil)
)

func (c *Client) SendFriendRequest(ctx context.Context, userID, receiverID string) error {
	body := map[string]string{"receiver_id": receiverID}
	return c.do(ctx, "send_friend_request", http.MethodPost, userPath(userID, "send-friend-request"), body, nil, "Failed to send friend request")
}

func (c *Client) AcceptFriendRequest(ctx context.Context, userID, senderID string) error {
	body := map[string]string{"sender_id": senderID}
	return c.do(ctx, "accept_friend_request", http.MethodPost, userPath(userID, "accept-friend-request"), body, nil, "Failed to accept friend request")
}

func (c *Client) RejectFriendRequest(ctx context.Context, userID, senderID string) error {
	body := map[string]string{"sender_id": senderID}
	return c.do(ctx, "reject_friend_request", http.MethodPost, userPath(userID, "reject-friend-request"), body, nil, "Failed to reject friend request")
}

func (c *Client) RevokeFriendRequest(ctx context.Context, userID, receiverID string) error {
	body := map[string]string{"receiver_id": receiverID}
	return c.do(ctx, "revoke_friend_request", http.MethodPost, userPath(userID, "revoke-friend-request"), body, nil, "Failed to revoke friend request")
}

func (c *Client) RemoveFriend(ctx context.Context, userID, friendID string) error {
	body := map[string]string{"friend_id": friendID}
	return c.do(ctx, "remove_friend", http.MethodPost, userPath(userID, "remove-friend"), body, nil, "Failed to remove friend")
}

func (c *Client) ListFriends(ctx context.Context, userID string) ([]domain.Friend, error) {
	var resp struct {
		Friends []domain.Friend `json:"friends"`
	}
	if err := c.do(ctx, "list_friends", http.MethodGet, userPath(userID, "friends"), nil, &resp, "Failed to fetch friends"); err != nil {
		return nil, err
	}
	if resp.Friends == nil {
		return []domain.Friend{}, nil
	}
	return resp.Friends, nil
}

func (c *Client) IncomingFriendRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return c.friendRequests(ctx, "incoming_friend_requests", userPath(userID, "friend-requests", "incoming"))
}

func (c *Client) OutgoingFriendRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	return c.friendRequests(ctx, "outgoing_friend_requests", userPath(userID, "friend-requests", "outgoing"))
}

func (c *Client) friendRequests(ctx context.Context, op, path string) ([]domain.FriendRequest, error) {
	var resp struct {
		Requests []domain.FriendRequest `json:"requests"`
	}
	if err := c.do(ctx, op, http.MethodGet, path, nil, &resp, "Failed to fetch friend requests"); err != nil {
		return nil, err
	}
	if resp.Requests == nil {
		return []domain.FriendRequest{}, nil
	}
	return resp.Requests, nil
}

func (c *Client) LogWorkout(ctx context.Context, userID string, w domain.WorkoutLog) error {
	return c.do(ctx, "log_workout", http.MethodPost, userPath(userID, "workouts", "log"), w, nil, "Failed to log workout")
}

func (c *Client) GetUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, "get_user", http.MethodGet, userPath(userID), nil, &profile, "Failed to fetch user"); err != nil {
		return nil, err
	}
	return &profile, nil
}
