package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "likebot-api/internal/pkg/errors"
)

// LikeResult is what the third-party like service reports for a
// successful request.
type LikeResult struct {
	Nickname    string `json:"nickname"`
	UID         string `json:"uid"`
	Region      string `json:"region"`
	LikesBefore int    `json:"likes_before"`
	LikesAfter  int    `json:"likes_after"`
	LikesAdded  int    `json:"likes_added"`
}

// LikeService talks to the third-party like-granting API. The core never
// consumes more than a success/failure signal from it: the caller
// Confirms quota only when SendLikes returns without error.
type LikeService interface {
	SendLikes(ctx context.Context, uid, region string) (*LikeResult, error)
}

type likeService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewLikeService(baseURL, apiKey string, timeout time.Duration) LikeService {
	return &likeService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type likeAPIResponse struct {
	Status int `json:"status"`
	Player struct {
		Nickname string `json:"nickname"`
		UID      string `json:"uid"`
		Region   string `json:"region"`
	} `json:"player"`
	Likes struct {
		Before     int `json:"before"`
		After      int `json:"after"`
		AddedByAPI int `json:"added_by_api"`
	} `json:"likes"`
}

func (s *likeService) SendLikes(ctx context.Context, uid, region string) (*LikeResult, error) {
	query := url.Values{}
	query.Set("uid", uid)
	query.Set("region", region)
	query.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLikeAPIFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrLikeAPIFailed, resp.StatusCode)
	}

	var payload likeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLikeAPIFailed, err)
	}

	// The upstream answers 200 with zero likes added once a UID has hit
	// its own daily cap.
	if payload.Likes.AddedByAPI == 0 {
		return nil, apperrors.ErrMaxLikes
	}

	return &LikeResult{
		Nickname:    payload.Player.Nickname,
		UID:         payload.Player.UID,
		Region:      payload.Player.Region,
		LikesBefore: payload.Likes.Before,
		LikesAfter:  payload.Likes.After,
		LikesAdded:  payload.Likes.AddedByAPI,
	}, nil
}
