package tastebuds

import (
	"context"
	"net/url"
	"strconv"
)

// Challenges lists challenges split into active and completed, each with the
// user's progress.
func (c *Client) Challenges(ctx context.Context) (*ChallengeListResponse, error) {
	var out ChallengeListResponse
	if err := c.get(ctx, "challenges", "/gamification/challenges", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JoinChallenge enrolls the current user in a challenge.
func (c *Client) JoinChallenge(ctx context.Context, challengeID string) (*JoinChallengeResponse, error) {
	var out JoinChallengeResponse
	if err := c.post(ctx, "join_challenge", "/gamification/challenges/"+url.PathEscape(challengeID)+"/join", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateChallengeProgress increments progress on a joined challenge. An
// increment below 1 is sent as 1, matching the backend minimum.
func (c *Client) UpdateChallengeProgress(ctx context.Context, challengeID string, increment int) (*ChallengeProgressResponse, error) {
	if increment < 1 {
		increment = 1
	}
	query := url.Values{"increment": {strconv.Itoa(increment)}}
	var out ChallengeProgressResponse
	if err := c.post(ctx, "challenge_progress", "/gamification/challenges/"+url.PathEscape(challengeID)+"/progress", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leaderboard returns rankings for one board. An empty board type defaults
// to the adventure board.
func (c *Client) Leaderboard(ctx context.Context, boardType BoardType) (*LeaderboardResponse, error) {
	if boardType == "" {
		boardType = BoardAdventure
	}
	query := url.Values{"board_type": {string(boardType)}}
	var out LeaderboardResponse
	if err := c.get(ctx, "leaderboard", "/gamification/leaderboard", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Achievements lists achievements the user has earned. Locked achievements
// are not backend data.
func (c *Client) Achievements(ctx context.Context) (*AchievementsResponse, error) {
	var out AchievementsResponse
	if err := c.get(ctx, "achievements", "/gamification/achievements", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
