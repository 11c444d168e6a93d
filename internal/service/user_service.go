package service

import (
	"context"
	"sort"
)

type UserService struct {
	Users      UserStore
	Challenges ChallengeStore
}

func NewUserService(users UserStore, challenges ChallengeStore) *UserService {
	return &UserService{Users: users, Challenges: challenges}
}

type ProfileResponse struct {
	ID              uint     `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	ProfilePicture  string   `json:"profilePicture"`
	Score           int      `json:"score"`
	SolvedCount     int      `json:"solvedCount"`
	SolvedIDs       []string `json:"solvedChallenges"`
	SavedChallenges []string `json:"savedChallenges"`
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	solved, err := s.Users.SolvedChallengeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	saved, err := s.Users.SavedChallengeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	solvedIDs := make([]string, 0, len(solved))
	for id := range solved {
		solvedIDs = append(solvedIDs, id)
	}
	sort.Strings(solvedIDs)

	return &ProfileResponse{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		ProfilePicture:  user.Avatar,
		Score:           user.Score,
		SolvedCount:     len(solved),
		SolvedIDs:       solvedIDs,
		SavedChallenges: saved,
	}, nil
}

// ToggleSaved 收藏/取消收藏，返回当前收藏列表
func (s *UserService) ToggleSaved(ctx context.Context, userID uint, challengeID string) ([]string, error) {
	if _, err := s.Challenges.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}
	if _, err := s.Users.ToggleSaved(ctx, userID, challengeID); err != nil {
		return nil, err
	}
	return s.Users.SavedChallengeIDs(ctx, userID)
}
