package model

// VoteSet 点赞/点踩的用户集合，按加入顺序保存
type VoteSet []uint

func (s VoteSet) Contains(userID uint) bool {
	for _, id := range s {
		if id == userID {
			return true
		}
	}
	return false
}

func (s *VoteSet) remove(userID uint) {
	out := (*s)[:0]
	for _, id := range *s {
		if id != userID {
			out = append(out, id)
		}
	}
	*s = out
}

// ToggleVote 先从对立集合中移除用户，再切换目标集合中的成员关系；
// 结束后用户最多只出现在其中一个集合里
func ToggleVote(likes, dislikes *VoteSet, userID uint, like bool) {
	target, opposite := likes, dislikes
	if !like {
		target, opposite = dislikes, likes
	}

	opposite.remove(userID)

	if target.Contains(userID) {
		target.remove(userID)
		return
	}
	*target = append(*target, userID)
}

// VoteSummary 投票接口的返回结构
type VoteSummary struct {
	Likes    VoteSet `json:"likes"`
	Dislikes VoteSet `json:"dislikes"`
}

func NewVoteSummary(likes, dislikes VoteSet) VoteSummary {
	if likes == nil {
		likes = VoteSet{}
	}
	if dislikes == nil {
		dislikes = VoteSet{}
	}
	return VoteSummary{Likes: likes, Dislikes: dislikes}
}
