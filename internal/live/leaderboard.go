package live

import (
	"sort"

	"classquiz/internal/domain"
)

// pointsPerAnswer is the flat per-answer score. Correctness-weighted scoring
// is evaluated elsewhere; the live leaderboard only measures participation.
const pointsPerAnswer = 10

// Leaderboard derives the ranked scoreboard from the session's answer log.
// Only users who submitted at least one answer appear; participants with zero
// answers are intentionally absent. Order is score descending, ties kept in
// first-submission order (stable sort over answerOrder).
func Leaderboard(s *Session) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(s.answerOrder))
	for _, userID := range s.answerOrder {
		count := len(s.answers[userID])
		entries = append(entries, domain.LeaderboardEntry{
			UserID:       userID,
			DisplayName:  s.displayNameOf(userID),
			Score:        count * pointsPerAnswer,
			AnswersCount: count,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
