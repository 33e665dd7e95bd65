package dto

import (
	"time"

	"github.com/yourusername/contest-api/internal/domain/entity"
)

// ContestResponse представляет конкурс в ответах API
type ContestResponse struct {
	ID                string    `json:"id"`
	CreatorEmail      string    `json:"creatorEmail"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ContestType       string    `json:"contestType"`
	ImageURL          string    `json:"imageURL"`
	EntryPrice        float64   `json:"entryPrice"`
	PrizeMoney        float64   `json:"prizeMoney"`
	Deadline          time.Time `json:"deadline"`
	Status            string    `json:"status"`
	ParticipantsCount int64     `json:"participantsCount"`
	WinnerID          string    `json:"winnerId,omitempty"`
	WinnerName        string    `json:"winnerName,omitempty"`
	WinnerPhoto       string    `json:"winnerPhoto,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewContestResponse преобразует конкурс в DTO
func NewContestResponse(contest *entity.Contest) *ContestResponse {
	return &ContestResponse{
		ID:                contest.ID,
		CreatorEmail:      contest.CreatorEmail,
		Name:              contest.Name,
		Description:       contest.Description,
		ContestType:       contest.ContestType,
		ImageURL:          contest.ImageURL,
		EntryPrice:        contest.EntryPrice,
		PrizeMoney:        contest.PrizeMoney,
		Deadline:          contest.Deadline,
		Status:            contest.Status,
		ParticipantsCount: contest.ParticipantsCount,
		WinnerID:          contest.WinnerID,
		WinnerName:        contest.WinnerName,
		WinnerPhoto:       contest.WinnerPhoto,
		CreatedAt:         contest.CreatedAt,
	}
}

// NewListContestResponse преобразует список конкурсов в DTO
func NewListContestResponse(contests []entity.Contest) []*ContestResponse {
	out := make([]*ContestResponse, len(contests))
	for i := range contests {
		out[i] = NewContestResponse(&contests[i])
	}
	return out
}
