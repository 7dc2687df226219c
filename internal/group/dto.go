package group

import "github.com/hruskam/roomledger/internal/ledger"

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateGroupRequest represents the request to rename a group
type UpdateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddMemberRequest represents the request to add a member to a group
type AddMemberRequest struct {
	UserID  int64 `json:"user_id" validate:"required"`
	IsAdmin bool  `json:"is_admin"`
}

// MemberBalance is a member's derived net position within the group
type MemberBalance struct {
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	CreatedAt string            `json:"created_at"`
	Members   []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents the response for a group member
type MemberResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
	JoinedAt string `json:"joined_at"`
}

// ToResponse converts a ledger.Group to a GroupResponse DTO
func ToResponse(g *ledger.Group) *GroupResponse {
	resp := &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for _, m := range g.Members {
		resp.Members = append(resp.Members, ToMemberResponse(m))
	}
	return resp
}

// ToMemberResponse converts a ledger.Membership to a MemberResponse DTO
func ToMemberResponse(m *ledger.Membership) *MemberResponse {
	return &MemberResponse{
		UserID:   m.UserID,
		Username: m.Username,
		IsAdmin:  m.IsAdmin,
		JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
