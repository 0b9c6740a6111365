package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gotrek/gotrek/internal/api/middleware"
	"github.com/gotrek/gotrek/internal/core/domain"
)

type DashboardHandler struct {
	now func() time.Time
}

// NewDashboardHandler returns a handler that stamps "member since" with now.
// A nil now uses time.Now.
func NewDashboardHandler(now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{now: now}
}

type dashboardStats struct {
	TrailsCompleted int `json:"trails_completed"`
	GroupsJoined    int `json:"groups_joined"`
	Achievements    int `json:"achievements"`
}

type featureCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type profileBlock struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	MemberSince string `json:"member_since"`
}

type dashboardResponse struct {
	Welcome  string         `json:"welcome"`
	Stats    dashboardStats `json:"stats"`
	Features []featureCard  `json:"features"`
	Profile  profileBlock   `json:"profile"`
}

var features = []featureCard{
	{Title: "Discover Trails", Description: "Browse and filter trails by difficulty, duration, and location", Action: "Explore Trails"},
	{Title: "Join Groups", Description: "Connect with other hikers and join adventure groups", Action: "Find Groups"},
	{Title: "Plan Your Trek", Description: "AI-powered checklists and recommendations for your trek", Action: "Start Planning"},
	{Title: "Community Chat", Description: "Stay connected with your group during your adventure", Action: "Open Chat"},
}

// Get renders the placeholder dashboard for the signed-in user.
//
// @Summary      Dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		return domain.ErrNotAuthenticated
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Welcome:  "Welcome back, " + user.Name + "! Ready for your next adventure?",
		Stats:    dashboardStats{},
		Features: features,
		Profile: profileBlock{
			Name:  user.Name,
			Email: user.Email,
			// not persisted; the profile block shows the current date
			MemberSince: h.now().Format("2006-01-02"),
		},
	})
}
