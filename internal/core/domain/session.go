package domain

// SessionState is the lifecycle state of the session holder.
type SessionState string

const (
	StateInitializing  SessionState = "initializing"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// Routes the UI navigates to after session transitions.
const (
	RouteLanding   = "/"
	RouteLogin     = "/login"
	RouteSignup    = "/signup"
	RouteDashboard = "/dashboard"
)

// SessionSnapshot is the read-only view handed to presentation code.
type SessionSnapshot struct {
	User      *Session     `json:"user"`
	IsLoading bool         `json:"is_loading"`
	State     SessionState `json:"state"`
}

// CorruptPolicy selects how malformed stored values are treated.
type CorruptPolicy string

const (
	CorruptPolicyError CorruptPolicy = "error"
	CorruptPolicyReset CorruptPolicy = "reset"
)
