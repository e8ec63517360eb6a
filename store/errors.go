package store

// Error carries a machine-readable code alongside the message. Handlers map
// codes to HTTP statuses; user-facing wording is the presentation layer's
// job.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrUnauthenticated is returned by operations that require an acting
	// user when none is present.
	ErrUnauthenticated = &Error{Code: "unauthenticated", Message: "an acting user is required"}

	// ErrTeamReferenced blocks deletion of a team that still owns projects.
	ErrTeamReferenced = &Error{Code: "team_referenced", Message: "team still owns projects"}

	// ErrProjectReferenced blocks deletion of a project that still owns
	// tasks.
	ErrProjectReferenced = &Error{Code: "project_referenced", Message: "project still owns tasks"}

	// ErrUserNotFound is returned when a role change names an unknown
	// provisioning record.
	ErrUserNotFound = &Error{Code: "user_not_found", Message: "user does not exist"}
)
