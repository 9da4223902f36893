package model

// Roles assigned by the auth lookup, in scan order.
const (
	RolePatient       = "patient"
	RolePhysician     = "physician"
	RoleAssistant     = "assistant"
	RoleAdministrator = "administrator"
)

// AuthMatch is one row of the cascading email lookup, tagged with the table
// it was found in.
type AuthMatch struct {
	Role      string `json:"role"`
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty,omitempty"`
}
