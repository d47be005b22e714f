package project

// Role is the closed enumeration of participant roles. The import
// pipeline only assigns the two investigation roles; the remainder exist
// for manually curated records.
type Role string

const (
	RolePrincipalInvestigator Role = "principal_investigator"
	RoleCoInvestigator        Role = "co_investigator"
	RoleResearcher            Role = "researcher"
	RoleProjectManager        Role = "project_manager"
	RoleFieldAssistant        Role = "field_assistant"
	RoleDataManager           Role = "data_manager"
	RoleStudent               Role = "student"
	RoleCollaborator          Role = "collaborator"
)

// IsValid checks if the role is a member of the closed set.
func (r Role) IsValid() bool {
	switch r {
	case RolePrincipalInvestigator, RoleCoInvestigator, RoleResearcher,
		RoleProjectManager, RoleFieldAssistant, RoleDataManager,
		RoleStudent, RoleCollaborator:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
