package app

import (
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

// ResolveRole maps a user's global type to the workspace role every
// membership of that user must carry. ADMIN, STAFF and RECRUITER map
// one-to-one; students are TEAMLEADER while their level flag says so,
// STUDENT otherwise. Membership rows never hold a role a caller chose
// directly.
func ResolveRole(userType user.Type, level user.LevelStatus) workspace.Role {
	switch userType {
	case user.TypeAdmin:
		return workspace.RoleAdmin
	case user.TypeStaff:
		return workspace.RoleStaff
	case user.TypeRecruiter:
		return workspace.RoleRecruiter
	default:
		if level == user.LevelTeamLead {
			return workspace.RoleTeamLeader
		}
		return workspace.RoleStudent
	}
}
