package app

import (
	"testing"

	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/user"
	"github.com/Tillayevxusniddin/JDUCoworking/internal/domain/workspace"
)

func TestResolveRole(t *testing.T) {
	cases := []struct {
		name     string
		userType user.Type
		level    user.LevelStatus
		want     workspace.Role
	}{
		{"admin", user.TypeAdmin, "", workspace.RoleAdmin},
		{"staff", user.TypeStaff, "", workspace.RoleStaff},
		{"recruiter", user.TypeRecruiter, "", workspace.RoleRecruiter},
		{"simple student", user.TypeStudent, user.LevelSimple, workspace.RoleStudent},
		{"team lead student", user.TypeStudent, user.LevelTeamLead, workspace.RoleTeamLeader},
		{"student without level", user.TypeStudent, "", workspace.RoleStudent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveRole(tc.userType, tc.level); got != tc.want {
				t.Fatalf("ResolveRole(%s, %s) = %s, want %s", tc.userType, tc.level, got, tc.want)
			}
		})
	}
}
