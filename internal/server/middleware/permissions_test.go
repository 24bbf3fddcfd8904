package middleware

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name string
		user *AppUser
		perm string
		want bool
	}{
		{"nil user", nil, PermissionAnalyze, false},
		{"admin", &AppUser{Role: "admin"}, PermissionEnqueue, true},
		{"granted", &AppUser{Role: "user", Permissions: defaultPermissions}, PermissionSessions, true},
		{"missing", &AppUser{Role: "user", Permissions: defaultPermissions}, PermissionEnqueue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.user, tt.perm); got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}
