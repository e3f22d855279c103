package models

import (
	"testing"

	"bitbucket.org/mmdatafocus/telecom_backend/utils"
)

func TestUserActive(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"explicitly active", User{Username: "alice", IsActive: utils.NewTrue()}, true},
		{"deactivated", User{Username: "bob", IsActive: utils.NewFalse()}, false},
		{"unset defaults to active", User{Username: "carol"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}
