package model

import (
	"database/sql"
	"testing"
	"time"
)

func TestLockState_NoLock(t *testing.T) {
	u := &AdminUser{}
	state := u.LockState(time.Now())
	if state.Locked {
		t.Fatal("account with no locked_until reported as locked")
	}
}

func TestLockState_Boundary(t *testing.T) {
	until := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := &AdminUser{LockedUntil: sql.NullTime{Time: until, Valid: true}}

	// One second before expiry the account is still locked.
	state := u.LockState(until.Add(-time.Second))
	if !state.Locked {
		t.Fatal("account reported unlocked one second before expiry")
	}
	if !state.Until.Equal(until) {
		t.Fatalf("Until = %v, want %v", state.Until, until)
	}

	// One second after expiry the account is unlocked.
	state = u.LockState(until.Add(time.Second))
	if state.Locked {
		t.Fatal("account reported locked one second after expiry")
	}

	// Exactly at expiry the lock no longer applies.
	state = u.LockState(until)
	if state.Locked {
		t.Fatal("account reported locked exactly at expiry")
	}
}

func TestRoleSet_Contains(t *testing.T) {
	set := NewRoleSet(RoleSuperAdmin, RoleAdmin)
	if !set.Contains(RoleAdmin) {
		t.Error("RoleSet should contain admin")
	}
	if !set.Contains(RoleSuperAdmin) {
		t.Error("RoleSet should contain super_admin")
	}
	if set.Contains(RoleEditor) {
		t.Error("RoleSet should not contain editor")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{"super_admin", "admin", "editor"} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false, want true", r)
		}
	}
	for _, r := range []string{"", "root", "viewer", "Admin"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true, want false", r)
		}
	}
}
