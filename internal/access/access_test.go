package access

import "testing"

func TestCan_UserCapabilities(t *testing.T) {
	if !Can(RoleUser, OpScheduleCreate) {
		t.Error("user should create schedules")
	}
	if !Can(RoleUser, OpScheduleRead) {
		t.Error("user should read schedules")
	}
	denied := []Operation{
		OpScheduleApprove, OpScheduleCancelAny, OpScheduleDeleteAny,
		OpAccountApprove, OpAccountReset, OpAccountAssignRole,
		OpAccountDelete, OpRefDataManage,
	}
	for _, op := range denied {
		if Can(RoleUser, op) {
			t.Errorf("user must not hold %s", op)
		}
	}
}

func TestCan_ManagerCapabilities(t *testing.T) {
	allowed := []Operation{
		OpScheduleCreate, OpScheduleRead, OpScheduleApprove,
		OpScheduleCancelAny, OpScheduleDeleteAny,
		OpAccountApprove, OpAccountReset, OpRefDataManage,
	}
	for _, op := range allowed {
		if !Can(RoleManager, op) {
			t.Errorf("manager should hold %s", op)
		}
	}
	if Can(RoleManager, OpAccountAssignRole) {
		t.Error("manager must not assign roles")
	}
	if Can(RoleManager, OpAccountDelete) {
		t.Error("manager must not delete accounts")
	}
}

func TestCan_AdminHoldsEverything(t *testing.T) {
	all := []Operation{
		OpScheduleCreate, OpScheduleRead, OpScheduleApprove,
		OpScheduleCancelAny, OpScheduleDeleteAny,
		OpAccountApprove, OpAccountReset, OpAccountAssignRole,
		OpAccountDelete, OpRefDataManage,
	}
	for _, op := range all {
		if !Can(RoleAdmin, op) {
			t.Errorf("admin should hold %s", op)
		}
	}
}

func TestCan_UnknownRoleFailsClosed(t *testing.T) {
	for _, role := range []Role{"", "superuser", "ADMIN", "root"} {
		if Can(role, OpScheduleRead) {
			t.Errorf("unknown role %q must have no capabilities", role)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleManager, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("owner").Valid() {
		t.Error("owner is not a known role")
	}
}
