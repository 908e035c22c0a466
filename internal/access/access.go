// Package access is the single capability table gating every mutating
// operation. Adding a role or an operation touches this file only.
package access

// Role is an account's permission level.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Operation names a gated capability.
type Operation string

const (
	OpScheduleCreate    Operation = "schedule.create"
	OpScheduleRead      Operation = "schedule.read"
	OpScheduleApprove   Operation = "schedule.approve"
	OpScheduleCancelAny Operation = "schedule.cancel_any"
	OpScheduleDeleteAny Operation = "schedule.delete_any"
	OpAccountApprove    Operation = "account.approve"
	OpAccountReset      Operation = "account.reset"
	OpAccountAssignRole Operation = "account.assign_role"
	OpAccountDelete     Operation = "account.delete"
	OpRefDataManage     Operation = "refdata.manage"
)

var userOps = []Operation{
	OpScheduleCreate,
	OpScheduleRead,
}

var managerOps = append([]Operation{
	OpScheduleApprove,
	OpScheduleCancelAny,
	OpScheduleDeleteAny,
	OpAccountApprove,
	OpAccountReset,
	OpRefDataManage,
}, userOps...)

var adminOps = append([]Operation{
	OpAccountAssignRole,
	OpAccountDelete,
}, managerOps...)

var capabilities = map[Role]map[Operation]bool{
	RoleUser:    opSet(userOps),
	RoleManager: opSet(managerOps),
	RoleAdmin:   opSet(adminOps),
}

func opSet(ops []Operation) map[Operation]bool {
	m := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

// Can reports whether a role may perform an operation. Unrecognized
// roles have no capabilities.
func Can(role Role, op Operation) bool {
	return capabilities[role][op]
}
