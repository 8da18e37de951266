package core

type EmployeeStatus string

const (
	EmployeeStatusActive    EmployeeStatus = "active"    // 可登入
	EmployeeStatusInactive  EmployeeStatus = "inactive"  // 停用
	EmployeeStatusSuspended EmployeeStatus = "suspended" // 暫停（調查中）
)

var EmployeeStatuses = []EmployeeStatus{
	EmployeeStatusActive,
	EmployeeStatusInactive,
	EmployeeStatusSuspended,
}

func (s EmployeeStatus) Valid() bool {
	for _, v := range EmployeeStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Disabled 對應目錄服務上的帳號停用旗標
func (s EmployeeStatus) Disabled() bool {
	return s == EmployeeStatusInactive || s == EmployeeStatusSuspended
}

// IdentityOrigin 目錄帳號的建立來源
type IdentityOrigin string

const (
	IdentityOriginBatch IdentityOrigin = "batch"
)

const (
	DefaultEmployeeRole   = "employee"
	DefaultEmployeeDomain = "yourcompany.com"
	UsernamePrefix        = "employee"
	EmployeeCodePrefix    = "EMP"
	// 臨時密碼長度
	CredentialLength = 8
)

var DefaultEmployeePermissions = []string{
	"view_products",
	"manage_orders",
	"view_inventory",
}
