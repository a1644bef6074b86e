package constants

import "fmt"

// Role adalah enum tertutup untuk role user CEMS.
// Semua pengecekan role WAJIB lewat ParseRole supaya typo tidak lolos diam-diam.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole memvalidasi string role dari luar (body request / klaim JWT).
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleStudent,
		RoleOrganizer,
		RoleAdmin,
	}

	OrganizerAndAdmin = []Role{
		RoleOrganizer,
		RoleAdmin,
	}

	StudentOnly = []Role{
		RoleStudent,
	}

	AdminOnly = []Role{
		RoleAdmin,
	}
)

// Template pesan error role (selaras dengan response backend lama)
const (
	ErrAdminRequired            = "Admin privilege required."
	ErrStudentRequired          = "Student privilege required."
	ErrOrganizerOrAdminRequired = "Organizer or Admin privilege required."
)
