package dto

// AdminCreateRequest adds a new administrator account (superadmin only).
type AdminCreateRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Name     string `json:"name" form:"name" validate:"required,min=2,max=128"`
	Email    string `json:"email" form:"email" validate:"required,email,max=160"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Role     string `json:"role" form:"role" validate:"required,oneof=admin superadmin"`
}

// AdminUpdateRequest edits an administrator's profile fields.
type AdminUpdateRequest struct {
	Name  string `json:"name" form:"name" validate:"required,min=2,max=128"`
	Email string `json:"email" form:"email" validate:"required,email,max=160"`
	Role  string `json:"role" form:"role" validate:"required,oneof=admin superadmin"`
}

// AdminListResponse wraps a paginated administrator listing.
type AdminListResponse struct {
	Items      []AdminResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
}

// DashboardCounts holds the per-collection totals shown on the admin landing page.
type DashboardCounts struct {
	Classes         int64 `json:"classes"`
	Extracurricular int64 `json:"extracurricular"`
	Articles        int64 `json:"articles"`
	Teachers        int64 `json:"teachers"`
	ActiveAdmins    int64 `json:"active_admins"`
	Materials       int64 `json:"materials"`
	Gallery         int64 `json:"gallery"`
	ContactMessages int64 `json:"contact_messages"`
}

// DashboardResponse bundles the admin landing page data.
type DashboardResponse struct {
	Counts         DashboardCounts          `json:"counts"`
	LatestMessages []ContactMessageResponse `json:"latest_messages"`
	RecentLogs     []AuditLogResponse       `json:"recent_logs"`
}
