package model

// Settings is the single system-settings document behind GET/PUT /settings.
type Settings struct {
	CompanyName   string `json:"companyName"`
	Email         string `json:"email"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
	Theme         string `json:"theme"`
}

// Statistics is derived on every load by fetching managers+employees and
// counting by isActive; it is never persisted or cached. Pending and
// Blocked both count inactive users, matching the overview screen.
type Statistics struct {
	Total   int `json:"totalEmployees"`
	Active  int `json:"activeEmployees"`
	Pending int `json:"pendingEmployees"`
	Blocked int `json:"blockedEmployees"`
}
