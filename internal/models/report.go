package models

const (
	ReportStatusPending = "pending"
	// ReportStatusAproved сохраняет написание, которое использует сервер.
	ReportStatusAproved  = "aproved"
	ReportStatusRejected = "rejected"

	CategorySecurity       = "Security"
	CategoryInfrastructure = "Infrastructure"
	CategoryServices       = "Services"
	CategoryBehavior       = "Behavior"
	CategoryOther          = "Other"
)

// Categories — закрытый набор категорий, из которых выбирает пользователь.
var Categories = []string{
	CategorySecurity,
	CategoryInfrastructure,
	CategoryServices,
	CategoryBehavior,
	CategoryOther,
}

// IsValidCategory проверяет принадлежность категории закрытому набору.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidStatus проверяет статус в том виде, в каком его хранит сервер.
func IsValidStatus(status string) bool {
	switch status {
	case ReportStatusPending, ReportStatusAproved, ReportStatusRejected:
		return true
	}
	return false
}

// Report — запись о происшествии. Авторитетная копия живёт на сервере,
// клиент держит только проекцию для отображения; статус никогда не
// вычисляется локально.
type Report struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}
