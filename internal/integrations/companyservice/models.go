package companyservice

// Company модель компании из CompanyService
type Company struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Timezone    string  `json:"timezone"`
	ManagerIDs  []int64 `json:"manager_ids"`
	EmployeeIDs []int64 `json:"employee_ids"`
}

// Service модель услуги из CompanyService
type Service struct {
	ID        int64    `json:"id"`
	CompanyID int64    `json:"company_id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"` // grooming, walking, veterinary, training, boarding
	Price     *float64 `json:"price,omitempty"`
	IsActive  bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от CompanyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
