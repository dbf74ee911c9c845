package visit

// VisitorProfile is the intake form shared by staff and self registration.
type VisitorProfile struct {
	DocumentType   string `json:"documentType" binding:"required,max=40"`
	DocumentNumber string `json:"documentNumber" binding:"required,docnumber"`
	FirstNames     string `json:"firstNames" binding:"required,person_name"`
	LastNames      string `json:"lastNames" binding:"required,person_name"`
	BirthDate      string `json:"birthDate" binding:"required,isodate,pastdate"`
	Gender         string `json:"gender" binding:"required,max=40"`
	BloodType      string `json:"bloodType" binding:"required,max=10"`
	Phone          string `json:"phone" binding:"required,phone"`

	Purpose   string `json:"purpose" binding:"required,min=3,max=500"`
	Category  string `json:"category" binding:"omitempty,max=100"`
	VisitType string `json:"visitType" binding:"required,max=60"`
	BranchID  string `json:"branchId" binding:"required,uuid"`

	OriginCompany string `json:"originCompany" binding:"omitempty,max=150"`
	BadgeNumber   string `json:"badgeNumber" binding:"omitempty,max=30"`
	VehiclePlate  string `json:"vehiclePlate" binding:"omitempty,plate"`

	EPS string `json:"eps" binding:"required,max=100"`
	ARL string `json:"arl" binding:"required,max=100"`

	EmergencyContactName    string `json:"emergencyContactName" binding:"required,person_name"`
	EmergencyContactPhone   string `json:"emergencyContactPhone" binding:"required,phone"`
	EmergencyContactKinship string `json:"emergencyContactKinship" binding:"required,max=40"`

	PhotoPath string `json:"photoPath" binding:"omitempty,max=255"`
}

type RegisterVisitRequest struct {
	VisitorProfile
	HostID string `json:"hostId" binding:"required,uuid"`
}

type SelfRegisterVisitRequest struct {
	VisitorProfile
}

type ApproveVisitRequest struct {
	HostID string `json:"hostId" binding:"required,uuid"`
}

// ListQuery carries the raw filters of GET /visits. Dates use YYYY-MM-DD.
type ListQuery struct {
	Estado string
	Search string
	From   string
	To     string
}

type VisitResponse struct {
	ID                      string  `json:"id"`
	DocumentType            string  `json:"documentType"`
	DocumentNumber          string  `json:"documentNumber"`
	FirstNames              string  `json:"firstNames"`
	LastNames               string  `json:"lastNames"`
	BirthDate               string  `json:"birthDate"`
	Gender                  string  `json:"gender"`
	BloodType               string  `json:"bloodType"`
	Phone                   string  `json:"phone"`
	Purpose                 string  `json:"purpose"`
	Category                string  `json:"category"`
	VisitType               string  `json:"visitType"`
	HostID                  *string `json:"hostId"`
	BranchID                string  `json:"branchId"`
	OriginCompany           *string `json:"originCompany,omitempty"`
	BadgeNumber             *string `json:"badgeNumber,omitempty"`
	VehiclePlate            *string `json:"vehiclePlate,omitempty"`
	EPS                     string  `json:"eps"`
	ARL                     string  `json:"arl"`
	EmergencyContactName    string  `json:"emergencyContactName"`
	EmergencyContactPhone   string  `json:"emergencyContactPhone"`
	EmergencyContactKinship string  `json:"emergencyContactKinship"`
	PhotoPath               *string `json:"photoPath,omitempty"`
	Estado                  string  `json:"estado"`
	EntryTime               string  `json:"entryTime"`
	ExitTime                *string `json:"exitTime"`
	RequestDate             string  `json:"requestDate"`
}
