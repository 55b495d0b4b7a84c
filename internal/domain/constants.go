package domain

const RoleAdmin = "ADMIN"

// Request statuses shared by contact, application and transfer requests.
const (
	RequestStatusNew        = "new"
	RequestStatusProcessing = "processing"
	RequestStatusCompleted  = "completed"
	RequestStatusCanceled   = "canceled"
)

var RequestStatuses = []string{
	RequestStatusNew,
	RequestStatusProcessing,
	RequestStatusCompleted,
	RequestStatusCanceled,
}

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

var ReviewStatuses = []string{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected}

const (
	VehicleClassEconomy  = "economy"
	VehicleClassComfort  = "comfort"
	VehicleClassBusiness = "business"
	VehicleClassMinivan  = "minivan"
	VehicleClassMinibus  = "minibus"
)

var VehicleClasses = []string{
	VehicleClassEconomy,
	VehicleClassComfort,
	VehicleClassBusiness,
	VehicleClassMinivan,
	VehicleClassMinibus,
}

// Realtime event types pushed to admin sessions.
const (
	EventContactRequestCreated     = "contact_request.created"
	EventApplicationRequestCreated = "application_request.created"
	EventTransferRequestCreated    = "transfer_request.created"
	EventReviewSubmitted           = "review.submitted"
)

// Well-known site setting keys.
const (
	SettingCompanyName       = "company_name"
	SettingPhone             = "phone"
	SettingEmail             = "email"
	SettingAddress           = "address"
	SettingWhatsApp          = "whatsapp"
	SettingTelegram          = "telegram"
	SettingWorkingHours      = "working_hours"
	SettingMapsAPIKey        = "maps_api_key"
	SettingLogoURL           = "logo_url"
	SettingNotificationEmail = "notification_email"
)

func IsRequestStatus(s string) bool { return contains(RequestStatuses, s) }
func IsReviewStatus(s string) bool  { return contains(ReviewStatuses, s) }
func IsVehicleClass(s string) bool  { return contains(VehicleClasses, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
