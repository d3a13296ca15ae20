package domain

import "strings"

const (
	LandingPath = "/"
	LoginPath   = "/login"
)

// View is one navigable page of the portal.
type View struct {
	Path string
	// TitleKey is a translation key; Title is used when no key exists.
	TitleKey    string
	Title       string
	Description string
	// RequiredRole is the role the view belongs to. Empty for public views.
	RequiredRole Role
	Public       bool
}

var Views = []View{
	{Path: LandingPath, Title: "Rural Health Connect", TitleKey: "patient.welcomeMessage", Public: true},
	{Path: LoginPath, TitleKey: "common.login", Public: true},
	{Path: "/login/patient", Title: "Patient Login", Public: true},
	{Path: "/login/doctor", Title: "Doctor Login", Public: true},
	{Path: "/login/pharmacy", Title: "Pharmacy Login", Public: true},
	{Path: "/login/admin", Title: "Admin Login", Public: true},

	{Path: "/patient", TitleKey: "common.dashboard", RequiredRole: RolePatient},
	{Path: "/patient/book", TitleKey: "patient.bookConsultation", RequiredRole: RolePatient},
	{Path: "/patient/records", Title: "Health Records", Description: "View your medical history and reports here", RequiredRole: RolePatient},
	{Path: "/patient/symptoms", Title: "Symptom Checker", Description: "AI-powered symptom assessment coming soon", RequiredRole: RolePatient},
	{Path: "/patient/profile", Title: "Patient Profile", Description: "Manage your profile information", RequiredRole: RolePatient},

	{Path: "/doctor", TitleKey: "common.dashboard", RequiredRole: RoleDoctor},
	{Path: "/doctor/patients", Title: "Patient List", Description: "View and manage your patients", RequiredRole: RoleDoctor},
	{Path: "/doctor/consultations", Title: "Consultations", Description: "Manage your consultation sessions", RequiredRole: RoleDoctor},
	{Path: "/doctor/prescriptions", Title: "Prescriptions", Description: "View and manage prescriptions", RequiredRole: RoleDoctor},
	{Path: "/doctor/profile", Title: "Doctor Profile", Description: "Manage your profile and availability", RequiredRole: RoleDoctor},

	{Path: "/pharmacy", TitleKey: "common.dashboard", RequiredRole: RolePharmacy},
	{Path: "/pharmacy/stock", Title: "Stock Management", Description: "Manage medicine inventory and pricing", RequiredRole: RolePharmacy},
	{Path: "/pharmacy/orders", Title: "Prescription Orders", Description: "Process and fulfill prescription orders", RequiredRole: RolePharmacy},
	{Path: "/pharmacy/profile", Title: "Pharmacy Profile", Description: "Manage pharmacy information and settings", RequiredRole: RolePharmacy},

	{Path: "/admin", TitleKey: "common.dashboard", RequiredRole: RoleAdmin},
	{Path: "/admin/users", Title: "User Management", Description: "Manage patients, doctors, and pharmacy accounts", RequiredRole: RoleAdmin},
	{Path: "/admin/appointments", Title: "Appointment Management", Description: "Monitor and manage all appointments", RequiredRole: RoleAdmin},
	{Path: "/admin/analytics", Title: "Advanced Analytics", Description: "Detailed reports and insights", RequiredRole: RoleAdmin},
	{Path: "/admin/settings", Title: "System Settings", Description: "Configure system parameters and preferences", RequiredRole: RoleAdmin},
}

// LookupView finds the view registered for path. A trailing slash is
// ignored except on the landing page.
func LookupView(path string) (View, bool) {
	normalized := NormalizePath(path)
	for _, view := range Views {
		if view.Path == normalized {
			return view, true
		}
	}

	return View{}, false
}

func NormalizePath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return LandingPath
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
		if trimmed == "" {
			return LandingPath
		}
	}

	return trimmed
}

// HomePath is the dashboard a role lands on after login.
func HomePath(role Role) string {
	return "/" + string(role)
}

// LoginPathFor is the role-specific login entry point.
func LoginPathFor(role Role) string {
	return LoginPath + "/" + string(role)
}

type MenuItem struct {
	LabelKey string
	Label    string
	Path     string
}

// MenuFor returns the sidebar entries shown to role.
func MenuFor(role Role) []MenuItem {
	switch role {
	case RolePatient:
		return []MenuItem{
			{LabelKey: "common.dashboard", Path: "/patient"},
			{LabelKey: "patient.bookConsultation", Path: "/patient/book"},
			{LabelKey: "patient.healthRecords", Path: "/patient/records"},
			{LabelKey: "patient.symptomChecker", Path: "/patient/symptoms"},
			{LabelKey: "common.profile", Path: "/patient/profile"},
		}
	case RoleDoctor:
		return []MenuItem{
			{LabelKey: "common.dashboard", Path: "/doctor"},
			{LabelKey: "doctor.patientList", Path: "/doctor/patients"},
			{LabelKey: "doctor.consultations", Path: "/doctor/consultations"},
			{LabelKey: "doctor.prescriptions", Path: "/doctor/prescriptions"},
			{LabelKey: "common.profile", Path: "/doctor/profile"},
		}
	case RolePharmacy:
		return []MenuItem{
			{LabelKey: "common.dashboard", Path: "/pharmacy"},
			{LabelKey: "pharmacy.stockManagement", Path: "/pharmacy/stock"},
			{LabelKey: "pharmacy.prescriptionOrders", Path: "/pharmacy/orders"},
			{LabelKey: "common.profile", Path: "/pharmacy/profile"},
		}
	case RoleAdmin:
		return []MenuItem{
			{LabelKey: "common.dashboard", Path: "/admin"},
			{LabelKey: "admin.userManagement", Path: "/admin/users"},
			{LabelKey: "admin.appointmentManagement", Path: "/admin/appointments"},
			{LabelKey: "admin.analytics", Path: "/admin/analytics"},
			{Label: "Settings", Path: "/admin/settings"},
		}
	default:
		return nil
	}
}
