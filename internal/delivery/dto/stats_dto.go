package dto

// Response DTOs

type GrowthResponse struct {
	UsersGrowth           float64 `json:"users_growth"`
	PatientsGrowth        float64 `json:"patients_growth"`
	DoctorsGrowth         float64 `json:"doctors_growth"`
	AppointmentsGrowth    float64 `json:"appointments_growth"`
	ActiveDoctorsGrowth   float64 `json:"active_doctors_growth"`
	AppointmentRateGrowth float64 `json:"appointment_rate_growth"`
}

type DashboardStatsResponse struct {
	TotalUsers        int64          `json:"total_users"`
	TotalPatients     int64          `json:"total_patients"`
	TotalDoctors      int64          `json:"total_doctors"`
	TotalAppointments int64          `json:"total_appointments"`
	ActiveDoctors     int64          `json:"active_doctors"`
	AppointmentRate   float64        `json:"appointment_rate"`
	Growth            GrowthResponse `json:"growth"`
}

type MonthlyAppointmentsResponse struct {
	Month        string `json:"month"`
	Appointments int64  `json:"appointments"`
}

type PatientStatsResponse struct {
	TotalAppointments          int64  `json:"total_appointments"`
	UpcomingAppointmentsCount  int    `json:"upcoming_appointments_count"`
	NextUpcomingDate           string `json:"next_upcoming_date,omitempty"`
	CompletedAppointmentsCount int    `json:"completed_appointments_count"`
	LastCompletedDate          string `json:"last_completed_date,omitempty"`
	TopDoctorName              string `json:"top_doctor_name,omitempty"`
	TopDoctorAppointments      int64  `json:"top_doctor_appointments"`
}
