package http

import (
	"net/http"

	"healthcare-booking/internal/delivery/http/handler"
	"healthcare-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	adminHandler        *handler.AdminHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	notificationHandler *handler.NotificationHandler
	statsHandler        *handler.StatsHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	metricsMiddleware   *middleware.MetricsMiddleware
	metricsHandler      http.Handler
}

func NewRouter(
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	notificationHandler *handler.NotificationHandler,
	statsHandler *handler.StatsHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		adminHandler:        adminHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		notificationHandler: notificationHandler,
		statsHandler:        statsHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		metricsMiddleware:   metricsMiddleware,
		metricsHandler:      promhttp.Handler(),
	}
}

func (r *Router) Setup() *mux.Router {
	// Ops
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/auth/admin/login", r.authHandler.AdminLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/patient/login", r.authHandler.PatientLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/patient/register", r.authHandler.Register).Methods(http.MethodPost)

	// Auth routes (protected)
	api.Handle("/auth/logout", r.authenticated(r.authHandler.Logout)).Methods(http.MethodPost)
	api.Handle("/auth/me", r.authenticated(r.authHandler.GetCurrentUser)).Methods(http.MethodGet)

	// Admin management (admin)
	api.Handle("/admins", r.admin(r.adminHandler.GetAllAdmins)).Methods(http.MethodGet)
	api.Handle("/admins", r.admin(r.adminHandler.CreateAdmin)).Methods(http.MethodPost)
	api.Handle("/admins/{id:[0-9]+}", r.admin(r.adminHandler.GetAdmin)).Methods(http.MethodGet)
	api.Handle("/admins/{id:[0-9]+}", r.admin(r.adminHandler.UpdateAdmin)).Methods(http.MethodPut)
	api.Handle("/admins/{id:[0-9]+}", r.admin(r.adminHandler.DeleteAdmin)).Methods(http.MethodDelete)
	api.Handle("/admins/{id:[0-9]+}/password", r.admin(r.adminHandler.ChangePassword)).Methods(http.MethodPatch)

	// Patient self-service (patient)
	api.Handle("/patients/me", r.patient(r.patientHandler.UpdateMe)).Methods(http.MethodPut)
	api.Handle("/patients/me/password", r.patient(r.patientHandler.ChangeMyPassword)).Methods(http.MethodPatch)

	// Patient management (admin)
	api.Handle("/patients", r.admin(r.patientHandler.GetAllPatients)).Methods(http.MethodGet)
	api.Handle("/patients/latest", r.admin(r.patientHandler.GetLatestPatients)).Methods(http.MethodGet)
	api.Handle("/patients/{id:[0-9]+}", r.admin(r.patientHandler.GetPatient)).Methods(http.MethodGet)
	api.Handle("/patients/{id:[0-9]+}", r.admin(r.patientHandler.DeletePatient)).Methods(http.MethodDelete)
	api.Handle("/patients/{id:[0-9]+}/account-status", r.admin(r.patientHandler.UpdateAccountStatus)).Methods(http.MethodPatch)

	// Doctors (public read)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Doctor management (admin)
	api.Handle("/doctors", r.admin(r.doctorHandler.CreateDoctor)).Methods(http.MethodPost)
	api.Handle("/doctors/{id:[0-9]+}", r.admin(r.doctorHandler.UpdateDoctor)).Methods(http.MethodPut)
	api.Handle("/doctors/{id:[0-9]+}", r.admin(r.doctorHandler.DeleteDoctor)).Methods(http.MethodDelete)
	api.Handle("/doctors/{id:[0-9]+}/service-days", r.admin(r.doctorHandler.UpdateServiceDays)).Methods(http.MethodPatch)
	api.Handle("/doctors/{id:[0-9]+}/availability-times", r.admin(r.doctorHandler.UpdateAvailabilityTimes)).Methods(http.MethodPatch)
	api.Handle("/doctors/{id:[0-9]+}/status", r.admin(r.doctorHandler.UpdateStatus)).Methods(http.MethodPatch)
	api.Handle("/doctors/{id:[0-9]+}/bio", r.admin(r.doctorHandler.UpdateBio)).Methods(http.MethodPatch)
	api.Handle("/doctors/{id:[0-9]+}/specialty", r.admin(r.doctorHandler.UpdateSpecialty)).Methods(http.MethodPatch)

	// Availability (public)
	api.HandleFunc("/doctors/{id:[0-9]+}/availability", r.availabilityHandler.GetAvailableDays).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id:[0-9]+}/availability/{date}", r.availabilityHandler.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id:[0-9]+}/booked", r.availabilityHandler.GetBookedSlots).Methods(http.MethodGet)

	// Appointments (patient)
	api.Handle("/appointments", r.patient(r.appointmentHandler.CreateAppointment)).Methods(http.MethodPost)
	api.Handle("/appointments/me", r.patient(r.appointmentHandler.GetMyAppointments)).Methods(http.MethodGet)
	api.Handle("/appointments/{id:[0-9]+}/reschedule", r.patient(r.appointmentHandler.RescheduleAppointment)).Methods(http.MethodPatch)
	api.Handle("/appointments/{id:[0-9]+}/cancel", r.patient(r.appointmentHandler.CancelAppointment)).Methods(http.MethodPatch)

	// Appointments (admin)
	api.Handle("/appointments", r.admin(r.appointmentHandler.GetAllAppointments)).Methods(http.MethodGet)
	api.Handle("/appointments/recent", r.admin(r.appointmentHandler.GetRecentAppointments)).Methods(http.MethodGet)
	api.Handle("/appointments/{id:[0-9]+}", r.admin(r.appointmentHandler.GetAppointment)).Methods(http.MethodGet)
	api.Handle("/appointments/{id:[0-9]+}", r.admin(r.appointmentHandler.DeleteAppointment)).Methods(http.MethodDelete)
	api.Handle("/appointments/{id:[0-9]+}/status", r.admin(r.appointmentHandler.UpdateStatus)).Methods(http.MethodPatch)
	api.Handle("/appointments/{id:[0-9]+}/notes", r.admin(r.appointmentHandler.UpdateNotes)).Methods(http.MethodPatch)

	// Notification preferences (patient)
	api.Handle("/notifications/me", r.patient(r.notificationHandler.GetMyNotifications)).Methods(http.MethodGet)
	api.Handle("/notifications/me", r.patient(r.notificationHandler.UpsertMyNotification)).Methods(http.MethodPut)
	api.Handle("/notifications/{id:[0-9]+}", r.patient(r.notificationHandler.DeleteNotification)).Methods(http.MethodDelete)

	// Statistics
	api.Handle("/stats/dashboard", r.admin(r.statsHandler.GetDashboard)).Methods(http.MethodGet)
	api.Handle("/stats/monthly", r.admin(r.statsHandler.GetMonthly)).Methods(http.MethodGet)
	api.Handle("/stats/me", r.patient(r.statsHandler.GetMyStats)).Methods(http.MethodGet)
	api.Handle("/stats/me/monthly", r.patient(r.statsHandler.GetMyMonthly)).Methods(http.MethodGet)

	// Audit trail (admin)
	api.Handle("/audit-logs", r.admin(r.auditLogHandler.GetAllAuditLogs)).Methods(http.MethodGet)

	r.router.Use(r.metricsMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) authenticated(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(h)
}

func (r *Router) admin(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(middleware.RequireAdmin(h))
}

func (r *Router) patient(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(middleware.RequirePatient(h))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
