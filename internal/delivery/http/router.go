package http

import (
	"net/http"

	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	userHandler          *handler.UserHandler
	patientHandler       *handler.PatientHandler
	doctorHandler        *handler.DoctorHandler
	appointmentHandler   *handler.AppointmentHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	telemedicineHandler  *handler.TelemedicineHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	recoveryMiddleware   *middleware.RecoveryMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	telemedicineHandler *handler.TelemedicineHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		userHandler:          userHandler,
		patientHandler:       patientHandler,
		doctorHandler:        doctorHandler,
		appointmentHandler:   appointmentHandler,
		medicalRecordHandler: medicalRecordHandler,
		telemedicineHandler:  telemedicineHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		recoveryMiddleware:   recoveryMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/profile", r.authHandler.GetProfile).Methods(http.MethodGet)

	// User management: listing and deleting are admin-only, get/update also
	// serve the account owner
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)

	usersAdmin := api.PathPrefix("/users").Subrouter()
	usersAdmin.Use(r.authMiddleware.Authenticate)
	usersAdmin.Use(middleware.RequireAdmin)
	usersAdmin.HandleFunc("", r.userHandler.ListUsers).Methods(http.MethodGet)
	usersAdmin.HandleFunc("/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Patients: listing is restricted to clinicians and admins
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}/appointments", r.patientHandler.ListPatientAppointments).Methods(http.MethodGet)
	patients.HandleFunc("/{id}/medical-records", r.patientHandler.ListPatientMedicalRecords).Methods(http.MethodGet)

	patientsStaff := api.PathPrefix("/patients").Subrouter()
	patientsStaff.Use(r.authMiddleware.Authenticate)
	patientsStaff.Use(middleware.RequireDoctorOrAdmin)
	patientsStaff.HandleFunc("", r.patientHandler.ListPatients).Methods(http.MethodGet)

	// Doctors: browsable by any authenticated user
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	doctors.HandleFunc("/{id}/appointments", r.doctorHandler.ListDoctorAppointments).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}/patients", r.doctorHandler.ListDoctorPatients).Methods(http.MethodGet)

	doctorsSelf := api.PathPrefix("/doctors").Subrouter()
	doctorsSelf.Use(r.authMiddleware.Authenticate)
	doctorsSelf.Use(middleware.RequireRole(entity.RoleDoctor))
	doctorsSelf.HandleFunc("/profile", r.doctorHandler.SaveProfile).Methods(http.MethodPost)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)

	appointmentsAdmin := api.PathPrefix("/appointments").Subrouter()
	appointmentsAdmin.Use(r.authMiddleware.Authenticate)
	appointmentsAdmin.Use(middleware.RequireAdmin)
	appointmentsAdmin.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Medical records: creation and edits are clinician work
	records := api.PathPrefix("/medical-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("", r.medicalRecordHandler.ListMedicalRecords).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.medicalRecordHandler.GetMedicalRecord).Methods(http.MethodGet)

	recordsStaff := api.PathPrefix("/medical-records").Subrouter()
	recordsStaff.Use(r.authMiddleware.Authenticate)
	recordsStaff.Use(middleware.RequireDoctorOrAdmin)
	recordsStaff.HandleFunc("", r.medicalRecordHandler.CreateMedicalRecord).Methods(http.MethodPost)
	recordsStaff.HandleFunc("/{id}", r.medicalRecordHandler.UpdateMedicalRecord).Methods(http.MethodPut)

	recordsAdmin := api.PathPrefix("/medical-records").Subrouter()
	recordsAdmin.Use(r.authMiddleware.Authenticate)
	recordsAdmin.Use(middleware.RequireAdmin)
	recordsAdmin.HandleFunc("/{id}", r.medicalRecordHandler.DeleteMedicalRecord).Methods(http.MethodDelete)

	// Telemedicine sessions
	telemedicine := api.PathPrefix("/telemedicine/sessions").Subrouter()
	telemedicine.Use(r.authMiddleware.Authenticate)
	telemedicine.HandleFunc("", r.telemedicineHandler.ListSessions).Methods(http.MethodGet)
	telemedicine.HandleFunc("/{id}", r.telemedicineHandler.GetSession).Methods(http.MethodGet)

	telemedicineStaff := api.PathPrefix("/telemedicine/sessions").Subrouter()
	telemedicineStaff.Use(r.authMiddleware.Authenticate)
	telemedicineStaff.Use(middleware.RequireDoctorOrAdmin)
	telemedicineStaff.HandleFunc("", r.telemedicineHandler.ProvisionSession).Methods(http.MethodPost)
	telemedicineStaff.HandleFunc("/{id}/start", r.telemedicineHandler.StartSession).Methods(http.MethodPost)
	telemedicineStaff.HandleFunc("/{id}/end", r.telemedicineHandler.EndSession).Methods(http.MethodPost)

	// Audit trail (admin only)
	audit := api.PathPrefix("/audit-logs").Subrouter()
	audit.Use(r.authMiddleware.Authenticate)
	audit.Use(middleware.RequireAdmin)
	audit.HandleFunc("", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	audit.HandleFunc("/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.recoveryMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
