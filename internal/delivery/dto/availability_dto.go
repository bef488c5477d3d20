package dto

// Response DTOs

type AvailableDayResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type AvailableDaysResponse struct {
	DoctorID    uint                   `json:"doctor_id"`
	Today       string                 `json:"today"`
	HorizonDays int                    `json:"horizon_days"`
	Days        []AvailableDayResponse `json:"days"`
	Schedule    ScheduleResponse       `json:"schedule"`
}

// SlotResponse pairs a slot label with its stored 24-hour value
type SlotResponse struct {
	Label string `json:"label"`
	Time  string `json:"time"`
}

type AvailableSlotsResponse struct {
	DoctorID uint           `json:"doctor_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

type BookedSlotResponse struct {
	AppointmentID uint   `json:"appointment_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Label         string `json:"label"`
}

type BookedSlotListResponse struct {
	DoctorID uint                 `json:"doctor_id"`
	Booked   []BookedSlotResponse `json:"booked"`
}
