package dto

// CreateEventRequest body untuk POST /api/events.
// Tanggal "YYYY-MM-DD", jam "HH:mm"; venue/category/course opsional (UUID).
type CreateEventRequest struct {
	EventName   string  `json:"event_name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	EventDate   string  `json:"event_date" validate:"required"`
	EventTime   string  `json:"event_time" validate:"required"`
	VenueID     *string `json:"venue_id"`
	CategoryID  *string `json:"category_id"`
	CourseID    *string `json:"course_id"`
}

// UpdateEventRequest body untuk PATCH /api/events/:id — semua field opsional,
// field nil dibiarkan (semantik COALESCE backend lama). Status TIDAK bisa
// diubah lewat sini; transisi status hanya lewat approve/reject.
type UpdateEventRequest struct {
	EventName   *string `json:"event_name"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
	EventTime   *string `json:"event_time"`
	VenueID     *string `json:"venue_id"`
	CategoryID  *string `json:"category_id"`
}
