package dto

// CreateTermRequest describes payload for creating a term.
type CreateTermRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateTermRequest describes payload for updating a term.
type UpdateTermRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=100"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive  *bool  `json:"is_active"`
}

// CreateClassRequest describes payload for creating a class.
type CreateClassRequest struct {
	Code          string `json:"code" validate:"required,min=2,max=20"`
	Name          string `json:"name" validate:"required,min=2,max=150"`
	Department    string `json:"department" validate:"omitempty,max=100"`
	DurationHours int    `json:"duration_hours" validate:"omitempty,min=0"`
}

// UpdateClassRequest describes payload for updating a class.
type UpdateClassRequest struct {
	Code          string `json:"code" validate:"omitempty,min=2,max=20"`
	Name          string `json:"name" validate:"omitempty,min=2,max=150"`
	Department    string `json:"department" validate:"omitempty,max=100"`
	DurationHours *int   `json:"duration_hours" validate:"omitempty,min=0"`
	IsActive      *bool  `json:"is_active"`
}

// CreateSubjectRequest describes payload for creating a subject.
type CreateSubjectRequest struct {
	Code        string `json:"code" validate:"required,min=2,max=20"`
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	CanBeOnline bool   `json:"can_be_online"`
}

// UpdateSubjectRequest describes payload for updating a subject.
type UpdateSubjectRequest struct {
	Code        string `json:"code" validate:"omitempty,min=2,max=20"`
	Name        string `json:"name" validate:"omitempty,min=2,max=150"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	CanBeOnline *bool  `json:"can_be_online"`
	IsActive    *bool  `json:"is_active"`
}

// CreateRoomRequest describes payload for creating a room.
type CreateRoomRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Capacity int    `json:"capacity" validate:"omitempty,min=0"`
	RoomType string `json:"room_type" validate:"required"`
}

// UpdateRoomRequest describes payload for updating a room.
type UpdateRoomRequest struct {
	Name     string `json:"name" validate:"omitempty,min=1,max=100"`
	Capacity *int   `json:"capacity" validate:"omitempty,min=0"`
	RoomType string `json:"room_type" validate:"omitempty"`
	IsActive *bool  `json:"is_active"`
}

// CreateLessonPeriodRequest describes payload for creating a lesson period.
type CreateLessonPeriodRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=50"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}
