package dto

// CreateOfferingRequest links a subject to a class for a term.
type CreateOfferingRequest struct {
	SubjectID int64 `json:"subject_id" validate:"required,min=1"`
	TermID    int64 `json:"term_id" validate:"required,min=1"`
}

// SetSubjectAssignmentRequest is the payload for the set-assignment
// operation. TermID and SubjectID must match the referenced offering;
// a mismatch means the client acted on stale data.
type SetSubjectAssignmentRequest struct {
	TermID         int64 `json:"term_id" validate:"required,min=1"`
	ClassSubjectID int64 `json:"class_subject_id" validate:"required,min=1"`
	SubjectID      int64 `json:"subject_id" validate:"required,min=1"`
	IsActive       bool  `json:"is_active"`
}

// AssignClassRequest links a trainer to a class.
type AssignClassRequest struct {
	ClassID int64 `json:"class_id" validate:"required,min=1"`
}

// AvailabilityQuery carries the occupancy check parameters.
type AvailabilityQuery struct {
	TermID         int64 `form:"term_id" validate:"required,min=1"`
	DayOfWeek      int   `form:"day_of_week" validate:"min=0,max=6"`
	LessonPeriodID int64 `form:"lesson_period_id" validate:"required,min=1"`
	ExcludeSlotID  int64 `form:"exclude_slot_id" validate:"omitempty,min=1"`
}

// CreateSlotRequest describes payload for placing a timetable slot.
type CreateSlotRequest struct {
	ClassID        int64 `json:"class_id" validate:"required,min=1"`
	SubjectID      int64 `json:"subject_id" validate:"required,min=1"`
	EmployeeID     int64 `json:"employee_id" validate:"required,min=1"`
	RoomID         int64 `json:"room_id" validate:"required,min=1"`
	LessonPeriodID int64 `json:"lesson_period_id" validate:"required,min=1"`
	DayOfWeek      int   `json:"day_of_week" validate:"min=0,max=6"`
	TermID         int64 `json:"term_id" validate:"required,min=1"`
}

// UpdateTimetableSettingsRequest is a partial settings update; nil
// fields keep their stored value.
type UpdateTimetableSettingsRequest struct {
	AllowAdminAssignment        *bool   `json:"allow_admin_assignment"`
	BlockAllSubjectSelection    *bool   `json:"block_all_subject_selection"`
	GenerationDeadlineEnabled   *bool   `json:"generation_deadline_enabled"`
	TimetableGenerationDeadline *string `json:"timetable_generation_deadline" validate:"omitempty"`
}

// CancelResult reports the outcome of a cancel operation; already
// cancelled slots report action "none".
type CancelResult struct {
	Action  string `json:"action"`
	Message string `json:"message"`
	SlotID  int64  `json:"slot_id"`
}
