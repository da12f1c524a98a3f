package models

// ExtractionPayload is the loosely-structured JSON shape the extraction model
// is prompted to return. Every field is untrusted: day names and times arrive
// in whatever shape OCR or speech recognition produced, so nothing here is
// used before it passes through schedule validation.
type ExtractionPayload struct {
	Title        string                     `json:"title"`
	WorkingDays  []string                   `json:"workingDays"`
	DaySchedules map[string]RawDayTimeRange `json:"daySchedules"`
	Location     string                     `json:"location"`
	Notes        string                     `json:"notes"`
}

// RawDayTimeRange carries unvalidated time strings from the extractor.
type RawDayTimeRange struct {
	TimeFrom string `json:"timeFrom"`
	TimeTo   string `json:"timeTo"`
}

// VoiceScheduleResponse is returned by the voice pipeline so the client can
// show the transcript alongside the saved schedule. Fallback is set when
// validation substituted the default schedule and names why.
type VoiceScheduleResponse struct {
	Transcript string          `json:"transcript"`
	Schedule   *ScheduleRecord `json:"schedule"`
	Fallback   string          `json:"fallback,omitempty"`
}

// WeekViewResponse is the payload of the derived-calendar endpoint.
type WeekViewResponse struct {
	WeekStart string        `json:"weekStart"`
	Days      []DaySchedule `json:"days"`
}
