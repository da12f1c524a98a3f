package schedule

import (
	"encoding/json"
	"strings"

	"caregrid/models"
)

// DocumentChannel names the upload channel for provenance notes.
type DocumentChannel string

const (
	ChannelDocument DocumentChannel = "document"
	ChannelImage    DocumentChannel = "image"
)

// VoiceWeekPolicy controls which week a voice-entered schedule lands on.
type VoiceWeekPolicy int

const (
	// VoiceWeekForceNext always targets next week, matching the established
	// client behavior. TODO(product): confirm whether the transcript
	// heuristic should take over; see VoiceWeekHeuristic.
	VoiceWeekForceNext VoiceWeekPolicy = iota
	// VoiceWeekHeuristic targets next week only when the transcript says so.
	VoiceWeekHeuristic
)

const (
	defaultTimeFrom = "09:00"
	defaultTimeTo   = "17:00"
)

// DefaultDraft returns the presentation-safe fallback schedule: a fresh
// value every call, so callers can mutate their copy freely.
func DefaultDraft() *models.ScheduleDraft {
	days := []models.DayCode{
		models.DayMonday, models.DayTuesday, models.DayWednesday,
		models.DayThursday, models.DayFriday,
	}
	schedules := make(map[models.DayCode]models.DayTimeRange, len(days))
	for _, d := range days {
		schedules[d] = models.DayTimeRange{TimeFrom: defaultTimeFrom, TimeTo: defaultTimeTo}
	}
	return &models.ScheduleDraft{
		Title:        "Work schedule",
		WorkingDays:  days,
		DaySchedules: schedules,
		Notes:        "Default schedule - please review and adjust",
	}
}

// ExtractJSONObject pulls the first balanced JSON object out of raw model
// output, tolerating markdown fences, leading prose and trailing junk. The
// second return is false when no complete object is present.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// decodePayload parses untrusted extractor output. Unparseable input yields
// a zero payload, which downstream validation treats the same as "no usable
// days found".
func decodePayload(raw string) models.ExtractionPayload {
	var payload models.ExtractionPayload
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return payload
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return models.ExtractionPayload{}
	}
	return payload
}

// normalizedDays is the cleaned-up result of one extraction payload.
type normalizedDays struct {
	days      []models.DayCode
	schedules map[models.DayCode]models.DayTimeRange
	ranges    map[models.DayCode]models.DayTimeRange // all valid ranges, listed or not
	collapsed bool                                   // some day normalized to a zero-length range
}

// normalizePayload runs every day name and time in the payload through the
// normalizer. Days whose range fails to parse are discarded; a day whose
// start and end normalize to the same instant is discarded and flagged.
func normalizePayload(payload models.ExtractionPayload) normalizedDays {
	ranges := make(map[models.DayCode]models.DayTimeRange)
	collapsed := false
	for name, raw := range payload.DaySchedules {
		code, err := NormalizeDay(name)
		if err != nil {
			continue
		}
		from, errFrom := NormalizeTime(raw.TimeFrom)
		to, errTo := NormalizeTime(raw.TimeTo)
		if errFrom != nil || errTo != nil {
			continue
		}
		if from == to {
			collapsed = true
			continue
		}
		if to < from {
			continue
		}
		ranges[code] = models.DayTimeRange{TimeFrom: from, TimeTo: to}
	}

	out := normalizedDays{
		schedules: make(map[models.DayCode]models.DayTimeRange),
		ranges:    ranges,
		collapsed: collapsed,
	}
	seen := make(map[models.DayCode]bool)
	for _, name := range payload.WorkingDays {
		code, err := NormalizeDay(name)
		if err != nil || seen[code] {
			continue
		}
		r, ok := ranges[code]
		if !ok {
			continue
		}
		seen[code] = true
		out.days = append(out.days, code)
		out.schedules[code] = r
	}
	return out
}

// ValidateDocumentExtraction turns raw extractor output from an uploaded
// document or image into a valid ScheduleDraft. Malformed JSON, bad day
// names and broken ranges are all recovered locally: when nothing usable
// survives normalization the draft falls back to Monday-Friday with a
// 09:00-17:00 range for every day lacking an explicit one. Notes always
// carry a fixed provenance string; the extractor's own notes are never
// trusted.
func ValidateDocumentExtraction(raw string, channel DocumentChannel, sig WeekSignal) *models.ScheduleDraft {
	payload := decodePayload(raw)
	norm := normalizePayload(payload)

	days := norm.days
	schedules := norm.schedules
	if len(days) == 0 {
		days = []models.DayCode{
			models.DayMonday, models.DayTuesday, models.DayWednesday,
			models.DayThursday, models.DayFriday,
		}
		schedules = make(map[models.DayCode]models.DayTimeRange, len(days))
		for _, d := range days {
			if r, ok := norm.ranges[d]; ok {
				schedules[d] = r
			} else {
				schedules[d] = models.DayTimeRange{TimeFrom: defaultTimeFrom, TimeTo: defaultTimeTo}
			}
		}
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		title = "Work schedule"
	}

	return &models.ScheduleDraft{
		Title:        title,
		WorkingDays:  days,
		DaySchedules: schedules,
		Location:     strings.TrimSpace(payload.Location),
		Notes:        "Imported from uploaded " + string(channel),
		WeekAnchor:   ResolveWeekAnchor(sig),
	}
}

// VoiceOptions tunes the voice validation path.
type VoiceOptions struct {
	WeekPolicy VoiceWeekPolicy
}

// ValidateVoiceExtraction turns raw extractor output from the speech
// pipeline into a ScheduleDraft. Voice input is distrusted harder than
// documents: if the transcript contains no weekday token, if normalization
// yields zero valid days, or if any day's range collapsed to zero length,
// the whole result is replaced with DefaultDraft rather than patched. The
// returned error tags why the fallback fired and is informational only -
// the draft is always valid and presentable.
func ValidateVoiceExtraction(raw string, transcript string, opts VoiceOptions) (*models.ScheduleDraft, error) {
	sig := WeekSignal{Offset: WeekOffsetNext}
	if opts.WeekPolicy == VoiceWeekHeuristic {
		sig = WeekSignal{NextWeek: DetectNextWeekIntent(transcript)}
	}

	if !transcriptHasWeekday(transcript) {
		draft := DefaultDraft()
		draft.WeekAnchor = ResolveWeekAnchor(sig)
		return draft, ErrAmbiguousTranscript
	}

	norm := normalizePayload(decodePayload(raw))
	if len(norm.days) == 0 || norm.collapsed {
		draft := DefaultDraft()
		draft.WeekAnchor = ResolveWeekAnchor(sig)
		return draft, ErrNoUsableExtraction
	}

	return &models.ScheduleDraft{
		Title:        "Schedule from voice note",
		WorkingDays:  norm.days,
		DaySchedules: norm.schedules,
		Notes:        "Imported from voice recording",
		WeekAnchor:   ResolveWeekAnchor(sig),
	}, nil
}

func transcriptHasWeekday(transcript string) bool {
	lower := strings.ToLower(transcript)
	for name := range dayNames {
		if containsWord(lower, name) {
			return true
		}
	}
	return false
}

// containsWord matches name on word boundaries so "monitor" does not count
// as "mon".
func containsWord(text, name string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], name)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(name)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
