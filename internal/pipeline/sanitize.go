package pipeline

import (
	"strings"

	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
)

// markupChars can never appear in exported text
var markupChars = []rune{'&', '<', '>', '"', '\''}

// StripMarkup removes markup and control characters from s.
// report is called once per distinct character removed, in removal order.
func StripMarkup(s string, report func(c rune)) string {
	for _, c := range markupChars {
		if strings.ContainsRune(s, c) {
			s = strings.ReplaceAll(s, string(c), "")
			if report != nil {
				report(c)
			}
		}
	}
	if strings.IndexFunc(s, isInvalidControl) < 0 {
		return s
	}
	seen := make(map[rune]bool)
	return strings.Map(func(r rune) rune {
		if !isInvalidControl(r) {
			return r
		}
		if !seen[r] && report != nil {
			report(r)
		}
		seen[r] = true
		return -1
	}, s)
}

func isInvalidControl(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}

// Sanitizer strips markup characters and logs every removal
type Sanitizer struct {
	log     *logger.Logger
	tracker *RunTracker
}

// NewSanitizer creates a sanitizer reporting to log and tracker
func NewSanitizer(log *logger.Logger, tracker *RunTracker) *Sanitizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Sanitizer{log: log, tracker: tracker}
}

// Clean returns text without markup characters; keysAndValues locate the text in the log
func (s *Sanitizer) Clean(text string, keysAndValues ...interface{}) string {
	return StripMarkup(text, func(c rune) {
		s.tracker.Sanitized()
		kv := append([]interface{}{"character", string(c), "text", text}, keysAndValues...)
		s.log.Info("removed character from exported text", kv...)
	})
}
