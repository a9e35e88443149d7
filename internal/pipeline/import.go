package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/utils"
)

// Column layout of a status report line. The reference and status columns are
// anchored to the end of the line.
const (
	nameEnd       = 30
	codeEnd       = 60
	statusFromEnd = 15
	statusLen     = 6
	dateLen       = 8
	minLineLen    = codeEnd + 1 + statusFromEnd
)

// StatusLine is one accepted line of a status report
type StatusLine struct {
	Line     int
	Name     string
	Code     string
	UniqueID string
	Status   string
	Date     string
	Element  *model.Element
}

// ParseStatusLine slices one data line. ok is false when any column is blank or
// misaligned, or when the status code is unknown.
func ParseStatusLine(line string, codes map[string]string) (StatusLine, bool) {
	r := []rune(line)
	n := len(r)
	if n < minLineLen {
		return StatusLine{}, false
	}
	if !isAlnum(r[0]) || !unicode.IsSpace(r[nameEnd-1]) {
		return StatusLine{}, false
	}
	if !isAlnum(r[nameEnd]) || !unicode.IsSpace(r[codeEnd-1]) {
		return StatusLine{}, false
	}
	if !isAlnum(r[codeEnd]) || !isAlnum(r[n-statusFromEnd-1]) {
		return StatusLine{}, false
	}
	if !isAlnum(r[n-statusFromEnd]) || !isAlnum(r[n-1]) {
		return StatusLine{}, false
	}
	status, ok := codes[string(r[n-statusFromEnd:n-statusFromEnd+statusLen])]
	if !ok {
		return StatusLine{}, false
	}
	return StatusLine{
		Name:     utils.TrimTrailingWord(string(r[:nameEnd])),
		Code:     utils.TrimTrailingWord(string(r[nameEnd:codeEnd])),
		UniqueID: utils.TrimTrailingWord(string(r[codeEnd : n-statusFromEnd])),
		Status:   status,
		Date:     string(r[n-dateLen:]),
	}, true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ReadStatusReport decodes an ISO-8859-1 report and returns the accepted lines
// whose reference resolves to an element of host. The header line is skipped.
func ReadStatusReport(r io.Reader, host model.Host, codes map[string]string, log *logger.Logger) ([]StatusLine, model.ImportResult, error) {
	if log == nil {
		log = logger.Nop()
	}
	var result model.ImportResult
	var out []StatusLine
	sc := bufio.NewScanner(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		result.Lines++
		sl, ok := ParseStatusLine(text, codes)
		if ok {
			sl.Element, ok = host.ElementByUniqueID(sl.UniqueID)
		}
		if !ok {
			result.Rejected++
			log.Debug("status line rejected", "line", lineNo)
			continue
		}
		sl.Line = lineNo
		result.Accepted++
		out = append(out, sl)
	}
	if err := sc.Err(); err != nil {
		return nil, result, fmt.Errorf("read status report: %w", err)
	}
	return out, result, nil
}

// ImportStatus reads a status report and writes control code, status and date
// back onto each referenced element.
func ImportStatus(r io.Reader, host model.Host, w model.ParameterWriter, spec *model.ExportSpec, log *logger.Logger) (model.ImportResult, error) {
	if log == nil {
		log = logger.Nop()
	}
	lines, result, err := ReadStatusReport(r, host, spec.Status.Codes, log)
	if err != nil {
		return result, err
	}
	for _, sl := range lines {
		writes := []struct{ name, value string }{
			{spec.Status.ControlCode, sl.Code},
			{spec.Status.Status, sl.Status},
			{spec.Status.Date, sl.Date},
		}
		for _, wr := range writes {
			ok, err := w.SetParameter(sl.Element.ID, wr.name, wr.value)
			if err != nil {
				return result, fmt.Errorf("line %d: set %s: %w", sl.Line, wr.name, err)
			}
			if ok {
				result.Written++
			}
		}
		log.Debug("status written", "unique_id", sl.UniqueID, "status", sl.Status, "date", sl.Date)
	}
	log.Info("status import finished",
		"lines", result.Lines,
		"accepted", result.Accepted,
		"rejected", result.Rejected,
		"written", result.Written,
	)
	return result, nil
}
