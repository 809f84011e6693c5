package parser

import (
	"regexp"
	"strings"
)

// LinePreviewLength is the maximum number of runes of the raw line kept on
// each URLTask and ParseFailure.
const LinePreviewLength = 100

// lineRe is the chat line grammar: "<date>, <time> - <sender>: <message>".
// The sender capture is non-greedy so senders containing colons do not break
// the split. The time token tolerates the Unicode space variants exporters
// put before the meridiem.
var lineRe = regexp.MustCompile(
	`^(\d{1,2}/\d{1,2}/\d{2,4}), ` +
		`(\d{1,2}:\d{2}(?:[ \x{00A0}\x{202F}\x{2009}\x{200A}]?(?i:[ap])\.?(?i:m)?\.?)?)` +
		` - (.+?): (.*)$`)

// urlRe matches any maximal run of non-whitespace starting with http(s)://.
var urlRe = regexp.MustCompile(`https?://\S+`)

// ParseLine splits a raw transcript line into a ParsedMessage.
//
// Lines that do not match the grammar return (nil, nil, true): they are
// multi-line continuations of an earlier message and are silently skipped.
// Lines that match but carry no URL return a ParsedMessage with empty URLs.
// Lines that carry a URL but whose timestamp cannot be normalized return a
// ParseFailure; this is recoverable and never aborts the scan.
func ParseLine(raw string, lineNum int) (msg *ParsedMessage, failure *ParseFailure, skipped bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil, true
	}

	m := lineRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, nil, true
	}

	dateToken, timeToken, sender, body := m[1], m[2], m[3], m[4]
	urls := urlRe.FindAllString(body, -1)

	ts, err := NormalizeTimestamp(dateToken, timeToken)
	if err != nil {
		if len(urls) == 0 {
			// Nothing to enrich on this line anyway.
			return nil, nil, true
		}
		return nil, &ParseFailure{
			LineNum: lineNum,
			Line:    TruncateLine(raw),
			Reason:  err.Error(),
		}, false
	}

	return &ParsedMessage{
		Timestamp: ts,
		Sender:    strings.TrimSpace(sender),
		URLs:      urls,
	}, nil, false
}

// Tasks expands a parsed message into one URLTask per URL occurrence.
func (m *ParsedMessage) Tasks(raw string, lineNum int) []URLTask {
	if len(m.URLs) == 0 {
		return nil
	}
	preview := TruncateLine(raw)
	tasks := make([]URLTask, 0, len(m.URLs))
	for _, u := range m.URLs {
		tasks = append(tasks, URLTask{
			URL:          u,
			Sender:       m.Sender,
			Timestamp:    m.Timestamp,
			LineNum:      lineNum,
			OriginalLine: preview,
		})
	}
	return tasks
}

// TruncateLine caps a raw line at LinePreviewLength runes, appending an
// ellipsis marker when anything was cut.
func TruncateLine(raw string) string {
	runes := []rune(raw)
	if len(runes) <= LinePreviewLength {
		return raw
	}
	return string(runes[:LinePreviewLength]) + "..."
}
