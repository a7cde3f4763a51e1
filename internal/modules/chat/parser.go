// README: Parses the sentinel-delimited order block out of an assistant reply.
package chat

import (
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"mawad/internal/arabic"
	"mawad/internal/modules/location"
)

const (
	startMarker  = "###DATA_START###"
	endMarker    = "###DATA_END###"
	customerMark = "CUSTOMER:"
	itemsMark    = "ITEMS:"
	headerToken  = "فئة|"
)

var addressRe = regexp.MustCompile(`العنوان:\s*(.+)`)

// ParseOrder extracts an order from a raw assistant reply. It returns nil
// whenever the reply does not carry a complete, usable order: missing or
// unterminated markers, no valid item lines, a missing or too-short address,
// or an address rejected by the allow-list. Individually malformed item
// lines are dropped, not fatal.
//
// A nil allowed list means unrestricted; a non-nil empty list rejects every
// address. Panics are contained here so a malformed turn can never take
// down the conversation.
func ParseOrder(reply string, allowed []string) (order *ExtractedOrder) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("chat: order extraction panic: %v", r)
			order = nil
		}
	}()

	start := strings.Index(reply, startMarker)
	if start < 0 {
		return nil
	}
	rest := reply[start+len(startMarker):]
	end := strings.Index(rest, endMarker)
	if end < 0 {
		return nil
	}
	block := strings.TrimSpace(rest[:end])

	parts := strings.SplitN(block, customerMark, 2)
	if len(parts) < 2 {
		return nil
	}
	itemsPart := strings.TrimSpace(strings.Replace(parts[0], itemsMark, "", 1))
	custPart := strings.TrimSpace(parts[1])

	var items []LineItem
	for _, line := range strings.Split(itemsPart, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "|") || strings.HasPrefix(line, headerToken) {
			continue
		}
		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < 5 {
			continue
		}
		it := LineItem{
			Category: fields[0],
			Item:     fields[1],
			Qty:      fields[len(fields)-2],
			Unit:     fields[len(fields)-1],
		}
		specs := fields[2 : len(fields)-2]
		if len(specs) > 0 {
			it.Spec1 = specs[0]
		}
		if len(specs) > 1 {
			it.Spec2 = specs[1]
		}
		if len(specs) > 2 {
			it.Spec3 = specs[2]
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil
	}

	m := addressRe.FindStringSubmatch(custPart)
	if m == nil {
		return nil
	}
	addr := strings.TrimSpace(m[1])
	if utf8.RuneCountInString(addr) <= 2 {
		return nil
	}

	if allowed != nil {
		canonical, ok := location.Authorize(addr, allowed)
		if !ok {
			log.Printf("chat: rejected delivery location %q (normalized %q), allowed: %v",
				addr, strings.ToLower(arabic.Normalize(addr)), allowed)
			return nil
		}
		addr = canonical
	}

	return &ExtractedOrder{Items: items, Address: addr}
}
