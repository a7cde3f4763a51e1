// README: Chat turn orchestrator: respond, extract, persist, compose the visible reply.
package chat

import (
	"context"
	"log"
	"strings"

	"mawad/internal/ai"
	"mawad/internal/modules/agent"
)

const (
	msgSaveSuccess = "\n\n✅ تم تسجيل طلبك بنجاح! راح نتواصل معك قريب."
	msgSaveFailed  = "❌ حدث خطأ أثناء حفظ الطلب. يرجى المحاولة لاحقاً."
)

// OrderSaver persists one extracted order and returns the assigned order
// number. Implemented by the sheets writer; a failure means the order was
// not recorded and must not be reported as placed.
type OrderSaver interface {
	SaveOrder(ctx context.Context, order *ExtractedOrder, summary string, ident agent.Identity) (int64, error)
}

type Service struct {
	ai    ai.Client
	saver OrderSaver
}

func NewService(client ai.Client, saver OrderSaver) *Service {
	return &Service{ai: client, saver: saver}
}

// ProcessTurn runs one conversation turn. The transcript already includes
// the customer's latest message; the caller owns it and re-sends it whole
// every turn. The returned reply is always safe to show: sentinel tokens
// are stripped on every path, and placed is true only when the order was
// actually persisted.
func (s *Service) ProcessTurn(ctx context.Context, transcript []string, ident agent.Identity, allowed []string) (reply string, placed bool) {
	raw := Respond(ctx, s.ai, transcript, ident, allowed)
	reply = raw

	if order := ParseOrder(raw, allowed); order != nil {
		summary := raw
		if i := strings.Index(raw, startMarker); i >= 0 {
			summary = raw[:i]
		}
		summary = strings.TrimSpace(summary)

		if num, err := s.saver.SaveOrder(ctx, order, summary, ident); err != nil {
			log.Printf("chat: order save failed for %s: %v", ident.Phone, err)
			reply = msgSaveFailed
		} else {
			log.Printf("chat: order #%d placed by %s (%d items, %s)", num, ident.Phone, len(order.Items), order.Address)
			reply = summary + msgSaveSuccess
			placed = true
		}
	}

	if i := strings.Index(reply, startMarker); i >= 0 {
		reply = strings.TrimSpace(reply[:i])
	}
	return reply, placed
}
