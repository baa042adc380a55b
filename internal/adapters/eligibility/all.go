package eligibility

import (
	"context"

	"github.com/larriantoniy/tg_order_bot/internal/ports"
)

// All проходит, только если проходят все гейты. Пустой список пускает всех.
type All []ports.EligibilityGate

func (a All) IsEligible(ctx context.Context, chatID int64) bool {
	for _, g := range a {
		if !g.IsEligible(ctx, chatID) {
			return false
		}
	}
	return true
}
