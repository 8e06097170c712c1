package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrMarginRange 预测分差/场次超出允许范围
	ErrMarginRange = errors.New("win margin out of range")
)

// ValidateMargin 校验下注时的分差/场次预测。
// 系列赛 best-of-7 只可能打 4 到 7 场；单场比赛分差必须为正数。
// 计分器不做这个校验，只做相等比较，范围检查属于下注入口。
func ValidateMargin(eventType EventType, margin int) error {
	if eventType.IsSeries() {
		if margin < 4 || margin > 7 {
			return fmt.Errorf("%w: series length must be 4-7, got %d", ErrMarginRange, margin)
		}
		return nil
	}
	if margin <= 0 {
		return fmt.Errorf("%w: point margin must be positive, got %d", ErrMarginRange, margin)
	}
	return nil
}
