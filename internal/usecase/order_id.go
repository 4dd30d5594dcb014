package usecase

import (
	"fmt"
	"sync/atomic"
	"time"
)

// 注文番号の採番。作成時に一度だけ呼ばれる
type OrderIDGenerator interface {
	NewOrderID(now time.Time) string
}

// WD + ミリ秒エポック + 4桁連番
// 連番はプロセス内の単調カウンタ。既存件数ベースだと同時作成で衝突するため
type WDOrderIDGenerator struct {
	seq atomic.Uint64
}

func NewWDOrderIDGenerator() *WDOrderIDGenerator {
	return &WDOrderIDGenerator{}
}

func (g *WDOrderIDGenerator) NewOrderID(now time.Time) string {
	n := g.seq.Add(1) % 10000
	return fmt.Sprintf("WD%d%04d", now.UnixMilli(), n)
}
