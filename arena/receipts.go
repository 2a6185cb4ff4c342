package arena

import (
	"context"
	"math/rand"

	"arena-lite/txlog"
)

// ReceiptRequest describes one economic action for the external ledger.
type ReceiptRequest struct {
	Type      txlog.Type `json:"type"`
	FromAgent string     `json:"fromAgent"`
	ToAgent   string     `json:"toAgent,omitempty"`
	Amount    int64      `json:"amount"`
	Tick      int        `json:"tick"`
}

// Receipt is the publisher's acknowledgement.
type Receipt struct {
	TxHash      string `json:"txHash"`
	BlockNumber int64  `json:"blockNumber,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// ReceiptPublisher is the consumed side of the external ledger boundary. The
// engine treats it as best-effort: the economic effect is applied locally and
// unconditionally before Publish is attempted, and a failure only means a
// locally generated pseudo-hash is recorded instead.
type ReceiptPublisher interface {
	Publish(ctx context.Context, req ReceiptRequest) (*Receipt, error)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, ReceiptRequest) (*Receipt, error) {
	return nil, nil
}

const hexDigits = "0123456789abcdef"

// pseudoTxHash generates the local fallback identifier: 0x + 64 hex chars.
func pseudoTxHash(rng *rand.Rand) string {
	buf := make([]byte, 2, 66)
	buf[0], buf[1] = '0', 'x'
	for i := 0; i < 64; i++ {
		buf = append(buf, hexDigits[rng.Intn(len(hexDigits))])
	}
	return string(buf)
}
