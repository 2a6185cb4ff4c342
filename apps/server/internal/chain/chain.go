// Package chain publishes arena receipts to an external ledger bridge over
// HTTP. The bridge signs and submits the actual transaction; this side only
// ships the intent and records the acknowledgement.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"arena-lite/arena"
)

const (
	networkName        = "Monad Testnet"
	chainID            = 10143
	defaultExplorerURL = "https://testnet.monadexplorer.com"
)

// Publisher implements arena.ReceiptPublisher against a ledger bridge URL.
type Publisher struct {
	url         string
	explorerURL string
	wallet      string
	client      *http.Client
}

func New(url, explorerURL, wallet string, timeout time.Duration) *Publisher {
	if explorerURL == "" {
		explorerURL = defaultExplorerURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Publisher{
		url:         strings.TrimRight(url, "/"),
		explorerURL: strings.TrimRight(explorerURL, "/"),
		wallet:      wallet,
		client:      &http.Client{Timeout: timeout},
	}
}

// NewPublisherFromEnv wires the publisher from ARENA_CHAIN_URL. Without a
// bridge the engine keeps minting local pseudo-hashes, so nil is a valid
// result.
func NewPublisherFromEnv(url, explorerURL string, timeout time.Duration) (arena.ReceiptPublisher, string) {
	if url == "" {
		url = strings.TrimSpace(os.Getenv("ARENA_CHAIN_URL"))
	}
	if url == "" {
		return nil, "local"
	}
	wallet := strings.TrimSpace(os.Getenv("ARENA_CHAIN_WALLET"))
	log.Printf("[Chain] Ledger bridge online: %s", url)
	return New(url, explorerURL, wallet, timeout), "bridge"
}

type bridgeResponse struct {
	TxHash      string `json:"txHash"`
	BlockNumber int64  `json:"blockNumber"`
}

func (p *Publisher) Publish(ctx context.Context, req arena.ReceiptRequest) (*arena.Receipt, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode receipt: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/tx", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build receipt request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("publish receipt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("publish receipt: bridge returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var ack bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("decode receipt ack: %w", err)
	}
	if ack.TxHash == "" {
		return nil, fmt.Errorf("decode receipt ack: missing txHash")
	}

	return &arena.Receipt{
		TxHash:      ack.TxHash,
		BlockNumber: ack.BlockNumber,
		ExplorerURL: p.TxURL(ack.TxHash),
	}, nil
}

// TxURL builds an explorer link for a confirmed hash.
func (p *Publisher) TxURL(txHash string) string {
	return p.explorerURL + "/tx/" + txHash
}

// Info describes the configured network for the chain status endpoint.
type Info struct {
	Network           string `json:"network"`
	ChainID           int    `json:"chainId"`
	ExplorerURL       string `json:"explorerUrl"`
	ServerWallet      string `json:"serverWallet,omitempty"`
	WalletExplorerURL string `json:"walletExplorerUrl,omitempty"`
	BridgeURL         string `json:"bridgeUrl,omitempty"`
}

// Describe reports network metadata; a nil publisher describes the local
// pseudo-hash setup.
func Describe(pub arena.ReceiptPublisher, explorerURL string) Info {
	info := Info{Network: networkName, ChainID: chainID, ExplorerURL: defaultExplorerURL}
	if explorerURL != "" {
		info.ExplorerURL = strings.TrimRight(explorerURL, "/")
	}
	p, ok := pub.(*Publisher)
	if !ok || p == nil {
		return info
	}
	info.ExplorerURL = p.explorerURL
	info.BridgeURL = p.url
	info.ServerWallet = p.wallet
	if p.wallet != "" {
		info.WalletExplorerURL = p.explorerURL + "/address/" + p.wallet
	}
	return info
}

// ExplorerTxURL links a hash when it looks like a confirmed 32-byte hash.
// Locally minted pseudo-hashes share the format, so length is the only check.
func ExplorerTxURL(explorerURL, txHash string) string {
	if !strings.HasPrefix(txHash, "0x") || len(txHash) != 66 {
		return ""
	}
	return strings.TrimRight(explorerURL, "/") + "/tx/" + txHash
}
