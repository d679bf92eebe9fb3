package wallet

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/sha3"
)

// TransactionSender abstracts the wallet capability: submitting the paid mint
// transaction and reporting which chain the wallet is on. Acknowledgment is
// submission only, never on-chain confirmation.
type TransactionSender interface {
	ChainID(ctx context.Context) (int64, error)
	SendMint(ctx context.Context, from string) (string, error)
}

// MintSelector is the 4-byte function selector for the parameterless mint()
// call, keccak-256 of the canonical signature.
func MintSelector() []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("mint()"))
	return h.Sum(nil)[:4]
}

// RPCSender submits transactions through a JSON-RPC wallet bridge
// (eth_chainId / eth_sendTransaction). The bridge holds the keys; this client
// only shapes and submits the request.
type RPCSender struct {
	client   *http.Client
	endpoint string
	tracer   trace.Tracer

	contract string   // mint contract address
	value    *big.Int // payable amount in wei

	nextID atomic.Int64
}

func NewRPCSender(tracer trace.Tracer, endpoint, contract string, valueWei *big.Int) *RPCSender {
	return &RPCSender{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
		tracer:   tracer,
		contract: contract,
		value:    valueWei,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (s *RPCSender) ChainID(ctx context.Context) (int64, error) {
	_, span := s.tracer.Start(ctx, "wallet.chain-id")
	defer span.End()

	var result string
	if err := s.call(ctx, "eth_chainId", nil, &result); err != nil {
		return 0, err
	}
	id, ok := new(big.Int).SetString(trimHexPrefix(result), 16)
	if !ok {
		return 0, fmt.Errorf("malformed chain id: %q", result)
	}
	return id.Int64(), nil
}

// SendMint submits the fixed-price mint transaction and returns the
// transaction hash acknowledged by the wallet.
func (s *RPCSender) SendMint(ctx context.Context, from string) (string, error) {
	_, span := s.tracer.Start(ctx, "wallet.send-mint")
	defer span.End()
	span.SetAttributes(attribute.String("wallet.from", from))

	tx := map[string]string{
		"from":  from,
		"to":    s.contract,
		"value": "0x" + s.value.Text(16),
		"data":  "0x" + hex.EncodeToString(MintSelector()),
	}

	var hash string
	if err := s.call(ctx, "eth_sendTransaction", []any{tx}, &hash); err != nil {
		return "", fmt.Errorf("send mint transaction: %w", err)
	}
	if hash == "" {
		return "", fmt.Errorf("wallet returned empty transaction hash")
	}
	span.SetAttributes(attribute.String("wallet.tx_hash", hash))
	return hash, nil
}

func (s *RPCSender) call(ctx context.Context, method string, params []any, result any) error {
	id := s.nextID.Add(1)
	if params == nil {
		params = []any{}
	}
	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: id})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wallet bridge error %d: %s", resp.StatusCode, string(body))
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decode wallet response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	return json.Unmarshal(rpcResp.Result, result)
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
