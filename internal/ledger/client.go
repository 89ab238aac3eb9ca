package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jharkhand-tourism-mvp/server/internal/config"
	errx "github.com/jharkhand-tourism-mvp/server/internal/core/error"
	"github.com/jharkhand-tourism-mvp/server/internal/models"
	logx "github.com/jharkhand-tourism-mvp/server/pkg/logger"
)

const (
	upstreamErrorPrefix = "an error occurred in the blockchain service"
	nonJSONMessage      = "received an invalid (non-JSON) response from the blockchain service"
	badFormatMessage    = "invalid response format from blockchain service"
	notFoundMessage     = "transaction ID not found for the given product"
)

// Client talks to the blockchain-recording microservice. Recording and
// verification use separate HTTP clients because their timeouts differ.
type Client struct {
	baseURL string
	record  *http.Client
	verify  *http.Client
}

func New(cfg config.LedgerConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		record:  &http.Client{Timeout: cfg.RecordTimeout},
		verify:  &http.Client{Timeout: cfg.VerifyTimeout},
	}
}

// Record forwards a purchase to the ledger service and relays its receipt
// verbatim. Numeric fields are coerced to strings to match the ledger's wire
// format; the ledger is the system of record, so no local validation happens.
func (c *Client) Record(ctx context.Context, productID int, price float64) (*models.SaleReceipt, error) {
	payload := map[string]string{
		"product_id": strconv.Itoa(productID),
		"price":      strconv.FormatFloat(price, 'f', -1, 64),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errx.Internal(fmt.Errorf("marshal transaction payload: %w", err))
	}

	url := c.baseURL + "/record-transaction-on-chain"
	logx.Info().Int("product_id", productID).Str("url", url).Msg("forwarding transaction to blockchain service")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errx.Internal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.record.Do(req)
	if err != nil {
		logx.Error().Err(err).Msg("could not reach blockchain service")
		return nil, errx.ServiceUnavailable(err, errx.LedgerUnavailableMessage)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errx.Internal(fmt.Errorf("read receipt body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logx.Error().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("blockchain service rejected transaction")
		return nil, errx.Internal(fmt.Errorf("blockchain service returned status %d", resp.StatusCode))
	}

	var receipt models.SaleReceipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		logx.Error().Err(err).Str("body", string(raw)).Msg("failed to decode sale receipt")
		return nil, errx.Internal(fmt.Errorf("decode sale receipt: %w", err))
	}
	return &receipt, nil
}

// Verify fetches the per-product sales list from the ledger service and
// returns the first record whose txID matches exactly. Failure precedence:
// transport, upstream status, non-JSON body, non-array body; a clean scan
// with no match is a distinct not-found outcome.
func (c *Client) Verify(ctx context.Context, productID, txID string) (*models.SaleReceipt, error) {
	url := fmt.Sprintf("%s/query/sales/%s", c.baseURL, productID)
	logx.Info().Str("product_id", productID).Str("tx_id", txID).Str("url", url).Msg("verifying transaction against blockchain service")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errx.Internal(err)
	}

	resp, err := c.verify.Do(req)
	if err != nil {
		logx.Error().Err(err).Msg("could not reach blockchain service")
		return nil, errx.ServiceUnavailable(err, errx.LedgerUnavailableMessage)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errx.Internal(fmt.Errorf("read sales body: %w", err))
	}
	logx.Debug().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("blockchain service answered")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errx.Upstream(
			fmt.Errorf("blockchain service returned status %d", resp.StatusCode),
			fmt.Sprintf("%s: %s", upstreamErrorPrefix, raw),
		)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, errx.Invalid(err, nonJSONMessage)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		logx.Error().Str("body", string(raw)).Msg("blockchain service response is not a list")
		return nil, errx.Invalid(nil, badFormatMessage)
	}

	for dec.More() {
		var rec models.SaleReceipt
		if err := dec.Decode(&rec); err != nil {
			return nil, errx.Internal(fmt.Errorf("decode sale record: %w", err))
		}
		if rec.TxID == txID {
			logx.Info().Str("tx_id", txID).Msg("transaction verified")
			return &rec, nil
		}
	}

	logx.Warn().Str("product_id", productID).Str("tx_id", txID).Msg("transaction not found for product")
	return nil, errx.NotFound(notFoundMessage)
}
