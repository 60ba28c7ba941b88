package parser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
)

// DefaultStatisticalTimeout bounds one call to the external parser
// service. The service is a local model server, so a short timeout keeps
// a stalled call from blocking the whole extraction; the gate recovers
// by falling back to the deterministic parser.
const DefaultStatisticalTimeout = 10 * time.Second

// ParseFailure is the recoverable failure of a statistical parse:
// transport error, timeout, or a structurally invalid response (missing
// required field, confidence outside [0,1]). The gate treats any
// ParseFailure as "fall back", never as a crash.
type ParseFailure struct {
	// Reason describes what was wrong with the call or its response.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (f *ParseFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("statistical parse failed: %s: %v", f.Reason, f.Err)
	}
	return fmt.Sprintf("statistical parse failed: %s", f.Reason)
}

// Unwrap returns the underlying error.
func (f *ParseFailure) Unwrap() error { return f.Err }

// StatisticalParser is implemented by clients of the external ML
// ingredient-parsing service. Errors returned must be *ParseFailure
// and are always recoverable; the gate falls back instead of failing.
type StatisticalParser interface {
	Parse(ctx context.Context, raw string) (model.IngredientRecord, error)
}

// statisticalResponse is the loose JSON shape the external service
// returns. Amount may arrive as a number or a string; confidence and the
// three core fields are required, preparation is optional and ignored.
//
// The duck-typed response is converted into the fixed internal record at
// this boundary; a missing field is a typed ParseFailure, never an
// implicit zero value sneaking downstream.
type statisticalResponse struct {
	Amount      any      `json:"amount"`
	Unit        *string  `json:"unit"`
	Item        *string  `json:"item"`
	Preparation string   `json:"preparation,omitempty"`
	Confidence  *float64 `json:"confidence"`
}

// StatisticalOption configures a StatisticalClient.
type StatisticalOption func(*StatisticalClient)

// WithStatisticalTimeout sets the per-call timeout.
func WithStatisticalTimeout(d time.Duration) StatisticalOption {
	return func(c *StatisticalClient) {
		c.http.SetTimeout(d)
	}
}

// StatisticalClient calls the external statistical ingredient-parser
// service over HTTP and converts its responses into IngredientRecord.
type StatisticalClient struct {
	http  *resty.Client
	units *units.Table
}

// NewStatisticalClient creates a client for the parser service at
// baseURL. The unit table is used only to validate the service's own
// unit output; unknown units pass through lowercased.
func NewStatisticalClient(baseURL string, table *units.Table, opts ...StatisticalOption) *StatisticalClient {
	c := &StatisticalClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultStatisticalTimeout).
			SetHeader("Content-Type", "application/json"),
		units: table,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse sends one raw ingredient line to the service. Any failure is a
// *ParseFailure; the confidence reported by the service is passed
// through unmodified.
func (c *StatisticalClient) Parse(ctx context.Context, raw string) (model.IngredientRecord, error) {
	var parsed statisticalResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": raw}).
		SetResult(&parsed).
		Post("/parse")
	if err != nil {
		return model.IngredientRecord{}, &ParseFailure{Reason: "request error", Err: err}
	}
	if resp.IsError() {
		return model.IngredientRecord{}, &ParseFailure{
			Reason: fmt.Sprintf("service returned %s", resp.Status()),
		}
	}
	return c.toRecord(parsed)
}

// toRecord converts the service response into the fixed internal record.
func (c *StatisticalClient) toRecord(resp statisticalResponse) (model.IngredientRecord, error) {
	if resp.Item == nil || strings.TrimSpace(*resp.Item) == "" {
		return model.IngredientRecord{}, &ParseFailure{Reason: "missing item"}
	}
	if resp.Unit == nil {
		return model.IngredientRecord{}, &ParseFailure{Reason: "missing unit"}
	}
	if resp.Confidence == nil {
		return model.IngredientRecord{}, &ParseFailure{Reason: "missing confidence"}
	}
	if *resp.Confidence < 0 || *resp.Confidence > 1 {
		return model.IngredientRecord{}, &ParseFailure{
			Reason: fmt.Sprintf("confidence %v outside [0,1]", *resp.Confidence),
		}
	}

	amount, err := coerceAmount(resp.Amount)
	if err != nil {
		return model.IngredientRecord{}, &ParseFailure{Reason: "invalid amount", Err: err}
	}

	unit := strings.TrimSpace(*resp.Unit)
	if unit == "" {
		unit = model.UnitWhole
	} else if canonical, ok := c.units.Canonicalize(unit); ok {
		unit = canonical
	} else {
		unit = strings.ToLower(unit)
	}

	return model.IngredientRecord{
		Amount:     amount,
		Unit:       unit,
		Item:       strings.ToLower(strings.TrimSpace(*resp.Item)),
		Confidence: *resp.Confidence,
	}, nil
}

// coerceAmount accepts the number-or-string amount shapes the service
// emits.
func coerceAmount(v any) (model.Amount, error) {
	switch value := v.(type) {
	case nil:
		return model.NoAmount(), nil
	case float64:
		return model.Number(value), nil
	case string:
		amount, ok := model.ParseAmount(value)
		if !ok {
			return model.Amount{}, fmt.Errorf("unrecognized amount %q", value)
		}
		return amount, nil
	default:
		return model.Amount{}, fmt.Errorf("amount has unexpected type %T", v)
	}
}
