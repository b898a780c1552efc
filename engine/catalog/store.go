package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/pkg/repo"
)

// Device is a catalog entry for a known device line.
type Device struct {
	ID             string
	Brand          string
	Model          string
	Category       domain.DeviceCategory
	Year           int
	WarrantyStatus domain.WarrantyStatus
}

// DeviceID builds the canonical catalog key for a brand and model line.
func DeviceID(brand, model string) string {
	return strings.ToLower(strings.TrimSpace(brand)) + "|" + strings.ToLower(strings.TrimSpace(model))
}

// Store is a Neo4j-backed device catalog.
type Store struct {
	devices *repo.Neo4jRepo[Device, string]
}

// NewStore creates a Store over an open Neo4j driver.
func NewStore(driver neo4j.DriverWithContext) *Store {
	return &Store{
		devices: repo.NewNeo4jRepo[Device, string](
			driver,
			"Device",
			deviceToMap,
			deviceFromRecord,
		),
	}
}

// Lookup fetches a catalog entry by brand and model line.
func (s *Store) Lookup(ctx context.Context, brand, model string) (Device, error) {
	return s.devices.Get(ctx, DeviceID(brand, model))
}

// Upsert writes a catalog entry, creating or updating by canonical ID.
func (s *Store) Upsert(ctx context.Context, d Device) (Device, error) {
	if d.ID == "" {
		d.ID = DeviceID(d.Brand, d.Model)
	}
	updated, err := s.devices.Update(ctx, d)
	if err == nil {
		return updated, nil
	}
	return s.devices.Create(ctx, d)
}

// List pages through catalog entries.
func (s *Store) List(ctx context.Context, opts repo.ListOpts) ([]Device, error) {
	return s.devices.List(ctx, opts)
}

func deviceToMap(d Device) map[string]any {
	return map[string]any{
		"id":       d.ID,
		"brand":    d.Brand,
		"model":    d.Model,
		"category": string(d.Category),
		"year":     d.Year,
		"warranty": string(d.WarrantyStatus),
	}
}

func deviceFromRecord(rec *neo4j.Record) (Device, error) {
	node, _, err := neo4j.GetRecordValue[dbtype.Node](rec, "n")
	if err != nil {
		return Device{}, fmt.Errorf("catalog: decode device node: %w", err)
	}
	props := node.Props
	return Device{
		ID:             strProp(props, "id"),
		Brand:          strProp(props, "brand"),
		Model:          strProp(props, "model"),
		Category:       domain.DeviceCategory(strProp(props, "category")),
		Year:           intProp(props, "year"),
		WarrantyStatus: domain.WarrantyStatus(strProp(props, "warranty")),
	}, nil
}

func strProp(props map[string]any, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intProp(props map[string]any, key string) int {
	switch v := props[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
