package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/croissant676/shopizer/pkg/store"
)

// ConfigurationType classifies a merchant configuration entry.
type ConfigurationType string

const (
	ConfigurationTypeConfig ConfigurationType = "CONFIG"
	ConfigurationTypeSocial ConfigurationType = "SOCIAL"
)

// Merged-map keys always injected from toolkit configuration.
const (
	KeyShopScheme    = "SHOP_SCHEME"
	KeyFacebookAppID = "FACEBOOK_APP_ID"
)

// Configuration is a single merchant configuration entry.
type Configuration struct {
	ID      int64             `json:"id"`
	StoreID int64             `json:"store_id"`
	Type    ConfigurationType `json:"type"`
	Key     string            `json:"key"`
	Value   string            `json:"value"`
}

// MerchantConfig is the structured flag set attached to a store. Its JSON
// field names become keys of the merged configuration map.
type MerchantConfig struct {
	DisplaySearchBox                bool   `json:"displaySearchBox"`
	DisplayContactUs                bool   `json:"displayContactUs"`
	DisplayStoreAddress             bool   `json:"displayStoreAddress"`
	DisplayCustomerSection          bool   `json:"displayCustomerSection"`
	DisplayAddToCartOnFeaturedItems bool   `json:"displayAddToCartOnFeaturedItems"`
	DisplayPagesMenu                bool   `json:"displayPagesMenu"`
	AllowPurchaseItems              bool   `json:"allowPurchaseItems"`
	TestMode                        bool   `json:"testMode"`
	DebugMode                       bool   `json:"debugMode"`
	FacebookAppID                   string `json:"facebookAppId,omitempty"`
	GoogleAnalyticsID               string `json:"googleAnalyticsId,omitempty"`
}

// ConfigurationService loads merchant configuration for a store.
type ConfigurationService interface {
	// ListByType lists the store's configuration entries of one type.
	ListByType(ctx context.Context, typ ConfigurationType, st *store.Store) ([]Configuration, error)

	// MerchantConfig fetches the store's structured flag set, nil when the
	// store has none.
	MerchantConfig(ctx context.Context, st *store.Store) (*MerchantConfig, error)
}

// SchemeConfig carries the deployment-wide values injected into every merged
// configuration map.
type SchemeConfig struct {
	ShopScheme    string `env:"SHOP_SCHEME" envDefault:"http"`
	FacebookAppID string `env:"FACEBOOK_APP_ID"`
}

// MergeConfigurations builds the flat configuration map published to page
// rendering: general and social entries keyed by their configuration key,
// the deployment scheme and social app id, and the flattened structured
// flag set on top. An empty configuration set short-circuits to an empty
// map with nothing injected.
func MergeConfigurations(ctx context.Context, svc ConfigurationService, st *store.Store, scheme SchemeConfig) (map[string]any, error) {
	merged := make(map[string]any)

	general, err := svc.ListByType(ctx, ConfigurationTypeConfig, st)
	if err != nil {
		return nil, fmt.Errorf("list config entries: %w", err)
	}
	social, err := svc.ListByType(ctx, ConfigurationTypeSocial, st)
	if err != nil {
		return nil, fmt.Errorf("list social entries: %w", err)
	}

	entries := make([]Configuration, 0, len(general)+len(social))
	entries = append(entries, general...)
	entries = append(entries, social...)
	if len(entries) == 0 {
		return merged, nil
	}

	for _, entry := range entries {
		merged[entry.Key] = entry.Value
	}

	merged[KeyShopScheme] = scheme.ShopScheme
	merged[KeyFacebookAppID] = scheme.FacebookAppID

	cfg, err := svc.MerchantConfig(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("merchant config: %w", err)
	}
	if cfg != nil {
		flat, err := flatten(cfg)
		if err != nil {
			return nil, fmt.Errorf("flatten merchant config: %w", err)
		}
		for k, v := range flat {
			merged[k] = v
		}
	}

	return merged, nil
}

// flatten turns the structured flag set into key/value pairs through its
// JSON representation.
func flatten(cfg *MerchantConfig) (map[string]any, error) {
	buf, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	flat := make(map[string]any)
	if err := json.Unmarshal(buf, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}
