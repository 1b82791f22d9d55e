package settings

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

// Category groups settings for presentation in the admin portals.
type Category string

const (
	// CategoryGeneral covers platform-wide identity and availability settings.
	CategoryGeneral Category = "general"
	// CategoryRegistration covers the registration and checkout flow.
	CategoryRegistration Category = "registration"
	// CategoryPayments covers payment processing.
	CategoryPayments Category = "payments"
	// CategoryShop covers the merchandise shop.
	CategoryShop Category = "shop"
	// CategoryEmail covers transactional email.
	CategoryEmail Category = "email"
	// CategoryRoyalty covers licensee royalty invoicing.
	CategoryRoyalty Category = "royalty"
	// CategoryDeveloper covers development and diagnostics toggles.
	CategoryDeveloper Category = "developer"
)

// Definition describes one recognized setting: its shape, default and policy.
// The registry of definitions is compiled in; persisted rows only ever
// override values, never define new keys.
type Definition struct {
	// Key is the unique identifier callers use to resolve the setting.
	Key string
	// Category groups the setting in admin UIs.
	Category Category
	// Label is the human-facing name.
	Label string
	// Description explains what the setting controls.
	Description string
	// Type declares the value's JSON shape.
	Type models.ValueType
	// Default is the effective value when no row overrides it.
	Default any
	// Rule validates proposed values before they are persisted.
	Rule Rule
	// TenantOverridable controls whether licensees may set their own value.
	// Non-overridable keys ignore tenant rows even if one exists.
	TenantOverridable bool
}

// Registry keys. Always reference settings through these constants so a
// typo'd key fails at compile time instead of silently resolving nothing.
const (
	KeySiteName        = "siteName"
	KeySupportEmail    = "supportEmail"
	KeyMaintenanceMode = "maintenanceMode"
	KeyDefaultTimezone = "defaultTimezone"
	KeyBrandingColors  = "brandingColors"

	KeyRegistrationOpen           = "registrationOpen"
	KeyMaxAthletesPerRegistration = "maxAthletesPerRegistration"
	KeyWaiverRequired             = "waiverRequired"
	KeyAllowWaitlist              = "allowWaitlist"
	KeyEarlyBirdDiscountPercent   = "earlyBirdDiscountPercent"

	KeyPaymentsEnabled = "paymentsEnabled"
	KeyStripeMode      = "stripeMode"
	KeyCurrencyCode    = "currencyCode"
	KeyDepositPercent  = "depositPercent"

	KeyShopEnabled           = "shopEnabled"
	KeyShopFlatShippingCents = "shopFlatShippingCents"

	KeyEmailFromAddress         = "emailFromAddress"
	KeyEmailFooterText          = "emailFooterText"
	KeySendRegistrationReceipts = "sendRegistrationReceipts"

	KeyRoyaltyRatePercent       = "royaltyRatePercent"
	KeyRoyaltyInvoiceDayOfMonth = "royaltyInvoiceDayOfMonth"

	KeyDeveloperModeEnabled  = "developerModeEnabled"
	KeyVerboseRequestLogging = "verboseRequestLogging"
)

// Stripe processing modes accepted by KeyStripeMode.
const (
	StripeModeLive      = "LIVE"
	StripeModeTest      = "TEST"
	StripeModeSimulated = "SIMULATED"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// registry is the single source of truth for every recognized setting.
var registry = map[string]Definition{
	KeySiteName: {
		Key:               KeySiteName,
		Category:          CategoryGeneral,
		Label:             "Site name",
		Description:       "Display name used across public pages and emails.",
		Type:              models.ValueTypeString,
		Default:           "Empowered Sports Camp",
		Rule:              StringRule{MinLen: 1, MaxLen: 120},
		TenantOverridable: true,
	},
	KeySupportEmail: {
		Key:               KeySupportEmail,
		Category:          CategoryGeneral,
		Label:             "Support email",
		Description:       "Address shown to families for support inquiries.",
		Type:              models.ValueTypeString,
		Default:           "support@empoweredsportscamp.com",
		Rule:              StringRule{MaxLen: 255, Pattern: emailPattern},
		TenantOverridable: true,
	},
	KeyMaintenanceMode: {
		Key:               KeyMaintenanceMode,
		Category:          CategoryGeneral,
		Label:             "Maintenance mode",
		Description:       "Take all public surfaces offline with a maintenance notice.",
		Type:              models.ValueTypeBoolean,
		Default:           false,
		Rule:              BoolRule{},
		TenantOverridable: false,
	},
	KeyDefaultTimezone: {
		Key:               KeyDefaultTimezone,
		Category:          CategoryGeneral,
		Label:             "Default timezone",
		Description:       "Timezone used for camp schedules when a camp has none.",
		Type:              models.ValueTypeString,
		Default:           "America/New_York",
		Rule:              StringRule{MinLen: 1, MaxLen: 64},
		TenantOverridable: true,
	},
	KeyBrandingColors: {
		Key:               KeyBrandingColors,
		Category:          CategoryGeneral,
		Label:             "Branding colors",
		Description:       "Primary and secondary colors for portal theming.",
		Type:              models.ValueTypeJSON,
		Default:           map[string]any{"primary": "#1f4e79", "secondary": "#f2a900"},
		Rule:              JSONRule{RequiredKeys: []string{"primary", "secondary"}},
		TenantOverridable: true,
	},

	KeyRegistrationOpen: {
		Key:               KeyRegistrationOpen,
		Category:          CategoryRegistration,
		Label:             "Registration open",
		Description:       "Accept new camp registrations.",
		Type:              models.ValueTypeBoolean,
		Default:           true,
		Rule:              BoolRule{},
		TenantOverridable: true,
	},
	KeyMaxAthletesPerRegistration: {
		Key:               KeyMaxAthletesPerRegistration,
		Category:          CategoryRegistration,
		Label:             "Max athletes per registration",
		Description:       "Upper bound on athletes a parent can register in one checkout.",
		Type:              models.ValueTypeNumber,
		Default:           float64(5),
		Rule:              NumberRule{Min: 1, Max: 20, Integer: true},
		TenantOverridable: true,
	},
	KeyWaiverRequired: {
		Key:               KeyWaiverRequired,
		Category:          CategoryRegistration,
		Label:             "Waiver required",
		Description:       "Require a signed liability waiver before checkout completes.",
		Type:              models.ValueTypeBoolean,
		Default:           true,
		Rule:              BoolRule{},
		TenantOverridable: true,
	},
	KeyAllowWaitlist: {
		Key:               KeyAllowWaitlist,
		Category:          CategoryRegistration,
		Label:             "Allow waitlist",
		Description:       "Offer waitlist spots once a camp session is full.",
		Type:              models.ValueTypeBoolean,
		Default:           true,
		Rule:              BoolRule{},
		TenantOverridable: true,
	},
	KeyEarlyBirdDiscountPercent: {
		Key:               KeyEarlyBirdDiscountPercent,
		Category:          CategoryRegistration,
		Label:             "Early bird discount %",
		Description:       "Percentage discount applied during the early bird window.",
		Type:              models.ValueTypeNumber,
		Default:           float64(10),
		Rule:              NumberRule{Min: 0, Max: 100},
		TenantOverridable: true,
	},

	KeyPaymentsEnabled: {
		Key:               KeyPaymentsEnabled,
		Category:          CategoryPayments,
		Label:             "Payments enabled",
		Description:       "Master switch for charging cards anywhere on the platform.",
		Type:              models.ValueTypeBoolean,
		Default:           true,
		Rule:              BoolRule{},
		TenantOverridable: false,
	},
	KeyStripeMode: {
		Key:               KeyStripeMode,
		Category:          CategoryPayments,
		Label:             "Stripe mode",
		Description:       "Payment processor mode: LIVE, TEST or SIMULATED.",
		Type:              models.ValueTypeString,
		Default:           StripeModeTest,
		Rule:              StringRule{Enum: []string{StripeModeLive, StripeModeTest, StripeModeSimulated}},
		TenantOverridable: false,
	},
	KeyCurrencyCode: {
		Key:               KeyCurrencyCode,
		Category:          CategoryPayments,
		Label:             "Currency",
		Description:       "Currency used for all charges and invoices.",
		Type:              models.ValueTypeString,
		Default:           "USD",
		Rule:              StringRule{Enum: []string{"USD", "CAD"}},
		TenantOverridable: false,
	},
	KeyDepositPercent: {
		Key:               KeyDepositPercent,
		Category:          CategoryPayments,
		Label:             "Deposit %",
		Description:       "Portion of camp tuition collected as a deposit at checkout.",
		Type:              models.ValueTypeNumber,
		Default:           float64(25),
		Rule:              NumberRule{Min: 0, Max: 100},
		TenantOverridable: true,
	},

	KeyShopEnabled: {
		Key:               KeyShopEnabled,
		Category:          CategoryShop,
		Label:             "Shop enabled",
		Description:       "Expose the merchandise shop on public pages.",
		Type:              models.ValueTypeBoolean,
		Default:           true,
		Rule:              BoolRule{},
		TenantOverridable: true,
	},
	KeyShopFlatShippingCents: {
		Key:               KeyShopFlatShippingCents,
		Category:          CategoryShop,
		Label:             "Flat shipping (cents)",
		Description:       "Flat shipping charge applied to shop orders, in cents.",
		Type:              models.ValueTypeNumber,
		Default:           float64(795),
		Rule:              NumberRule{Min: 0, Max: 10000, Integer: true},
		TenantOverridable: true,
	},

	KeyEmailFromAddress: {
		Key:               KeyEmailFromAddress,
		Category:          CategoryEmail,
		Label:             "From address",
		Description:       "Sender address for all transactional email.",
		Type:              models.ValueTypeString,
		Default:           "noreply@empoweredsportscamp.com",
		Rule:              StringRule{MaxLen: 255, Pattern: emailPattern},
		TenantOverridable: false,
	},
	KeyEmailFooterText: {
		Key:               KeyEmailFooterText,
		Category:          CategoryEmail,
		Label:             "Email footer",
		Description:       "Footer text appended to every outgoing email.",
		Type:              models.ValueTypeString,
		Default:           "",
		Rule:              StringRule{MaxLen: 500},
		TenantOverridable: true,
	},
	KeySendRegistrationReceipts: {
		Key:               KeySendRegistrationReceipts,
		Category:          CategoryEmail,
		Label:             "Send registration receipts",
		Description:       "Email a receipt to the parent after each registration.",
		Type:              models.ValueTypeBoolean,
		Default:           true,
		Rule:              BoolRule{},
		TenantOverridable: true,
	},

	KeyRoyaltyRatePercent: {
		Key:               KeyRoyaltyRatePercent,
		Category:          CategoryRoyalty,
		Label:             "Royalty rate %",
		Description:       "Percentage of licensee revenue invoiced as royalty.",
		Type:              models.ValueTypeNumber,
		Default:           float64(8),
		Rule:              NumberRule{Min: 0, Max: 50},
		TenantOverridable: false,
	},
	KeyRoyaltyInvoiceDayOfMonth: {
		Key:               KeyRoyaltyInvoiceDayOfMonth,
		Category:          CategoryRoyalty,
		Label:             "Invoice day of month",
		Description:       "Day of month royalty invoices are generated.",
		Type:              models.ValueTypeNumber,
		Default:           float64(1),
		Rule:              NumberRule{Min: 1, Max: 28, Integer: true},
		TenantOverridable: false,
	},

	KeyDeveloperModeEnabled: {
		Key:               KeyDeveloperModeEnabled,
		Category:          CategoryDeveloper,
		Label:             "Developer mode",
		Description:       "Forces simulated payments and relaxes external integrations.",
		Type:              models.ValueTypeBoolean,
		Default:           false,
		Rule:              BoolRule{},
		TenantOverridable: false,
	},
	KeyVerboseRequestLogging: {
		Key:               KeyVerboseRequestLogging,
		Category:          CategoryDeveloper,
		Label:             "Verbose request logging",
		Description:       "Log full request details for debugging.",
		Type:              models.ValueTypeBoolean,
		Default:           false,
		Rule:              BoolRule{},
		TenantOverridable: false,
	},
}

// Lookup returns the definition for a key and whether the key is registered.
func Lookup(key string) (Definition, bool) {
	def, ok := registry[key]
	return def, ok
}

// Keys returns all registered keys in no particular order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}

	return keys
}

// Definitions returns all definitions sorted by category then key, the order
// the admin portals present them in.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Category != defs[j].Category {
			return defs[i].Category < defs[j].Category
		}
		return defs[i].Key < defs[j].Key
	})

	return defs
}

// The registry must be internally consistent before anything resolves against
// it: map keys match definition keys and every default passes its own rule.
func init() {
	for key, def := range registry {
		if key != def.Key {
			panic(fmt.Sprintf("settings registry: map key %q does not match definition key %q", key, def.Key))
		}

		if def.Rule == nil {
			panic(fmt.Sprintf("settings registry: %q has no validation rule", key))
		}

		if err := def.Rule.Validate(def.Default); err != nil {
			panic(fmt.Sprintf("settings registry: default for %q fails its own rule: %v", key, err))
		}
	}
}
