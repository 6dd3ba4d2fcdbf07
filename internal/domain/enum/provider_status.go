package enum

// ProviderStatus is the lifecycle status of a service provider.
type ProviderStatus string

const (
	ProviderStatusActive   ProviderStatus = "active"
	ProviderStatusInactive ProviderStatus = "inactive"
)

// IsValid reports whether s is a known provider status.
func (s ProviderStatus) IsValid() bool {
	return s == ProviderStatusActive || s == ProviderStatusInactive
}
