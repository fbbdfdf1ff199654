package constants

// IssuerType identifies the bank that produced a statement.
type IssuerType string

// Stable values (these exact strings appear in serialized results).
const (
	IssuerHDFC    IssuerType = "HDFC"
	IssuerICICI   IssuerType = "ICICI"
	IssuerSBI     IssuerType = "SBI"
	IssuerAxis    IssuerType = "AXIS"
	IssuerAmex    IssuerType = "AMEX"
	IssuerUnknown IssuerType = "UNKNOWN"
)

// Issuers lists every supported issuer in classification order.
var Issuers = []IssuerType{IssuerHDFC, IssuerICICI, IssuerSBI, IssuerAxis, IssuerAmex}

// DisplayName returns the customer-facing bank name.
func (i IssuerType) DisplayName() string {
	switch i {
	case IssuerHDFC:
		return "HDFC Bank"
	case IssuerICICI:
		return "ICICI Bank"
	case IssuerSBI:
		return "SBI Card"
	case IssuerAxis:
		return "Axis Bank"
	case IssuerAmex:
		return "American Express"
	default:
		return "Unknown"
	}
}

// Supported reports whether the issuer has a registered parser.
func (i IssuerType) Supported() bool {
	for _, known := range Issuers {
		if i == known {
			return true
		}
	}
	return false
}
