package signals

// epcCentsByProvider is the static estimated-cents-per-click table. Revenue
// figures derived from it are estimates only and are never reconciled
// against settlement data.
var epcCentsByProvider = map[string]int64{
	"amazon":     12,
	"ebay":       9,
	"walmart":    8,
	"target":     7,
	"bestbuy":    7,
	"aliexpress": 4,
}

// EPCCents returns the estimated revenue in cents for one click attributed
// to provider. Unknown providers estimate 0.
func EPCCents(provider string) int64 {
	return epcCentsByProvider[provider]
}
