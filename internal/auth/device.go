package auth

import (
	"github.com/mileusna/useragent"

	"github.com/amoodyplace/moodyplace-go/internal/model"
)

// DeviceType classifies a User-Agent string into a coarse device class
// for analytics events.
func DeviceType(uaString string) string {
	if uaString == "" {
		return model.DeviceDesktop
	}
	ua := useragent.Parse(uaString)
	switch {
	case ua.Bot:
		return model.DeviceBot
	case ua.Tablet:
		return model.DeviceTablet
	case ua.Mobile:
		return model.DeviceMobile
	default:
		return model.DeviceDesktop
	}
}
