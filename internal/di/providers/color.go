package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/color"
	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
)

// ProvideDeriver provides the color deriver built from the palette configuration.
func ProvideDeriver(i do.Injector) (*color.Deriver, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	deriver, err := cfg.Deriver()
	if err != nil {
		return nil, err
	}

	log.Info("Color deriver ready",
		"saturation", deriver.Saturation(),
		"lightness", deriver.Lightness(),
		"hue_ranges", len(deriver.HueRanges()),
	)

	return deriver, nil
}
