package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/colorhash/internal/color"
)

// Key kinds accepted by the color endpoints.
const (
	kindRaw  = "raw"
	kindUser = "user"
	kindTag  = "tag"
)

// maxBatchSize bounds POST /api/v1/colors.
const maxBatchSize = 100

func (s *Server) registerColorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getColor",
		Method:      http.MethodGet,
		Path:        "/api/v1/colors/{input}",
		Summary:     "Get color",
		Description: "Derives the color of a single string",
		Tags:        []string{"Colors"},
	}, s.handleGetColor)

	huma.Register(s.api, huma.Operation{
		OperationID: "batchColors",
		Method:      http.MethodPost,
		Path:        "/api/v1/colors",
		Summary:     "Batch colors",
		Description: "Derives colors for up to 100 strings, in request order",
		Tags:        []string{"Colors"},
	}, s.handleBatchColors)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPalette",
		Method:      http.MethodGet,
		Path:        "/api/v1/palette",
		Summary:     "Get palette",
		Description: "Returns the saturation, lightness and hue ranges colors are drawn from",
		Tags:        []string{"Colors"},
	}, s.handleGetPalette)
}

// === DTOs ===

// GetColorInput contains parameters for deriving one color.
type GetColorInput struct {
	Input string `path:"input" maxLength:"1024" doc:"String to derive a color for"`
	Kind  string `query:"kind" enum:"raw,user,tag" default:"raw" doc:"raw hashes the input as is, user uses the avatar palette, tag hashes the tag slug"`
}

// ColorResponse describes a derived color in every supported notation.
type ColorResponse struct {
	Input string    `json:"input" doc:"Input as received"`
	Key   string    `json:"key" doc:"String that was hashed"`
	HSL   color.HSL `json:"hsl"`
	RGB   color.RGB `json:"rgb"`
	Hex   string    `json:"hex" doc:"HTML hex color, #RRGGBB"`
	CSS   string    `json:"css" doc:"CSS hsl() value"`
}

// ColorOutput wraps a single color for Huma.
type ColorOutput struct {
	Body ColorResponse
}

// BatchColorsInput contains the strings to derive colors for.
type BatchColorsInput struct {
	Body struct {
		Inputs []string `json:"inputs" minItems:"1" maxItems:"100" doc:"Strings to derive colors for"`
		Kind   string   `json:"kind,omitempty" enum:"raw,user,tag" default:"raw" doc:"Key kind applied to every input"`
	}
}

// BatchColorsResponse lists colors in request order.
type BatchColorsResponse struct {
	Colors []ColorResponse `json:"colors"`
}

// BatchColorsOutput wraps the batch response for Huma.
type BatchColorsOutput struct {
	Body BatchColorsResponse
}

// PaletteResponse describes the active palette.
type PaletteResponse struct {
	Saturation color.Range      `json:"saturation"`
	Lightness  color.Range      `json:"lightness"`
	HueRanges  []color.HueRange `json:"hue_ranges" doc:"Empty when the full color wheel is used"`
}

// PaletteOutput wraps the palette for Huma.
type PaletteOutput struct {
	Body PaletteResponse
}

// === Handlers ===

func (s *Server) handleGetColor(_ context.Context, input *GetColorInput) (*ColorOutput, error) {
	resp, err := s.describe(input.Input, input.Kind)
	if err != nil {
		return nil, err
	}
	return &ColorOutput{Body: resp}, nil
}

func (s *Server) handleBatchColors(_ context.Context, input *BatchColorsInput) (*BatchColorsOutput, error) {
	// Schema validation enforces the bounds too; this guards direct calls.
	if len(input.Body.Inputs) > maxBatchSize {
		return nil, huma.Error422UnprocessableEntity("too many inputs")
	}

	colors := make([]ColorResponse, 0, len(input.Body.Inputs))
	for _, in := range input.Body.Inputs {
		resp, err := s.describe(in, input.Body.Kind)
		if err != nil {
			return nil, err
		}
		colors = append(colors, resp)
	}

	s.logger.Debug("Derived batch colors", "count", len(colors), "kind", input.Body.Kind)

	return &BatchColorsOutput{Body: BatchColorsResponse{Colors: colors}}, nil
}

func (s *Server) handleGetPalette(_ context.Context, _ *struct{}) (*PaletteOutput, error) {
	return &PaletteOutput{
		Body: PaletteResponse{
			Saturation: s.deriver.Saturation(),
			Lightness:  s.deriver.Lightness(),
			HueRanges:  s.deriver.HueRanges(),
		},
	}, nil
}

// describe derives the color of input for the given key kind.
func (s *Server) describe(input, kind string) (ColorResponse, error) {
	deriver, key := s.deriver, input
	switch kind {
	case kindUser:
		deriver = color.Avatar()
	case kindTag:
		key = color.TagKey(input)
	case kindRaw, "":
	default:
		return ColorResponse{}, huma.Error422UnprocessableEntity("unknown kind " + kind)
	}

	hsl := deriver.HashString(key)
	rgb, err := hsl.RGB()
	if err != nil {
		return ColorResponse{}, huma.Error500InternalServerError("color conversion failed", err)
	}

	return ColorResponse{
		Input: input,
		Key:   key,
		HSL:   hsl,
		RGB:   rgb,
		Hex:   rgb.Hex(),
		CSS:   hsl.CSS(),
	}, nil
}
