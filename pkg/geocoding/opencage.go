package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 5 * time.Second

// Geocoder resolves a postal address into coordinates. Implementations never
// return an error: any failure degrades to (nil, nil) so donation creation
// can proceed with unknown coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (lat, lng *float64)
}

// OpenCage is a thin client for the OpenCage forward-geocoding API.
type OpenCage struct {
	Client  *http.Client
	BaseURL string
	apiKey  string
}

func NewOpenCage(apiKey string) *OpenCage {
	return &OpenCage{
		Client:  &http.Client{Timeout: defaultTimeout},
		BaseURL: "https://api.opencagedata.com/geocode/v1/json",
		apiKey:  apiKey,
	}
}

func (g *OpenCage) Resolve(ctx context.Context, address string) (*float64, *float64) {
	endpoint := fmt.Sprintf("%s?q=%s&key=%s&language=pt-BR",
		g.BaseURL, url.QueryEscape(address), g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		log.Printf("opencage: request failed: %v", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("opencage: unexpected status %d", resp.StatusCode)
		return nil, nil
	}

	var payload struct {
		Results []struct {
			Geometry struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("opencage: decode failed: %v", err)
		return nil, nil
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}

	lat := payload.Results[0].Geometry.Lat
	lng := payload.Results[0].Geometry.Lng
	return &lat, &lng
}
